package config

import (
	"time"

	"github.com/DIMO-Network/shared/pkg/db"
)

// Settings contains the application config
type Settings struct {
	Port        int    `env:"PORT"`
	MonPort     int    `env:"MON_PORT"`
	EnablePprof bool   `env:"ENABLE_PPROF"`
	LogLevel    string `env:"LOG_LEVEL"`
	ServiceName string `env:"SERVICE_NAME"`

	// WebhookSecret is the HMAC secret shared with the telemetry provider.
	WebhookSecret           string        `env:"WEBHOOK_SECRET"`
	SignalInsertConcurrency int           `env:"SIGNAL_INSERT_CONCURRENCY" envDefault:"8"`
	VehicleCacheTTL         time.Duration `env:"VEHICLE_CACHE_TTL" envDefault:"1h"`

	// The ingested events publisher is disabled unless both are set.
	KafkaBrokers        string `env:"KAFKA_BROKERS"`
	IngestedEventsTopic string `env:"INGESTED_EVENTS_TOPIC"`

	DB db.Settings `envPrefix:"DB_"`
}

// PublisherEnabled reports whether ingested events are published to kafka.
func (s *Settings) PublisherEnabled() bool {
	return s.KafkaBrokers != "" && s.IngestedEventsTopic != ""
}
