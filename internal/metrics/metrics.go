// Package metrics holds the prometheus collectors of the webhook receiver.
// They register with the default registry served by the monitoring server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vehicle_signals_webhook"

// Webhook outcomes.
const (
	OutcomeIngested         = "ingested"
	OutcomeChallenge        = "challenge"
	OutcomeInvalidJSON      = "invalid_json"
	OutcomeMissingFields    = "missing_fields"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeNotConfigured    = "not_configured"
	OutcomeStorageError     = "storage_error"
)

// Signal outcomes.
const (
	SignalStored  = "stored"
	SignalFailed  = "failed"
	SignalSkipped = "skipped"
)

var (
	WebhookRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Webhook deliveries by outcome.",
		},
		[]string{"outcome"},
	)

	Signals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Normalized signals by storage outcome.",
		},
		[]string{"outcome"},
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Time spent persisting one webhook event and its signals.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	VehiclesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "vehicles_created_total",
			Help:      "Vehicle rows created on first sight.",
		},
	)

	PublishErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Ingested events that could not be published to kafka.",
		},
	)
)
