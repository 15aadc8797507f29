package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/fibercommon"
	"github.com/DIMO-Network/shared/pkg/db"
	_ "github.com/DIMO-Network/vehicle-signals-webhook/docs" // Import Swagger docs
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/config"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/controllers/history"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/controllers/webhook"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/kafka"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/eventsrepo"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/ingest"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/vehiclecache"
	"github.com/IBM/sarama"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
)

const defaultVehicleCacheTTL = time.Hour

func CreateServers(ctx context.Context, settings *config.Settings, logger zerolog.Logger) (*fiber.App, error) {
	store := db.NewDbConnectionFromSettings(ctx, &settings.DB, true)
	store.WaitForDB(logger)

	repo := eventsrepo.NewRepository(store.DBS().Writer.DB)

	var publisher ingest.EventPublisher
	if settings.PublisherEnabled() {
		kafkaPublisher, err := startIngestedEventsPublisher(ctx, logger, settings)
		if err != nil {
			return nil, fmt.Errorf("failed to start ingested events publisher: %w", err)
		}
		publisher = kafkaPublisher
	} else {
		logger.Info().Msg("Kafka publisher disabled.")
	}

	if settings.WebhookSecret == "" {
		logger.Warn().Msg("WEBHOOK_SECRET is not set, every webhook will be rejected.")
	}

	coordinator := NewCoordinator(settings, repo, publisher)
	return CreateFiberApp(logger, coordinator, repo), nil
}

// NewCoordinator builds the ingestion coordinator on top of the events repository.
func NewCoordinator(settings *config.Settings, repo *eventsrepo.Repository, publisher ingest.EventPublisher) *ingest.Coordinator {
	ttl := settings.VehicleCacheTTL
	if ttl <= 0 {
		ttl = defaultVehicleCacheTTL
	}
	vehicles := vehiclecache.New(ttl, 2*ttl, repo)
	return ingest.NewCoordinator(ingest.Config{
		Secret:            settings.WebhookSecret,
		SignalConcurrency: settings.SignalInsertConcurrency,
	}, repo, vehicles, publisher)
}

// CreateFiberApp sets up the API routes.
func CreateFiberApp(logger zerolog.Logger, ingester webhook.Ingester, repo history.Repository) *fiber.App {
	logger.Info().Msg("Starting Vehicle Signals Webhook...")

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return fibercommon.ErrorHandler(c, err)
		},
		DisableStartupMessage: true,
	})
	app.Use(fibercommon.ContextLoggerMiddleware)

	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Welcome to the Vehicle Signals Webhook!")
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"data": "Server is up and running",
		})
	})

	webhookController := webhook.NewWebhookController(ingester)
	historyController := history.NewHistoryController(repo)
	logger.Info().Msg("Registering routes...")

	app.Post("/webhook", webhookController.ReceiveWebhook)
	app.Get("/events", historyController.ListEvents)
	app.Get("/signals", historyController.ListSignals)

	return app
}

// startIngestedEventsPublisher connects the kafka publisher and closes it when ctx ends.
func startIngestedEventsPublisher(ctx context.Context, logger zerolog.Logger, settings *config.Settings) (*kafka.Publisher, error) {
	clusterConfig := sarama.NewConfig()
	clusterConfig.Version = sarama.V2_8_1_0

	publisher, err := kafka.NewPublisher(&kafka.Config{
		ClusterConfig:   clusterConfig,
		BrokerAddresses: strings.Split(settings.KafkaBrokers, ","),
		Topic:           settings.IngestedEventsTopic,
	})
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close kafka publisher.")
		}
	}()

	logger.Info().Msgf("Publishing ingested events to topic: %s", settings.IngestedEventsTopic)
	return publisher, nil
}
