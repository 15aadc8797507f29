// Package ingest authenticates webhook deliveries and persists the event and its
// normalized signals.
package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DIMO-Network/cloudevent"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/metrics"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/eventsrepo"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signals"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signature"
	"github.com/aarondl/sqlboiler/v4/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// IngestedEventType is the cloud event type of published ingested events.
	IngestedEventType = "dimo.webhook.ingested"
	// IngestedEventSource is the cloud event source of published ingested events.
	IngestedEventSource = "vehicle-signals-webhook"
	ingestedDataVersion = "webhook.ingested/v1.0"

	defaultSignalConcurrency = 8
)

// EventStore persists events and signals.
type EventStore interface {
	InsertEvent(ctx context.Context, event *eventsrepo.WebhookEvent) error
	InsertSignal(ctx context.Context, signal *eventsrepo.Signal) error
}

// VehicleEnsurer creates the vehicle row of an event if it does not exist yet.
type VehicleEnsurer interface {
	EnsureVehicle(ctx context.Context, vehicle *eventsrepo.Vehicle) (bool, error)
	// Forget drops any memo of the vehicle so the next event ensures it again.
	Forget(vehicleID string)
}

// EventPublisher publishes ingested events downstream.
type EventPublisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// Config configures a Coordinator.
type Config struct {
	// Secret is the shared HMAC secret. Empty rejects every webhook.
	Secret string
	// SignalConcurrency bounds the concurrent signal inserts of one event.
	SignalConcurrency int
}

// Request is one webhook delivery.
type Request struct {
	// Body is the raw request body, exactly as received.
	Body []byte
	// Signature is the value of the signature header.
	Signature string
}

// SignalTally folds the per-signal outcomes of one event.
type SignalTally struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Skipped   int      `json:"skipped"`
	Reasons   []string `json:"-"`
}

// Result is the outcome of an accepted delivery. A handshake only sets Challenge.
type Result struct {
	Challenge string
	EventID   string
	EventName string
	VehicleID string
	Signals   SignalTally
}

// IsChallenge reports whether the delivery was the provider handshake.
func (r *Result) IsChallenge() bool {
	return r.Challenge != ""
}

// IngestedEvent is the data of the published cloud event.
type IngestedEvent struct {
	EventID        string                `json:"eventId"`
	EventName      string                `json:"eventName"`
	VehicleID      string                `json:"vehicleId"`
	EventTimestamp time.Time             `json:"eventTimestamp"`
	Signals        []signals.SignalEntry `json:"signals"`
}

// Coordinator runs a webhook delivery through verification, normalization and storage.
type Coordinator struct {
	secret      string
	concurrency int
	store       EventStore
	vehicles    VehicleEnsurer
	publisher   EventPublisher
	now         func() time.Time
}

// NewCoordinator creates a Coordinator. publisher may be nil.
func NewCoordinator(cfg Config, store EventStore, vehicles VehicleEnsurer, publisher EventPublisher) *Coordinator {
	concurrency := cfg.SignalConcurrency
	if concurrency <= 0 {
		concurrency = defaultSignalConcurrency
	}
	return &Coordinator{
		secret:      cfg.Secret,
		concurrency: concurrency,
		store:       store,
		vehicles:    vehicles,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Ingest handles one webhook delivery. Handshakes are answered before the
// signature check and never touch storage. Rejected deliveries write nothing.
// Once the event row is stored, vehicle, signal and publish failures are logged
// and do not fail the delivery.
func (c *Coordinator) Ingest(ctx context.Context, req Request) (*Result, error) {
	if c.secret == "" {
		return nil, ErrSecretNotConfigured
	}
	payload, err := signals.Parse(req.Body)
	if err != nil {
		return nil, err
	}
	if payload.Kind == signals.PayloadKindVerify {
		challenge, ok := payload.Challenge()
		if !ok {
			return nil, ErrMissingChallenge
		}
		return &Result{Challenge: signature.Sign(challenge, c.secret)}, nil
	}
	if !signature.Verify(req.Body, req.Signature, c.secret) {
		return nil, ErrInvalidSignature
	}

	receivedAt := c.now().UTC()
	event, err := signals.Normalize(payload, receivedAt)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { metrics.IngestDuration.Observe(time.Since(start).Seconds()) }()

	logger := zerolog.Ctx(ctx).With().
		Str("vehicleId", event.VehicleID).
		Str("eventName", event.EventName).
		Logger()

	c.ensureVehicle(ctx, &logger, event)

	row := &eventsrepo.WebhookEvent{
		ID:             uuid.New().String(),
		VehicleID:      event.VehicleID,
		EventName:      event.EventName,
		EventTimestamp: event.EventTimestamp,
		ReceivedAt:     receivedAt,
		SignatureValid: true,
		RawPayload:     types.JSON(event.RawPayload),
	}
	if err := c.store.InsertEvent(ctx, row); err != nil {
		if eventsrepo.IsForeignKeyError(err) {
			c.vehicles.Forget(event.VehicleID)
		}
		return nil, fmt.Errorf("%w: %w", ErrEventPersistence, err)
	}
	logger = logger.With().Str("eventId", row.ID).Logger()

	tally := c.storeSignals(ctx, &logger, row, event)
	logger.Info().
		Int("succeeded", tally.Succeeded).
		Int("failed", tally.Failed).
		Int("skipped", tally.Skipped).
		Msg("Webhook event stored.")

	c.publish(ctx, &logger, row, event)

	return &Result{
		EventID:   row.ID,
		EventName: event.EventName,
		VehicleID: event.VehicleID,
		Signals:   tally,
	}, nil
}

func (c *Coordinator) ensureVehicle(ctx context.Context, logger *zerolog.Logger, event *signals.NormalizedEvent) {
	created, err := c.vehicles.EnsureVehicle(ctx, &eventsrepo.Vehicle{
		ID:    event.VehicleID,
		Make:  event.Vehicle.Make,
		Model: event.Vehicle.Model,
		Year:  event.Vehicle.Year,
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to ensure vehicle.")
		return
	}
	if created {
		metrics.VehiclesCreated.Inc()
		logger.Debug().Msg("Vehicle created.")
	}
}

// storeSignals inserts the signals of a stored event concurrently and folds the
// outcomes. It never fails.
func (c *Coordinator) storeSignals(ctx context.Context, logger *zerolog.Logger, row *eventsrepo.WebhookEvent, event *signals.NormalizedEvent) SignalTally {
	tally := SignalTally{Skipped: len(event.Skipped)}
	for _, skipped := range event.Skipped {
		tally.Reasons = append(tally.Reasons, fmt.Sprintf("signal %d skipped: %s", skipped.Index, skipped.Reason))
		logger.Warn().Int("signalIndex", skipped.Index).Str("reason", skipped.Reason).Msg("Skipped malformed signal.")
	}
	metrics.Signals.WithLabelValues(metrics.SignalSkipped).Add(float64(len(event.Skipped)))

	var (
		group errgroup.Group
		mu    sync.Mutex
	)
	group.SetLimit(c.concurrency)
	for _, entry := range event.Signals {
		group.Go(func() error {
			err := c.store.InsertSignal(ctx, &eventsrepo.Signal{
				ID:             uuid.New().String(),
				WebhookEventID: row.ID,
				VehicleID:      row.VehicleID,
				SignalPath:     entry.Path,
				Value:          entry.Value,
				Unit:           entry.Unit,
				RecordedAt:     row.ReceivedAt,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				tally.Failed++
				tally.Reasons = append(tally.Reasons, fmt.Sprintf("%s: %v", entry.Path, err))
				metrics.Signals.WithLabelValues(metrics.SignalFailed).Inc()
				logger.Warn().Err(err).Str("signalPath", entry.Path).Msg("Failed to store signal.")
				return nil
			}
			tally.Succeeded++
			metrics.Signals.WithLabelValues(metrics.SignalStored).Inc()
			return nil
		})
	}
	_ = group.Wait()
	return tally
}

func (c *Coordinator) publish(ctx context.Context, logger *zerolog.Logger, row *eventsrepo.WebhookEvent, event *signals.NormalizedEvent) {
	if c.publisher == nil {
		return
	}
	ce := cloudevent.CloudEvent[IngestedEvent]{
		CloudEventHeader: cloudevent.CloudEventHeader{
			ID:              row.ID,
			Source:          IngestedEventSource,
			Subject:         row.VehicleID,
			Time:            row.ReceivedAt,
			DataContentType: "application/json",
			DataVersion:     ingestedDataVersion,
			Type:            IngestedEventType,
			SpecVersion:     "1.0",
		},
		Data: IngestedEvent{
			EventID:        row.ID,
			EventName:      row.EventName,
			VehicleID:      row.VehicleID,
			EventTimestamp: row.EventTimestamp,
			Signals:        event.Signals,
		},
	}
	if err := c.publisher.Publish(ctx, row.VehicleID, ce); err != nil {
		metrics.PublishErrors.Inc()
		logger.Error().Err(err).Msg("Failed to publish ingested event.")
	}
}
