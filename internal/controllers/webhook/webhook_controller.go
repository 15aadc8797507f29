package webhook

import (
	"bytes"
	"context"
	"errors"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/metrics"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/ingest"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signals"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/signature"
	"github.com/gofiber/fiber/v2"
)

const databaseStatusStored = "stored"

type Ingester interface {
	Ingest(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

// WebhookController receives provider webhook deliveries.
type WebhookController struct {
	ingester Ingester
}

// NewWebhookController creates a new WebhookController.
func NewWebhookController(ingester Ingester) *WebhookController {
	return &WebhookController{ingester: ingester}
}

// ReceiveWebhook godoc
// @Summary      Receive a vehicle telemetry webhook
// @Description  Accepts a provider webhook. A VERIFY handshake is answered with a ChallengeResponse. Any other payload must carry a valid SC-Signature header; its event and normalized signals are stored.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        SC-Signature  header    string             false  "Hex HMAC-SHA256 of the raw body"
// @Param        payload       body      object             true   "Provider payload"
// @Success      200           {object}  IngestResponse     "Event stored"
// @Failure      400           "Invalid JSON, missing fields or missing challenge"
// @Failure      401           {object}  ErrorResponse      "Invalid signature"
// @Failure      500           "Secret not configured or event could not be stored"
// @Router       /webhook [post]
func (w *WebhookController) ReceiveWebhook(c *fiber.Ctx) error {
	result, err := w.ingester.Ingest(c.UserContext(), ingest.Request{
		// fiber reuses the request buffer once the handler returns
		Body:      bytes.Clone(c.BodyRaw()),
		Signature: c.Get(signature.HeaderName),
	})
	if err != nil {
		return rejectWebhook(c, err)
	}

	if result.IsChallenge() {
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeChallenge).Inc()
		return c.JSON(ChallengeResponse{Challenge: result.Challenge})
	}

	metrics.WebhookRequests.WithLabelValues(metrics.OutcomeIngested).Inc()
	return c.JSON(IngestResponse{
		OK:             true,
		ID:             result.EventID,
		DatabaseStatus: databaseStatusStored,
		Signals: SignalCounts{
			Succeeded: result.Signals.Succeeded,
			Failed:    result.Signals.Failed,
			Skipped:   result.Signals.Skipped,
		},
	})
}

func rejectWebhook(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ingest.ErrInvalidSignature):
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeInvalidSignature).Inc()
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{OK: false, Error: "invalid signature"})
	case errors.Is(err, ingest.ErrSecretNotConfigured):
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
		return richerrors.Error{
			ExternalMsg: "webhook secret not configured",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	case errors.Is(err, signals.ErrInvalidJSON):
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeInvalidJSON).Inc()
		return richerrors.Error{
			ExternalMsg: "invalid json",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	case errors.Is(err, signals.ErrMissingFields):
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeMissingFields).Inc()
		return richerrors.Error{
			ExternalMsg: err.Error(),
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	case errors.Is(err, ingest.ErrMissingChallenge):
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeMissingFields).Inc()
		return richerrors.Error{
			ExternalMsg: "missing challenge",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	default:
		metrics.WebhookRequests.WithLabelValues(metrics.OutcomeStorageError).Inc()
		return richerrors.Error{
			ExternalMsg: "failed to store event",
			Err:         err,
			Code:        fiber.StatusInternalServerError,
		}
	}
}
