// Package history serves the stored webhook events and signal time series.
package history

import (
	"context"
	"strconv"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/services/eventsrepo"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Repository interface {
	ListEvents(ctx context.Context, filter eventsrepo.EventFilter) ([]*eventsrepo.WebhookEvent, error)
	ListSignals(ctx context.Context, filter eventsrepo.SignalFilter) ([]*eventsrepo.Signal, error)
}

// EventsQuery holds the query parameters of GET /events.
type EventsQuery struct {
	VehicleID string `query:"vehicleId"`
	EventName string `query:"eventName"`
	Limit     string `query:"limit"`
}

// SignalsQuery holds the query parameters of GET /signals.
type SignalsQuery struct {
	VehicleID  string `query:"vehicleId" validate:"required"`
	SignalPath string `query:"signalPath" validate:"required"`
	Limit      string `query:"limit"`
}

// HistoryController lists stored events and signals.
type HistoryController struct {
	repo     Repository
	validate *validator.Validate
}

// NewHistoryController creates a new HistoryController.
func NewHistoryController(repo Repository) *HistoryController {
	return &HistoryController{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListEvents godoc
// @Summary      List webhook events
// @Description  Lists stored webhook events, newest received first. Both filters are optional and combine with AND.
// @Tags         History
// @Produce      json
// @Param        vehicleId  query     string  false  "Vehicle id"
// @Param        eventName  query     string  false  "Event name"
// @Param        limit      query     int     false  "Maximum rows, default 50, capped at 200"
// @Success      200        {array}   eventsrepo.WebhookEvent
// @Failure      500        "Internal server error"
// @Router       /events [get]
func (h *HistoryController) ListEvents(c *fiber.Ctx) error {
	var query EventsQuery
	if err := c.QueryParser(&query); err != nil {
		return richerrors.Error{
			ExternalMsg: "Invalid query parameters",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}
	events, err := h.repo.ListEvents(c.UserContext(), eventsrepo.EventFilter{
		VehicleID: query.VehicleID,
		EventName: query.EventName,
		Limit:     parseLimit(query.Limit),
	})
	if err != nil {
		return err
	}
	return c.JSON(events)
}

// ListSignals godoc
// @Summary      List a signal time series
// @Description  Lists the recorded values of one signal of one vehicle, oldest first.
// @Tags         History
// @Produce      json
// @Param        vehicleId   query     string  true   "Vehicle id"
// @Param        signalPath  query     string  true   "Dotted signal path, e.g. battery.value"
// @Param        limit       query     int     false  "Maximum rows, default 200, capped at 1000"
// @Success      200         {array}   eventsrepo.Signal
// @Failure      400         "vehicleId and signalPath are required"
// @Failure      500         "Internal server error"
// @Router       /signals [get]
func (h *HistoryController) ListSignals(c *fiber.Ctx) error {
	var query SignalsQuery
	if err := c.QueryParser(&query); err != nil {
		return richerrors.Error{
			ExternalMsg: "Invalid query parameters",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}
	if err := h.validate.Struct(query); err != nil {
		return richerrors.Error{
			ExternalMsg: "vehicleId and signalPath are required",
			Err:         err,
			Code:        fiber.StatusBadRequest,
		}
	}
	signals, err := h.repo.ListSignals(c.UserContext(), eventsrepo.SignalFilter{
		VehicleID:  query.VehicleID,
		SignalPath: query.SignalPath,
		Limit:      parseLimit(query.Limit),
	})
	if err != nil {
		return err
	}
	return c.JSON(signals)
}

// parseLimit returns 0, meaning the default page size, for anything but a number.
func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return limit
}
