// Package eventsrepo persists webhook events, their vehicles, and the signals
// derived from them.
package eventsrepo

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/DIMO-Network/server-garage/pkg/richerrors"
	"github.com/DIMO-Network/vehicle-signals-webhook/internal/db/migrations"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/google/uuid"
)

const (
	// DefaultEventLimit is the page size of ListEvents when none is given.
	DefaultEventLimit = 50
	// MaxEventLimit caps the page size of ListEvents.
	MaxEventLimit = 200
	// DefaultSignalLimit is the page size of ListSignals when none is given.
	DefaultSignalLimit = 200
	// MaxSignalLimit caps the page size of ListSignals.
	MaxSignalLimit = 1000
)

const (
	vehiclesTable = migrations.SchemaName + ".vehicles"
	eventsTable   = migrations.SchemaName + ".webhook_events"
	signalsTable  = migrations.SchemaName + ".signals"

	eventColumns  = "id, vehicle_id, event_name, event_timestamp, received_at, signature_valid, raw_payload"
	signalColumns = "id, webhook_event_id, vehicle_id, signal_path, value, unit, recorded_at"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// EnsureVehicle inserts the vehicle unless a row with the same id already exists.
// Existing rows are left untouched. It reports whether this call created the row.
func (r *Repository) EnsureVehicle(ctx context.Context, vehicle *Vehicle) (bool, error) {
	if vehicle.ID == "" {
		return false, fmt.Errorf("%w: vehicle id is required", ValidationError)
	}
	res, err := queries.Raw(
		`INSERT INTO `+vehiclesTable+` (id, make, model, year) VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year,
	).ExecContext(ctx, r.db)
	if err != nil {
		return false, fmt.Errorf("failed to insert vehicle %s: %w", vehicle.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected == 1, nil
}

// InsertEvent stores a webhook event. An empty ID is replaced by a new UUID and a
// zero ReceivedAt by the current time; both are written back to event.
func (r *Repository) InsertEvent(ctx context.Context, event *WebhookEvent) error {
	if event.VehicleID == "" || event.EventName == "" {
		return fmt.Errorf("%w: vehicle id and event name are required", ValidationError)
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.ReceivedAt.IsZero() {
		event.ReceivedAt = time.Now().UTC()
	}
	_, err := queries.Raw(
		`INSERT INTO `+eventsTable+` (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.VehicleID, event.EventName, event.EventTimestamp,
		event.ReceivedAt, event.SignatureValid, event.RawPayload,
	).ExecContext(ctx, r.db)
	if err != nil {
		return fmt.Errorf("failed to insert webhook event: %w", err)
	}
	return nil
}

// InsertSignal stores one signal row. The referenced event must already exist.
func (r *Repository) InsertSignal(ctx context.Context, signal *Signal) error {
	if signal.SignalPath == "" {
		return fmt.Errorf("%w: signal path is required", ValidationError)
	}
	if signal.ID == "" {
		signal.ID = uuid.New().String()
	}
	_, err := queries.Raw(
		`INSERT INTO `+signalsTable+` (`+signalColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		signal.ID, signal.WebhookEventID, signal.VehicleID, signal.SignalPath,
		signal.Value, signal.Unit, signal.RecordedAt,
	).ExecContext(ctx, r.db)
	if err != nil {
		return fmt.Errorf("failed to insert signal %s: %w", signal.SignalPath, err)
	}
	return nil
}

// ListEvents returns events newest first, optionally filtered by vehicle and event name.
func (r *Repository) ListEvents(ctx context.Context, filter EventFilter) ([]*WebhookEvent, error) {
	var (
		where []string
		args  []any
	)
	if filter.VehicleID != "" {
		args = append(args, filter.VehicleID)
		where = append(where, "vehicle_id = $"+strconv.Itoa(len(args)))
	}
	if filter.EventName != "" {
		args = append(args, filter.EventName)
		where = append(where, "event_name = $"+strconv.Itoa(len(args)))
	}
	args = append(args, clampLimit(filter.Limit, DefaultEventLimit, MaxEventLimit))

	query := `SELECT ` + eventColumns + ` FROM ` + eventsTable
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY received_at DESC LIMIT $` + strconv.Itoa(len(args))

	var events []*WebhookEvent
	if err := queries.Raw(query, args...).Bind(ctx, r.db, &events); err != nil {
		return nil, richerrors.Error{
			ExternalMsg: "Error listing events",
			Err:         err,
			Code:        http.StatusInternalServerError,
		}
	}
	if events == nil {
		events = []*WebhookEvent{}
	}
	return events, nil
}

// ListSignals returns the time series of one signal of one vehicle, oldest first.
func (r *Repository) ListSignals(ctx context.Context, filter SignalFilter) ([]*Signal, error) {
	if filter.VehicleID == "" || filter.SignalPath == "" {
		return nil, richerrors.Error{
			ExternalMsg: "vehicleId and signalPath are required",
			Err:         ValidationError,
			Code:        http.StatusBadRequest,
		}
	}
	var signals []*Signal
	err := queries.Raw(
		`SELECT `+signalColumns+` FROM `+signalsTable+`
		WHERE vehicle_id = $1 AND signal_path = $2
		ORDER BY recorded_at ASC
		LIMIT $3`,
		filter.VehicleID, filter.SignalPath, clampLimit(filter.Limit, DefaultSignalLimit, MaxSignalLimit),
	).Bind(ctx, r.db, &signals)
	if err != nil {
		return nil, richerrors.Error{
			ExternalMsg: "Error listing signals",
			Err:         err,
			Code:        http.StatusInternalServerError,
		}
	}
	if signals == nil {
		signals = []*Signal{}
	}
	return signals, nil
}

// clampLimit applies def to non-positive limits and caps the rest at maxLimit.
func clampLimit(limit, def, maxLimit int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, maxLimit)
}
