package eventsrepo

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/aarondl/sqlboiler/v4/queries"
)

func isDuplicateKeyError(err error) bool {
	return hasCode(err, DuplicateKeyError)
}

func isNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isValidationError(err error) bool {
	return errors.Is(err, ValidationError) || hasCode(err, CheckViolation)
}

func getVehicle(t *testing.T, repo *Repository, id string) (*Vehicle, error) {
	t.Helper()
	var vehicle Vehicle
	err := queries.Raw(
		`SELECT id, make, model, year, created_at FROM `+vehiclesTable+` WHERE id = $1`, id,
	).Bind(t.Context(), repo.db, &vehicle)
	return &vehicle, err
}

// signalsForEvent returns every signal derived from one event in path order.
func signalsForEvent(t *testing.T, repo *Repository, eventID string) ([]*Signal, error) {
	t.Helper()
	var signals []*Signal
	err := queries.Raw(
		`SELECT `+signalColumns+` FROM `+signalsTable+` WHERE webhook_event_id = $1 ORDER BY signal_path`,
		eventID,
	).Bind(t.Context(), repo.db, &signals)
	return signals, err
}
