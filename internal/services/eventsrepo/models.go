package eventsrepo

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/types"
)

// Vehicle is a row of the vehicles table. Rows are written once and never updated.
type Vehicle struct {
	ID        string      `boil:"id" json:"id"`
	Make      null.String `boil:"make" json:"make"`
	Model     null.String `boil:"model" json:"model"`
	Year      null.Int    `boil:"year" json:"year"`
	CreatedAt time.Time   `boil:"created_at" json:"createdAt"`
}

// WebhookEvent is one accepted webhook delivery with its raw payload.
type WebhookEvent struct {
	ID             string     `boil:"id" json:"id"`
	VehicleID      string     `boil:"vehicle_id" json:"vehicleId"`
	EventName      string     `boil:"event_name" json:"eventName"`
	EventTimestamp time.Time  `boil:"event_timestamp" json:"eventTimestamp"`
	ReceivedAt     time.Time  `boil:"received_at" json:"receivedAt"`
	SignatureValid bool       `boil:"signature_valid" json:"signatureValid"`
	RawPayload     types.JSON `boil:"raw_payload" json:"rawPayload" swaggertype:"object"`
}

// Signal is one normalized data point derived from a webhook event.
type Signal struct {
	ID             string      `boil:"id" json:"id"`
	WebhookEventID string      `boil:"webhook_event_id" json:"webhookEventId"`
	VehicleID      string      `boil:"vehicle_id" json:"vehicleId"`
	SignalPath     string      `boil:"signal_path" json:"signalPath"`
	Value          null.String `boil:"value" json:"value" swaggertype:"string"`
	Unit           null.String `boil:"unit" json:"unit" swaggertype:"string"`
	RecordedAt     time.Time   `boil:"recorded_at" json:"recordedAt"`
}

// EventFilter selects webhook events. Empty fields do not filter.
type EventFilter struct {
	VehicleID string
	EventName string
	Limit     int
}

// SignalFilter selects the time series of one signal of one vehicle.
type SignalFilter struct {
	VehicleID  string
	SignalPath string
	Limit      int
}
