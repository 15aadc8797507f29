package signals

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// VerifyEventType is the eventType of the provider's one-time handshake.
const VerifyEventType = "VERIFY"

// Model years outside this range are treated as absent.
const (
	minModelYear = 1886
	maxModelYear = 9999
)

// PayloadKind identifies the shape of a webhook payload. It is decided once,
// when the body is parsed.
type PayloadKind int

const (
	// PayloadKindUnknown carries neither eventType nor eventName.
	PayloadKindUnknown PayloadKind = iota
	// PayloadKindLegacy is the generic {eventName, vehicleId, timestamp, data} shape.
	PayloadKindLegacy
	// PayloadKindNative is the provider shape {eventType, data: {vehicle, signals[]}}.
	PayloadKindNative
	// PayloadKindVerify is the native handshake, eventType == "VERIFY".
	PayloadKindVerify
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadKindLegacy:
		return "legacy"
	case PayloadKindNative:
		return "native"
	case PayloadKindVerify:
		return "verify"
	default:
		return "unknown"
	}
}

// Payload is a parsed webhook body.
type Payload struct {
	Kind PayloadKind
	// Raw is the body exactly as received.
	Raw  []byte
	root gjson.Result
}

// VehicleAttributes are the optional descriptive fields of a vehicle.
type VehicleAttributes struct {
	Make  null.String
	Model null.String
	Year  null.Int
}

// NormalizedEvent is the canonical form of an ingested webhook payload.
type NormalizedEvent struct {
	Kind           PayloadKind
	EventName      string
	VehicleID      string
	EventTimestamp time.Time
	Vehicle        VehicleAttributes
	RawPayload     []byte
	Signals        []SignalEntry
	Skipped        []SkippedSignal
}

// Parse validates body as a JSON object and determines its payload kind.
func Parse(body []byte) (*Payload, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: body is not a JSON object", ErrInvalidJSON)
	}
	p := &Payload{Raw: body, root: root}
	switch {
	case root.Get("eventType").Exists():
		p.Kind = PayloadKindNative
		if et := root.Get("eventType"); et.Type == gjson.String && et.Str == VerifyEventType {
			p.Kind = PayloadKindVerify
		}
	case root.Get("eventName").Exists():
		p.Kind = PayloadKindLegacy
	default:
		p.Kind = PayloadKindUnknown
	}
	return p, nil
}

// Challenge returns the handshake challenge string, data.challenge.
func (p *Payload) Challenge() (string, bool) {
	c := p.root.Get("data.challenge")
	if c.Type != gjson.String || c.Str == "" {
		return "", false
	}
	return c.Str, true
}

// Normalize maps a parsed payload onto a NormalizedEvent. receivedAt is used as
// the event timestamp when a native payload does not carry meta.deliveredAt.
// Malformed native signals are skipped and reported in NormalizedEvent.Skipped;
// only missing identity fields fail the whole event.
func Normalize(p *Payload, receivedAt time.Time) (*NormalizedEvent, error) {
	switch p.Kind {
	case PayloadKindNative:
		return normalizeNative(p, receivedAt)
	case PayloadKindLegacy:
		return normalizeLegacy(p)
	case PayloadKindVerify:
		return nil, fmt.Errorf("%w: handshake payloads carry no event", ErrMissingFields)
	default:
		return nil, fmt.Errorf("%w: eventType or eventName is required", ErrMissingFields)
	}
}

func normalizeNative(p *Payload, receivedAt time.Time) (*NormalizedEvent, error) {
	var missing []string
	eventType, ok := identityField(p.root.Get("eventType"))
	if !ok {
		missing = append(missing, "eventType")
	}
	vehicle := p.root.Get("data.vehicle")
	vehicleID, ok := identityField(vehicle.Get("id"))
	if !ok {
		missing = append(missing, "data.vehicle.id")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	ts := receivedAt
	if delivered := p.root.Get("meta.deliveredAt"); delivered.Type == gjson.String {
		if parsed, err := time.Parse(time.RFC3339Nano, delivered.Str); err == nil {
			ts = parsed
		}
	}

	ev := &NormalizedEvent{
		Kind:           PayloadKindNative,
		EventName:      eventType,
		VehicleID:      vehicleID,
		EventTimestamp: ts,
		Vehicle:        vehicleAttributes(vehicle),
		RawPayload:     p.Raw,
		Signals:        make([]SignalEntry, 0),
	}

	sigs := p.root.Get("data.signals")
	if !sigs.IsArray() {
		return ev, nil
	}
	for i, sig := range sigs.Array() {
		entry, reason := nativeSignal(sig)
		if reason != "" {
			ev.Skipped = append(ev.Skipped, SkippedSignal{Index: i, Reason: reason})
			continue
		}
		ev.Signals = append(ev.Signals, entry)
	}
	return ev, nil
}

// nativeSignal validates one provider signal and extracts its value. A non-empty
// reason means the signal is malformed and must be skipped.
func nativeSignal(sig gjson.Result) (SignalEntry, string) {
	if !sig.IsObject() {
		return SignalEntry{}, "signal is not an object"
	}
	group := sig.Get("group")
	if group.Type != gjson.String || group.Str == "" {
		return SignalEntry{}, "signal group is missing"
	}
	name := sig.Get("name")
	if name.Type != gjson.String || name.Str == "" {
		return SignalEntry{}, "signal name is missing"
	}

	entry := SignalEntry{
		Path: strings.ToLower(group.Str) + "." + strings.ToLower(name.Str),
	}
	body := sig.Get("body")
	if !body.IsObject() {
		return entry, ""
	}
	value := body.Get("value")
	switch {
	case isScalar(value):
		entry.Value = scalarValue(value).Text()
	case value.IsObject() || value.IsArray():
		entry.Value = null.StringFrom(compactJSON(value.Raw))
	case !value.Exists() && hasMembers(body):
		entry.Value = null.StringFrom(compactJSON(body.Raw))
	}
	if unit := body.Get(unitKey); unit.Type == gjson.String && unit.Str != "" {
		entry.Unit = null.StringFrom(unit.Str)
	}
	return entry, ""
}

func normalizeLegacy(p *Payload) (*NormalizedEvent, error) {
	var missing []string
	eventName, ok := identityField(p.root.Get("eventName"))
	if !ok {
		missing = append(missing, "eventName")
	}
	vehicleID, ok := identityField(p.root.Get("vehicleId"))
	if !ok {
		missing = append(missing, "vehicleId")
	}
	ts, ok := parseTimestamp(p.root.Get("timestamp"))
	if !ok {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	ev := &NormalizedEvent{
		Kind:           PayloadKindLegacy,
		EventName:      eventName,
		VehicleID:      vehicleID,
		EventTimestamp: ts,
		RawPayload:     p.Raw,
		Signals:        make([]SignalEntry, 0),
	}
	for i, e := range Flatten(p.root.Get("data")) {
		if e.Path == "" {
			ev.Skipped = append(ev.Skipped, SkippedSignal{Index: i, Reason: "signal path is empty"})
			continue
		}
		ev.Signals = append(ev.Signals, SignalEntry{
			Path:  strings.ToLower(e.Path),
			Value: e.Value.Text(),
			Unit:  e.Unit,
		})
	}
	return ev, nil
}

func missingFields(fields []string) error {
	return fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(fields, ", "))
}

// identityField accepts non-empty strings and numbers as identifiers.
func identityField(r gjson.Result) (string, bool) {
	switch r.Type {
	case gjson.String:
		return r.Str, r.Str != ""
	case gjson.Number:
		return r.Raw, true
	default:
		return "", false
	}
}

// parseTimestamp accepts RFC 3339 strings and epoch milliseconds.
func parseTimestamp(r gjson.Result) (time.Time, bool) {
	switch r.Type {
	case gjson.String:
		ts, err := time.Parse(time.RFC3339Nano, r.Str)
		if err != nil {
			return time.Time{}, false
		}
		return ts, true
	case gjson.Number:
		return time.UnixMilli(r.Int()).UTC(), true
	default:
		return time.Time{}, false
	}
}

func vehicleAttributes(vehicle gjson.Result) VehicleAttributes {
	var attrs VehicleAttributes
	if !vehicle.IsObject() {
		return attrs
	}
	if v := vehicle.Get("make"); v.Type == gjson.String && v.Str != "" {
		attrs.Make = null.StringFrom(v.Str)
	}
	if v := vehicle.Get("model"); v.Type == gjson.String && v.Str != "" {
		attrs.Model = null.StringFrom(v.Str)
	}
	year := vehicle.Get("year")
	switch year.Type {
	case gjson.Number:
		if y := year.Int(); validModelYear(y) {
			attrs.Year = null.IntFrom(int(y))
		}
	case gjson.String:
		if y, err := strconv.ParseInt(year.Str, 10, 64); err == nil && validModelYear(y) {
			attrs.Year = null.IntFrom(int(y))
		}
	}
	return attrs
}

// validModelYear reports whether y is a plausible model year. Anything else
// is dropped so the vehicle row is still written.
func validModelYear(y int64) bool {
	return y >= minModelYear && y <= maxModelYear
}

func hasMembers(obj gjson.Result) bool {
	found := false
	obj.ForEach(func(_, _ gjson.Result) bool {
		found = true
		return false
	})
	return found
}

func compactJSON(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}
