// Package signals turns provider webhook payloads into flat, path-addressed
// signal entries. It understands two payload shapes: the legacy generic shape
// ({eventName, vehicleId, timestamp, data}) and the provider-native shape
// ({eventType, data: {vehicle, signals[]}}).
package signals

import (
	"github.com/aarondl/null/v8"
)

type constErr string

const (
	// ErrInvalidJSON is returned when the body is not a JSON object.
	ErrInvalidJSON constErr = "invalid json"
	// ErrMissingFields is returned when the identity fields of a payload are absent.
	ErrMissingFields constErr = "missing fields"
)

func (e constErr) Error() string {
	return string(e)
}

// ValueKind is the JSON type of a flattened scalar.
type ValueKind int

const (
	ValueNull ValueKind = iota
	ValueNumber
	ValueString
	ValueBool
)

// Value is a scalar leaf of a payload. Numbers keep their JSON literal so that
// the stored text matches what the provider sent.
type Value struct {
	Kind ValueKind
	text string
}

// NullValue returns the JSON null value.
func NullValue() Value { return Value{Kind: ValueNull} }

// NumberValue returns a number value from its JSON literal, e.g. "80" or "33.5".
func NumberValue(literal string) Value { return Value{Kind: ValueNumber, text: literal} }

// StringValue returns a string value.
func StringValue(s string) Value { return Value{Kind: ValueString, text: s} }

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	if b {
		return Value{Kind: ValueBool, text: "true"}
	}
	return Value{Kind: ValueBool, text: "false"}
}

// Text renders the value for the signals.value column. Null stays null.
func (v Value) Text() null.String {
	if v.Kind == ValueNull {
		return null.String{}
	}
	return null.StringFrom(v.text)
}

// Entry is one flattened leaf of a nested attribute tree.
type Entry struct {
	// Path is the dotted path of the leaf, e.g. "battery.value".
	Path string
	// Value is the scalar found at Path.
	Value Value
	// Unit is the sibling "unit" string of the group the leaf belongs to, if any.
	Unit null.String
}

// SignalEntry is a normalized signal ready to be stored.
type SignalEntry struct {
	// Path is the dotted, hierarchical signal name, e.g. "charge.amperage".
	Path string `json:"signalPath"`
	// Value is the textual value of the signal; null when no usable value exists.
	Value null.String `json:"value"`
	// Unit is the optional unit of the value, e.g. "%".
	Unit null.String `json:"unit"`
}

// SkippedSignal records a payload signal that could not be normalized.
type SkippedSignal struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}
