package signals

import (
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/tidwall/gjson"
)

// unitKey is the sibling key that carries the unit of a value group.
const unitKey = "unit"

// Flatten walks a JSON object depth-first, in document order, and returns one
// entry per scalar leaf. Nested objects are treated as value groups whose
// "unit" string is attached to every scalar sibling. Arrays are dropped.
// Anything other than an object yields no entries.
func Flatten(data gjson.Result) []Entry {
	entries := make([]Entry, 0)
	return flattenObject(entries, data, nil)
}

func flattenObject(entries []Entry, obj gjson.Result, parent []string) []Entry {
	if !obj.IsObject() {
		return entries
	}
	obj.ForEach(func(key, value gjson.Result) bool {
		path := childPath(parent, key.Str)
		switch {
		case value.IsObject():
			entries = flattenGroup(entries, value, path)
		case value.IsArray():
		default:
			entries = append(entries, Entry{Path: strings.Join(path, "."), Value: scalarValue(value)})
		}
		return true
	})
	return entries
}

// flattenGroup emits the scalar children of a value group at path. Object
// children are flattened as groups of their own one level deeper; the unit of
// the enclosing group does not carry into them.
func flattenGroup(entries []Entry, group gjson.Result, path []string) []Entry {
	var unit null.String
	if u := group.Get(unitKey); u.Type == gjson.String {
		unit = null.StringFrom(u.Str)
	}
	group.ForEach(func(key, child gjson.Result) bool {
		if key.Str == unitKey {
			return true
		}
		switch {
		case child.IsObject():
			entries = flattenGroup(entries, child, childPath(path, key.Str))
		case child.IsArray():
		default:
			entries = append(entries, Entry{
				Path:  strings.Join(childPath(path, key.Str), "."),
				Value: scalarValue(child),
				Unit:  unit,
			})
		}
		return true
	})
	return entries
}

func childPath(parent []string, key string) []string {
	path := make([]string, len(parent), len(parent)+1)
	copy(path, parent)
	return append(path, key)
}

func scalarValue(r gjson.Result) Value {
	switch r.Type {
	case gjson.Number:
		return NumberValue(r.Raw)
	case gjson.String:
		return StringValue(r.Str)
	case gjson.True:
		return BoolValue(true)
	case gjson.False:
		return BoolValue(false)
	default:
		return NullValue()
	}
}

func isScalar(r gjson.Result) bool {
	switch r.Type {
	case gjson.Number, gjson.String, gjson.True, gjson.False:
		return true
	default:
		return false
	}
}
