// Package jsondoc wraps decoded JSON in a Value with explicit accessors.
//
// Every lookup reports whether it succeeded; nothing falls back to a zero
// value silently. Documents are decoded with JSON5 rules so script-embedded
// state (trailing commas, unquoted keys) parses as well as strict JSON.
package jsondoc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/titanous/json5"
)

// ErrUnexpected is wrapped by every structural error of this package
var ErrUnexpected = errors.New("unexpected JSON structure")

// Kind is the type of a JSON value
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// Value is an immutable decoded JSON value
type Value struct {
	raw any
}

// Parse decodes data into a Value
func Parse(data []byte) (Value, error) {
	var raw any
	if err := json5.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	return Value{raw: raw}, nil
}

// Kind reports the type of v
func (v Value) Kind() Kind {
	switch v.raw.(type) {
	case bool:
		return Bool
	case float64:
		return Number
	case string:
		return String
	case []any:
		return Array
	case map[string]any:
		return Object
	default:
		return Null
	}
}

// IsNull reports whether v is JSON null (or absent)
func (v Value) IsNull() bool {
	return v.Kind() == Null
}

// Get returns the member key of an object
func (v Value) Get(key string) (Value, bool) {
	obj, ok := v.raw.(map[string]any)
	if !ok {
		return Value{}, false
	}
	member, ok := obj[key]
	if !ok {
		return Value{}, false
	}
	return Value{raw: member}, true
}

// Has reports whether an object has key, even if its value is null
func (v Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Lookup follows a dot-separated path of object keys.
// The error names the first segment that could not be followed.
func (v Value) Lookup(path string) (Value, error) {
	if path == "" {
		return v, nil
	}

	cur := v
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		if cur.Kind() != Object {
			return Value{}, fmt.Errorf("%w: %s is %s, not object",
				ErrUnexpected, strings.Join(segments[:i], "."), cur.Kind())
		}
		next, ok := cur.Get(seg)
		if !ok {
			return Value{}, fmt.Errorf("%w: missing %s", ErrUnexpected, strings.Join(segments[:i+1], "."))
		}
		cur = next
	}
	return cur, nil
}

// Items returns the elements of an array
func (v Value) Items() ([]Value, bool) {
	arr, ok := v.raw.([]any)
	if !ok {
		return nil, false
	}
	items := make([]Value, len(arr))
	for i, item := range arr {
		items[i] = Value{raw: item}
	}
	return items, true
}

// Float returns a number value
func (v Value) Float() (float64, bool) {
	f, ok := v.raw.(float64)
	return f, ok
}

// Str returns a string value
func (v Value) Str() (string, bool) {
	s, ok := v.raw.(string)
	return s, ok
}

// Text renders a scalar for display. Numbers use the shortest
// representation that round-trips; null, arrays and objects have no text.
func (v Value) Text() (string, bool) {
	switch raw := v.raw.(type) {
	case string:
		return raw, true
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(raw), true
	default:
		return "", false
	}
}
