package urlstate

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is the right-hand side of a parameter write: a single string, an
// ordered list of strings, or null (delete the key).
type Value struct {
	values []string
	null   bool
}

// String replaces the key with exactly one value.
func String(s string) Value {
	return Value{values: []string{s}}
}

// Strings replaces the key with the given ordered values. No values deletes
// the key.
func Strings(ss ...string) Value {
	return Value{values: append([]string(nil), ss...)}
}

// Null deletes the key.
func Null() Value {
	return Value{null: true}
}

// IsNull reports whether applying v removes the key.
func (v Value) IsNull() bool {
	return v.null || len(v.values) == 0
}

// Values returns the values v writes.
func (v Value) Values() []string {
	if v.null {
		return nil
	}
	return append([]string(nil), v.values...)
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch {
	case v.null:
		return []byte("null"), nil
	case len(v.values) == 1:
		return json.Marshal(v.values[0])
	default:
		return json.Marshal(v.Values())
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Null()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = String(s)
		return nil
	case '[':
		var ss []string
		if err := json.Unmarshal(data, &ss); err != nil {
			return err
		}
		*v = Strings(ss...)
		return nil
	}
	return fmt.Errorf("urlstate: parameter value must be a string, a list of strings or null, got %s", data)
}
