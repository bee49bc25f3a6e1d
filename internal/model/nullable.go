package model

import (
	"encoding/json"
	"reflect"
)

// NullableString distinguishes the three states a JSON field can be in:
// absent (Set false), null (Set true, Valid false) and a string value.
type NullableString struct {
	Set   bool
	Valid bool
	Value string
}

// NewNullableString returns a set, non-null value.
func NewNullableString(value string) NullableString {
	return NullableString{Set: true, Valid: true, Value: value}
}

// Null returns a set, null value.
func Null() NullableString {
	return NullableString{Set: true}
}

// UnmarshalJSON is only invoked for keys present in the document, which
// is what makes Set meaningful.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true

	if string(data) == "null" {
		n.Valid = false
		n.Value = ""
		return nil
	}

	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

func (n NullableString) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns nil for absent or null values.
func (n NullableString) Ptr() *string {
	if !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// nullableStringValue lets validator tags apply to the wrapped string.
// Absent and null values validate as missing.
func nullableStringValue(field reflect.Value) interface{} {
	if n, ok := field.Interface().(NullableString); ok && n.Valid {
		return n.Value
	}
	return nil
}
