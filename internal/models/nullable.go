package models

import (
	"bytes"
	"encoding/json"
)

// The nullable types exist for PATCH bodies, where three states matter:
// field absent (Set=false), field explicitly null (Set=true, Valid=false),
// and field carrying a value (Set=true, Valid=true). A plain pointer
// collapses the first two into nil.

var jsonNull = []byte("null")

// NullableString is a tri-state string for partial updates.
type NullableString struct {
	Value string
	Valid bool // false when the JSON value was null
	Set   bool // false when the field was absent entirely
}

func (ns *NullableString) UnmarshalJSON(data []byte) error {
	ns.Set = true
	if bytes.Equal(data, jsonNull) {
		ns.Valid = false
		ns.Value = ""
		return nil
	}
	if err := json.Unmarshal(data, &ns.Value); err != nil {
		return err
	}
	ns.Valid = true
	return nil
}

func (ns NullableString) MarshalJSON() ([]byte, error) {
	if !ns.Valid {
		return jsonNull, nil
	}
	return json.Marshal(ns.Value)
}

// NullableFloat64 is a tri-state number for partial updates.
type NullableFloat64 struct {
	Value float64
	Valid bool
	Set   bool
}

func (nf *NullableFloat64) UnmarshalJSON(data []byte) error {
	nf.Set = true
	if bytes.Equal(data, jsonNull) {
		nf.Valid = false
		nf.Value = 0
		return nil
	}
	if err := json.Unmarshal(data, &nf.Value); err != nil {
		return err
	}
	nf.Valid = true
	return nil
}

func (nf NullableFloat64) MarshalJSON() ([]byte, error) {
	if !nf.Valid {
		return jsonNull, nil
	}
	return json.Marshal(nf.Value)
}
