package models

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Number is a float request field that also accepts a numeric string such as "100".
type Number float64

// Integer is an int request field that accepts integral numbers (10, 10.0, "10").
// Fractional values are rejected.
type Integer int

var (
	floatType = reflect.TypeOf(float64(0))
	intType   = reflect.TypeOf(int(0))
)

func (n *Number) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		return nil
	}
	v, ok := parseNumeric(raw)
	if !ok {
		return typeError(raw, floatType)
	}
	*n = Number(v)
	return nil
}

func (i *Integer) UnmarshalJSON(raw []byte) error {
	if isNull(raw) {
		return nil
	}
	v, ok := parseNumeric(raw)
	if !ok || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return typeError(raw, intType)
	}
	*i = Integer(v)
	return nil
}

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseNumeric accepts a JSON number or a string holding one. Non-finite values are rejected.
func parseNumeric(raw []byte) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
	} else if raw[0] != '-' && (raw[0] < '0' || raw[0] > '9') {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// typeError mirrors encoding/json's own error so the decoder fills in the field name.
func typeError(raw []byte, t reflect.Type) error {
	return &json.UnmarshalTypeError{Value: describeJSON(raw), Type: t}
}

func describeJSON(raw []byte) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "empty value"
	}
	switch raw[0] {
	case '"':
		return "string " + string(raw)
	case 't', 'f':
		return "bool"
	case '{':
		return "object"
	case '[':
		return "array"
	}
	return "number " + string(raw)
}
