package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The backend is not consistent about scalar types: IDs arrive as numbers
// or strings, prices as numbers or numeric strings, flags as booleans or
// 0/1. These types absorb that drift at the decode boundary so the
// normalizer only deals with Go values.

// FlexString decodes a JSON string or number into a string.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	// Bare number, bool, or anything else scalar: keep the raw text.
	*s = FlexString(string(data))
	return nil
}

// FlexNumber decodes a JSON number, numeric string, or null into a float.
// Unparsable values decode to zero rather than failing the record.
type FlexNumber float64

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*n = 0
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = FlexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*n = 0
		return nil
	}
	*n = FlexNumber(f)
	return nil
}

// FlexBool decodes a JSON bool, 0/1 number, or "true"/"1" string.
// A nil *FlexBool means the field was absent.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"true"`, `"1"`, `"yes"`:
		*b = true
	default:
		*b = false
	}
	return nil
}
