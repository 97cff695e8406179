package models

import (
	"bytes"
	"encoding/json"
)

// Episode represents one episode of a show, copied field by field from the catalog
type Episode struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Season Ordinal `json:"season"`
	Number Ordinal `json:"number"`
}

// Ordinal carries a season or episode number exactly as the catalog sent it.
// Numbers keep their literal text, strings are unquoted and null is kept as "null".
// A field missing from the payload stays empty.
type Ordinal string

// UnmarshalJSON implements json.Unmarshaler.
func (o *Ordinal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = Ordinal(s)
		return nil
	}
	*o = Ordinal(data)
	return nil
}

// MarshalJSON implements json.Marshaler. Numeric text and null are written back as bare
// JSON values, anything else as a string.
func (o Ordinal) MarshalJSON() ([]byte, error) {
	if o == "null" || json.Valid([]byte(o)) && o != "" && o[0] != '"' && o[0] != '{' && o[0] != '[' {
		return []byte(o), nil
	}
	return json.Marshal(string(o))
}

// String returns the ordinal text.
func (o Ordinal) String() string {
	return string(o)
}
