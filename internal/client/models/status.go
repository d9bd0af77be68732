package models

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Status is an opaque JSON object returned by health checks, login, logout,
// delete and /me. Fields are read by gjson path.
type Status json.RawMessage

// Get returns the value at path, e.g. "status" or "user.username".
func (s Status) Get(path string) gjson.Result {
	return gjson.GetBytes(s, path)
}

// String returns the compact JSON text, or "{}" when empty.
func (s Status) String() string {
	if len(s) == 0 {
		return "{}"
	}
	return gjson.ParseBytes(s).Raw
}

func (s Status) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return s, nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	*s = append((*s)[0:0], data...)
	return nil
}
