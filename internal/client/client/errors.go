package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// ErrAuthRequired is returned when an operation needs an authenticated
// session and the backend has confirmed there is none.
var ErrAuthRequired = errors.New("authentication required")

// APIErrorPayload is the JSON body the backend sends with a failed
// response, e.g. {"status_code": 401, "detail": "bad login"}.
//
// Raw always holds the whole document. Detail is set only when "detail" is
// a string; validation errors carry a list there, left in Raw.
type APIErrorPayload struct {
	StatusCode int
	Detail     string
	Extra      json.RawMessage
	Raw        json.RawMessage
}

// parseErrorPayload returns nil unless data is well-formed JSON.
func parseErrorPayload(data []byte) *APIErrorPayload {
	if !gjson.ValidBytes(data) {
		return nil
	}
	p := &APIErrorPayload{Raw: json.RawMessage(data)}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return p
	}
	if sc := doc.Get("status_code"); sc.Type == gjson.Number {
		p.StatusCode = int(sc.Int())
	}
	if d := doc.Get("detail"); d.Type == gjson.String {
		p.Detail = d.String()
	}
	if e := doc.Get("extra"); e.Exists() {
		p.Extra = json.RawMessage(e.Raw)
	}
	return p
}

// Get returns a field of the raw document by gjson path.
func (p *APIErrorPayload) Get(path string) gjson.Result {
	if p == nil {
		return gjson.Result{}
	}
	return gjson.GetBytes(p.Raw, path)
}

// APIError represents a non-2xx response from the backend.
//
// Message is the server-supplied detail when the error body was JSON and
// parseable and its detail a non-empty string, otherwise "HTTP <status>".
// Payload is nil when the body was absent, not JSON, or malformed.
type APIError struct {
	Status  int
	URL     string
	Message string
	Payload *APIErrorPayload
}

func newAPIError(status int, url string, payload *APIErrorPayload) *APIError {
	msg := fmt.Sprintf("HTTP %d", status)
	if payload != nil && payload.Detail != "" {
		msg = payload.Detail
	}
	return &APIError{Status: status, URL: url, Message: msg, Payload: payload}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// IsAuthFailure reports whether the backend rejected the session
// (401 Unauthorized or 403 Forbidden).
func (e *APIError) IsAuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// ErrorKind is the closed set of failure categories callers switch on.
type ErrorKind int

const (
	// KindNone means there was no error.
	KindNone ErrorKind = iota
	// KindTransport is a non-2xx response carried as *APIError.
	KindTransport
	// KindAuthRequired is a local ErrAuthRequired.
	KindAuthRequired
	// KindUnknown covers network failures, decode failures and cancellations.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindTransport:
		return "transport"
	case KindAuthRequired:
		return "auth_required"
	default:
		return "unknown"
	}
}

// Classify maps err onto an ErrorKind. Wrapped errors are unwrapped.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	if errors.Is(err, ErrAuthRequired) {
		return KindAuthRequired
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return KindTransport
	}
	return KindUnknown
}

// AsAPIError returns the *APIError inside err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
