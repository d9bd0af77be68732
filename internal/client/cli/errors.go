package cli

import (
	"errors"

	"github.com/dmitrijs2005/cockpdf/internal/client/client"
)

// describeError renders err for the user. Only API errors carry server
// text; anything unclassified is reported generically.
func describeError(err error) string {
	var in inputError
	if errors.As(err, &in) {
		return in.Error()
	}
	if errors.Is(err, ErrBackendUnhealthy) {
		return err.Error()
	}

	switch client.Classify(err) {
	case client.KindNone:
		return ""
	case client.KindAuthRequired:
		return "authentication required, please log in"
	case client.KindTransport:
		apiErr, _ := client.AsAPIError(err)
		if apiErr.IsAuthFailure() {
			return "invalid credentials"
		}
		return apiErr.Message
	default:
		return "network/server error"
	}
}

// inputError marks a local validation failure; its text is shown as-is.
type inputError struct {
	err error
}

func (e inputError) Error() string { return e.err.Error() }

func (e inputError) Unwrap() error { return e.err }
