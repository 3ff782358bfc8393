package gamescout

import (
	"fmt"

	"github.com/itchio/httpkit/neterr"
	"github.com/pkg/errors"
)

// APIError is an error response from the GameScout backend. Message is
// the server's `error` field, empty if the body didn't carry one.
type APIError struct {
	Message    string `json:"error"`
	StatusCode int    `json:"statusCode"`
}

var _ error = (*APIError)(nil)

func (ae *APIError) Error() string {
	if ae.Message == "" {
		return fmt.Sprintf("GameScout API error (%d)", ae.StatusCode)
	}
	return fmt.Sprintf("GameScout API error (%d): %s", ae.StatusCode, ae.Message)
}

// IsAPIError returns true if an error is a GameScout API error,
// even if it's wrapped with github.com/pkg/errors
func IsAPIError(err error) bool {
	_, ok := AsAPIError(err)
	return ok
}

// AsAPIError returns an *APIError and true if the
// passed error (no matter how deeply wrapped it is)
// is an *APIError. Otherwise it returns nil, false.
func AsAPIError(err error) (*APIError, bool) {
	rootErr := errors.Cause(err)
	apiError, ok := rootErr.(*APIError)
	return apiError, ok
}

// IsNetworkError returns true if the request never got an answer
// (connection refused, reset, timed out...)
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	return neterr.IsNetworkError(errors.Cause(err))
}

// MessageOf returns what should be shown to the user for err: the
// server's message if it sent one, fallback otherwise.
func MessageOf(err error, fallback string) string {
	if ae, ok := AsAPIError(err); ok && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// Failure is an operation that failed in a way worth telling the
// user about. Message is what they should see, Err what caused it.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Cause() error {
	return f.Err
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure wraps err with the message MessageOf resolves for it.
func NewFailure(err error, fallback string) error {
	return &Failure{
		Message: MessageOf(err, fallback),
		Err:     err,
	}
}
