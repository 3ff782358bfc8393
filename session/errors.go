package session

import (
	"github.com/pkg/errors"
)

// Shown when the server didn't say what went wrong.
const (
	LoginFailed  = "Login failed"
	SignupFailed = "Signup failed"
	UpdateFailed = "Update failed"
)

// Client-side validation messages.
const (
	PasswordsDoNotMatch = "Passwords do not match"
	PasswordTooShort    = "Password must be at least 6 characters"
	UsernameRequired    = "Username is required"
	EmailRequired       = "Email is required"
	EmailInvalid        = "Email address is invalid"
	CredentialsRequired = "Username and password are required"
)

var ErrNotLoggedIn = errors.New("Not logged in")

// ValidationError is a form that was rejected before any request
// was made.
type ValidationError struct {
	Message string
}

func (ve *ValidationError) Error() string {
	return ve.Message
}

// IsValidationError returns true if err, however wrapped, is
// a *ValidationError.
func IsValidationError(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}
