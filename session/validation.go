package session

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// SignupForm is what a user fills in to create an account.
type SignupForm struct {
	Username          string
	Email             string
	Password          string
	ConfirmPassword   string
	FavoriteGenres    []string
	FavoritePlatforms []string
}

// Validate returns the first problem with the form, checking the
// password confirmation first, then the password length.
func (f SignupForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return &ValidationError{Message: PasswordsDoNotMatch}
	}

	return validateInOrder(
		check(f.Password,
			validation.Required.Error(PasswordTooShort),
			validation.Length(6, 0).Error(PasswordTooShort),
		),
		check(f.Username,
			validation.Required.Error(UsernameRequired),
		),
		check(f.Email,
			validation.Required.Error(EmailRequired),
			is.Email.Error(EmailInvalid),
		),
	)
}

func validateLogin(username string, password string) error {
	return validateInOrder(
		check(username, validation.Required.Error(CredentialsRequired)),
		check(password, validation.Required.Error(CredentialsRequired)),
	)
}

type fieldCheck func() error

func check(value interface{}, rules ...validation.Rule) fieldCheck {
	return func() error {
		return validation.Validate(value, rules...)
	}
}

func validateInOrder(checks ...fieldCheck) error {
	for _, c := range checks {
		if err := c(); err != nil {
			return &ValidationError{Message: err.Error()}
		}
	}
	return nil
}
