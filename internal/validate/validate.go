// Package validate implements client-side form validation. Anything
// rejected here never produces a network call; the server remains the
// authority for everything that passes.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxReviewChars is the review text ceiling. Exactly this many
// characters is accepted; one more is rejected.
const MaxReviewChars = 100

// MinPasswordChars is the password floor.
const MinPasswordChars = 7

// ErrValidation tags every validation failure for errors.Is checks.
var ErrValidation = errors.New("validation failed")

var v = validator.New(validator.WithRequiredStructEnabled())

// FieldError is one field's failure, with a message fit for direct
// display next to the field.
type FieldError struct {
	Field   string
	Message string
}

// FieldErrors collects per-field failures.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, e := range fe {
		msgs[i] = e.Message
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(msgs, "; "))
}

// Is makes errors.Is(err, ErrValidation) hold for FieldErrors.
func (fe FieldErrors) Is(target error) bool {
	return target == ErrValidation
}

// For returns the message recorded for a field, or empty.
func (fe FieldErrors) For(field string) string {
	for _, e := range fe {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

type credentials struct {
	Name     string `validate:"omitempty,notblank"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=7"`
}

type reviewInput struct {
	Rating int    `validate:"required,gte=1,lte=5"`
	Text   string `validate:"notblank,max=100"`
}

type profileInput struct {
	Name  string `validate:"required,notblank"`
	Email string `validate:"required,email"`
}

func init() {
	// notblank rejects strings that are empty after trimming, without
	// forbidding interior whitespace the way alphanum-style tags do.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Login checks sign-in credentials.
func Login(email, password string) error {
	return run(credentials{Email: email, Password: password}, credentialMessages)
}

// Registration checks sign-up input; name is required here.
func Registration(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		errs := FieldErrors{{Field: "name", Message: "Name is required"}}
		if rest := Login(email, password); rest != nil {
			var fe FieldErrors
			if errors.As(rest, &fe) {
				errs = append(errs, fe...)
			}
		}
		return errs
	}
	return run(credentials{Name: name, Email: email, Password: password}, credentialMessages)
}

// Review checks a star review before dispatch. Text of exactly
// MaxReviewChars passes; MaxReviewChars+1 fails.
func Review(rating int, text string) error {
	return run(reviewInput{Rating: rating, Text: text}, reviewMessages)
}

// Profile checks a profile update.
func Profile(name, email string) error {
	return run(profileInput{Name: name, Email: email}, profileMessages)
}

func run(input any, messages func(validator.FieldError) FieldError) error {
	err := v.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	out := make(FieldErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, messages(fe))
	}
	return out
}

func credentialMessages(fe validator.FieldError) FieldError {
	switch fe.Field() {
	case "Email":
		if fe.Tag() == "required" {
			return FieldError{Field: "email", Message: "Email is required"}
		}
		return FieldError{Field: "email", Message: "Email is invalid"}
	case "Password":
		if fe.Tag() == "required" {
			return FieldError{Field: "password", Message: "Password is required"}
		}
		return FieldError{Field: "password", Message: fmt.Sprintf("Password must be at least %d characters", MinPasswordChars)}
	case "Name":
		return FieldError{Field: "name", Message: "Name is required"}
	}
	return FieldError{Field: strings.ToLower(fe.Field()), Message: "Invalid value"}
}

func reviewMessages(fe validator.FieldError) FieldError {
	switch fe.Field() {
	case "Rating":
		return FieldError{Field: "rating", Message: "Please select a rating between 1 and 5"}
	case "Text":
		if fe.Tag() == "max" {
			return FieldError{Field: "text", Message: fmt.Sprintf("Review must be %d characters or less", MaxReviewChars)}
		}
		return FieldError{Field: "text", Message: "Review text is required"}
	}
	return FieldError{Field: strings.ToLower(fe.Field()), Message: "Invalid value"}
}

func profileMessages(fe validator.FieldError) FieldError {
	switch fe.Field() {
	case "Name":
		return FieldError{Field: "name", Message: "Name is required"}
	case "Email":
		if fe.Tag() == "required" {
			return FieldError{Field: "email", Message: "Email is required"}
		}
		return FieldError{Field: "email", Message: "Email is invalid"}
	}
	return FieldError{Field: strings.ToLower(fe.Field()), Message: "Invalid value"}
}
