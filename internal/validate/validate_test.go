package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	require.Error(t, err)
	var fe FieldErrors
	require.True(t, errors.As(err, &fe))
	return fe
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		field    string
		message  string
	}{
		{name: "valid", email: "a@b.co", password: "hunter22"},
		{name: "missing email", email: "", password: "hunter22", field: "email", message: "Email is required"},
		{name: "bad email", email: "not-an-email", password: "hunter22", field: "email", message: "Email is invalid"},
		{name: "missing password", email: "a@b.co", password: "", field: "password", message: "Password is required"},
		{name: "short password", email: "a@b.co", password: "sixsix", field: "password", message: "Password must be at least 7 characters"},
		{name: "seven chars passes", email: "a@b.co", password: "7777777"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Login(tt.email, tt.password)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			fe := fieldErrors(t, err)
			assert.Equal(t, tt.message, fe.For(tt.field))
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegistrationRequiresName(t *testing.T) {
	assert.NoError(t, Registration("Ada", "a@b.co", "hunter22"))

	fe := fieldErrors(t, Registration("", "a@b.co", "hunter22"))
	assert.Equal(t, "Name is required", fe.For("name"))

	fe = fieldErrors(t, Registration("   ", "a@b.co", "hunter22"))
	assert.Equal(t, "Name is required", fe.For("name"))
}

func TestRegistrationCollectsAllFailures(t *testing.T) {
	fe := fieldErrors(t, Registration("", "nope", "short"))
	assert.Equal(t, "Name is required", fe.For("name"))
	assert.Equal(t, "Email is invalid", fe.For("email"))
	assert.Equal(t, "Password must be at least 7 characters", fe.For("password"))
}

func TestReviewRatingBounds(t *testing.T) {
	assert.NoError(t, Review(1, "fine"))
	assert.NoError(t, Review(5, "fine"))

	for _, rating := range []int{0, 6, -1} {
		fe := fieldErrors(t, Review(rating, "fine"))
		assert.Equal(t, "Please select a rating between 1 and 5", fe.For("rating"))
	}
}

func TestReviewTextLength(t *testing.T) {
	exact := strings.Repeat("x", MaxReviewChars)
	assert.NoError(t, Review(3, exact))

	fe := fieldErrors(t, Review(3, exact+"x"))
	assert.Equal(t, "Review must be 100 characters or less", fe.For("text"))
}

func TestReviewTextRequired(t *testing.T) {
	fe := fieldErrors(t, Review(3, ""))
	assert.Equal(t, "Review text is required", fe.For("text"))

	fe = fieldErrors(t, Review(3, "    "))
	assert.Equal(t, "Review text is required", fe.For("text"))
}

func TestProfile(t *testing.T) {
	assert.NoError(t, Profile("Ada", "a@b.co"))

	fe := fieldErrors(t, Profile("", "a@b.co"))
	assert.Equal(t, "Name is required", fe.For("name"))

	fe = fieldErrors(t, Profile("Ada", "broken"))
	assert.Equal(t, "Email is invalid", fe.For("email"))
}

func TestFieldErrorsError(t *testing.T) {
	err := Login("", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email is required")
	assert.Contains(t, err.Error(), "Password is required")
}
