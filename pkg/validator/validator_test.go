package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registrationForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,password"`
}

func TestValidatePassword(t *testing.T) {
	cv := NewValidator()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"letters and digits", "secret1", true},
		{"digits between letters", "a1b2c3", true},
		{"letters only", "secrets", false},
		{"digits only", "123456", false},
		{"symbols only", "!!!!!!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cv.Validate(registrationForm{Email: "user@example.com", Password: tt.password})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(registrationForm{Email: "not-an-email", Password: "letters"})
	require.Error(t, err)

	fields := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email must be a valid email address", fields["Email"])
	assert.Equal(t, "Password must contain at least one letter and one digit", fields["Password"])
}
