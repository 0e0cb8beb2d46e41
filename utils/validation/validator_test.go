package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `validate:"required,email"`
	Role  string `validate:"omitempty,oneof=admin faculty student public"`
	Title string `validate:"required,min=3"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ValidateStruct(sampleRequest{
		Email: "user@example.com",
		Role:  "faculty",
		Title: "Some title",
	}))

	err := v.ValidateStruct(sampleRequest{Email: "not-an-email", Role: "superuser", Title: "ab"})
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	assert.Equal(t, "Invalid email format", formatted["email"])
	assert.Contains(t, formatted["role"], "must be one of")
	assert.Contains(t, formatted["title"], "at least 3")
}

func TestFormatValidationErrorsRequired(t *testing.T) {
	v := NewValidator()
	err := v.ValidateStruct(sampleRequest{})
	require.Error(t, err)

	formatted := FormatValidationErrors(err)
	assert.Equal(t, "Email is required", formatted["email"])
	assert.Equal(t, "Title is required", formatted["title"])
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co.in"))
	assert.False(t, ValidateEmail("no-at-sign"))
	assert.False(t, ValidateEmail("@example.com"))
	assert.False(t, ValidateEmail(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "clean", SanitizeString("  clean  "))
	assert.Equal(t, "nonull", SanitizeString("no\x00null"))
	assert.Equal(t, "", SanitizeString("   "))
}
