package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructNormalizesFields(t *testing.T) {
	user := &User{
		Fullname: "  Jane Doe  ",
		Username: " jdoe ",
		Email:    " Jane@Example.COM ",
		Password: "sekrit-pass",
	}

	validationErrs := ValidateStruct(user)

	assert.Empty(t, validationErrs)
	assert.Equal(t, "Jane Doe", user.Fullname)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestValidateStructTranslatesShortPassword(t *testing.T) {
	user := &User{
		Fullname: "Jane Doe",
		Username: "jdoe",
		Email:    "jane@example.com",
		Password: "abc",
	}

	validationErrs := ValidateStruct(user)

	require.Len(t, validationErrs, 1)
	assert.Contains(t, validationErrs[0].Error(), "Password")
	assert.Contains(t, validationErrs[0].Error(), "6")
}

func TestValidatePasswordBounds(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("long-enough"))
}
