package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	assert.Equal(t, 5, ParseInt("5", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("0", 10))
	assert.Equal(t, 10, ParseInt("-3", 10))
}

func TestGenerateBookingRef(t *testing.T) {
	ref := GenerateBookingRef()
	assert.True(t, strings.HasPrefix(ref, "LM-"))
	// LM-YYYYMMDD-HHMMSS-NNNN
	parts := strings.Split(ref, "-")
	assert.Len(t, parts, 4)
	assert.Len(t, parts[1], 8)
	assert.Len(t, parts[2], 6)
	assert.Len(t, parts[3], 4)
}

func TestValidateStruct(t *testing.T) {
	type sample struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	assert.Nil(t, ValidateStruct(sample{Email: "a@b.com", Name: "x"}))

	errs := ValidateStruct(sample{Email: "nope"})
	assert.Len(t, errs, 2)
	assert.Contains(t, errs["Email"], "email")
	assert.NotEmpty(t, errs["Name"])
}
