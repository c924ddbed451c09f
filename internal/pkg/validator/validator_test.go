package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty("x"))
	assert.False(t, IsEmpty(" x "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "first.last+tag@sub.domain.co"}
	invalid := []string{"", "plain", "@nodomain.com", "user@", "user@host"}

	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0190a1b2-c3d4-7e5f-8a6b-7c8d9e0f1a2b"))
	// Uppercase input is normalized before matching
	assert.True(t, IsValidUUID("0190A1B2-C3D4-7E5F-8A6B-7C8D9E0F1A2B"))
	// Version 4, not 7
	assert.False(t, IsValidUUID("0190a1b2-c3d4-4e5f-8a6b-7c8d9e0f1a2b"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
}

func TestIsValidDate(t *testing.T) {
	date, ok := IsValidDate("2026-08-31")
	assert.True(t, ok)
	assert.Equal(t, 2026, date.Year())

	_, ok = IsValidDate("31-08-2026")
	assert.False(t, ok)
	_, ok = IsValidDate("2026-13-01")
	assert.False(t, ok)
	_, ok = IsValidDate("")
	assert.False(t, ok)
}

func TestIsValidComponentCode(t *testing.T) {
	valid := []string{"BASIC", "HRA", "PF_EMPLOYEE", "ALLOWANCE2"}
	invalid := []string{"", "B", "basic", "2BASIC", "_BASIC", "BASIC-PAY", "BASIC PAY"}

	for _, code := range valid {
		assert.True(t, IsValidComponentCode(code), code)
	}
	for _, code := range invalid {
		assert.False(t, IsValidComponentCode(code), code)
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "wage", Message: "must be greater than zero"},
		{Field: "code", Message: "is required"},
	}

	m := errs.ToMap()
	assert.Len(t, m, 2)
	assert.Equal(t, "must be greater than zero", m["wage"])
	assert.Contains(t, errs.Error(), "wage: must be greater than zero")
}
