package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-15")
	assert.True(t, ok)

	_, ok = IsValidDate("15-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-03-15T10:00:00Z")
	assert.False(t, ok)
}

func TestIsValidDateTime(t *testing.T) {
	_, ok := IsValidDateTime("2025-03-15T10:00:00Z")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-15T10:00:00+07:00")
	assert.True(t, ok)

	_, ok = IsValidDateTime("2025-03-15")
	assert.False(t, ok)
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "from_date", Message: "is required"},
		{Field: "shift_id", Message: "must be a valid UUID"},
	}

	assert.Contains(t, errs.Error(), "from_date: is required")
	assert.Equal(t, map[string]string{
		"from_date": "is required",
		"shift_id":  "must be a valid UUID",
	}, errs.ToMap())
}
