package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	type payload struct {
		MaxFee   float64 `json:"max_fee" validate:"gte=0"`
		PageSize int     `json:"page_size" validate:"gte=1"`
	}

	v := NewValidator()
	err := v.ValidateStruct(payload{MaxFee: -1, PageSize: -5})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Contains(t, fields, "max_fee")
	assert.Contains(t, fields, "page_size")

	field, reason := FirstValidationError(err)
	assert.Equal(t, "max_fee", field)
	assert.Contains(t, reason, "greater than or equal to 0")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Mumbai", SanitizeString("  Mumbai\x00 "))
}
