package controllers

import (
	"testing"

	"github.com/adamanr/workflow_portal/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Struct(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Struct(entity.CreateHolidayRequest{Name: "Labour Day", Date: "2024-05-01", Type: "National"}))

	err = v.Struct(entity.CreateLeaveRequest{Type: "sabbatical", FromDate: "2024-01-20"})
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	assert.Equal(t, "to_date is a required field", verr.Fields["to_date"])
	assert.Contains(t, verr.Fields, "type")
	assert.Contains(t, verr.Fields, "reason")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"title": "title is a required field",
		"due":   "due is a required field",
	}}

	assert.Equal(t, "validation failed: due is a required field; title is a required field", err.Error())
}
