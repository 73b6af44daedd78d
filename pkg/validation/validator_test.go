package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Category string `binding:"required,donation_category"`
	Status   string `binding:"omitempty,donation_status"`
	Platform string `binding:"omitempty,platform"`
}

func TestValidateStructPassesValidValues(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Category: "food",
		Status:   "pending",
		Platform: "mobile",
	})
	assert.NoError(t, err)
}

func TestValidateStructRejectsUnknownCategory(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Category: "electronics"})

	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	msg, exists := verr.GetFieldError("Category")
	require.True(t, exists)
	assert.Contains(t, msg, "valid donation category")
}

func TestValidateStructRejectsMissingRequired(t *testing.T) {
	err := ValidateStruct(&sampleRequest{})

	require.Error(t, err)
	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.True(t, verr.HasErrors())
}

func TestValidateStructCustomStatusTags(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Category: "food", Status: "cancelled"})
	require.Error(t, err)

	err = ValidateStruct(&sampleRequest{Category: "food", Platform: "desktop"})
	require.Error(t, err)
}

type withdrawalSample struct {
	Status string `binding:"required,withdrawal_status"`
}

func TestValidateStructWithdrawalStatus(t *testing.T) {
	for _, status := range []string{"pending", "processed", "rejected"} {
		assert.NoError(t, ValidateStruct(&withdrawalSample{Status: status}))
	}
	assert.Error(t, ValidateStruct(&withdrawalSample{Status: "cancelled"}))
}

func TestValidationErrorMessage(t *testing.T) {
	verr := &ValidationError{}
	verr.AddError("Amount", "Amount must be greater than 0")

	assert.Contains(t, verr.Error(), "Amount must be greater than 0")
}
