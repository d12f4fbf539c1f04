package pos

import (
	"testing"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestValidatePaymentCash(t *testing.T) {
	total := decimal.NewFromFloat(25.38)

	result, err := ValidatePayment(models.PaymentMethodCash, total, floatPtr(30.00))
	require.NoError(t, err)
	assert.Equal(t, models.PaymentMethodCash, result.Method)
	require.NotNil(t, result.CashReceived)
	assert.Equal(t, 30.00, *result.CashReceived)
	require.NotNil(t, result.Change)
	assert.Equal(t, 4.62, *result.Change)
}

func TestValidatePaymentCashExact(t *testing.T) {
	total := decimal.NewFromFloat(25.38)

	result, err := ValidatePayment(models.PaymentMethodCash, total, floatPtr(25.38))
	require.NoError(t, err)
	require.NotNil(t, result.Change)
	assert.Equal(t, 0.0, *result.Change)
}

func TestValidatePaymentCashInsufficient(t *testing.T) {
	total := decimal.NewFromFloat(25.38)

	_, err := ValidatePayment(models.PaymentMethodCash, total, floatPtr(20.00))
	assert.ErrorIs(t, err, ErrInsufficientPayment)

	_, err = ValidatePayment(models.PaymentMethodCash, total, nil)
	assert.ErrorIs(t, err, ErrInsufficientPayment)
}

func TestValidatePaymentCardAndUPI(t *testing.T) {
	total := decimal.NewFromFloat(25.38)

	for _, method := range []models.PaymentMethod{models.PaymentMethodCard, models.PaymentMethodUPI} {
		result, err := ValidatePayment(method, total, nil)
		require.NoError(t, err)
		assert.Equal(t, method, result.Method)
		assert.Nil(t, result.CashReceived)
		assert.Nil(t, result.Change)
	}
}

func TestValidatePaymentInvalidMethod(t *testing.T) {
	total := decimal.NewFromFloat(25.38)

	_, err := ValidatePayment(models.PaymentMethod("çek"), total, nil)
	assert.ErrorIs(t, err, ErrInvalidPayment)
}
