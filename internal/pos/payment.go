package pos

import (
	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
)

// PaymentResult: doğrulanmış bir ödeme. CashReceived ve Change sadece nakit
// ödemede dolu olur.
type PaymentResult struct {
	Method       models.PaymentMethod
	CashReceived *float64
	Change       *float64
}

// ValidatePayment: seçilen ödeme yöntemini toplam tutara karşı doğrular.
// Nakit ödemede verilen para toplamdan azsa ErrInsufficientPayment döner,
// yeterliyse para üstü hesaplanır. Kart ve dijital ödemede tutar kontrolü
// yapılmaz (ödeme onayı burada modellenmeyen harici bir sistemde gerçekleşir).
func ValidatePayment(method models.PaymentMethod, total decimal.Decimal, cashReceived *float64) (PaymentResult, error) {
	switch method {
	case models.PaymentMethodCash:
		if cashReceived == nil {
			return PaymentResult{}, ErrInsufficientPayment
		}
		received := decimal.NewFromFloat(*cashReceived)
		if received.LessThan(total) {
			return PaymentResult{}, ErrInsufficientPayment
		}
		change := received.Sub(total).Round(2).InexactFloat64()
		return PaymentResult{
			Method:       method,
			CashReceived: cashReceived,
			Change:       &change,
		}, nil

	case models.PaymentMethodCard, models.PaymentMethodUPI:
		return PaymentResult{Method: method}, nil

	default:
		return PaymentResult{}, ErrInvalidPayment
	}
}
