package pos

import "errors"

// Sepet/ödeme validasyon hataları. Handler katmanı bunları errors.Is ile
// ayırt edip uygun HTTP durum koduna çevirir.
var (
	ErrInsufficientStock   = errors.New("yetersiz stok")
	ErrInsufficientPayment = errors.New("yetersiz ödeme")
	ErrEmptyCart           = errors.New("sepet boş")
	ErrInvalidQuantity     = errors.New("geçersiz miktar")
	ErrInvalidPayment      = errors.New("geçersiz ödeme yöntemi")
)
