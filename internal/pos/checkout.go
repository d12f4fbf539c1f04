package pos

import (
	"fmt"
	"strings"
	"time"

	"pos-backend/internal/models"

	"github.com/google/uuid"
)

// Operator: satışı yapan kullanıcı. Handler katmanı JWT'den çözüp açıkça
// geçirir; bu paket hiçbir global oturum durumu okumaz.
type Operator struct {
	ID   uint
	Name string
}

// SaleStore: satış kaydını ve tüm stok düşüşlerini TEK bir iş birimi olarak
// kalıcılaştırır. Ya hepsi birlikte yazılır ya da hiçbiri yazılmaz.
type SaleStore interface {
	CreateSale(sale *models.Sale) error
}

type Finalizer struct {
	store SaleStore
}

func NewFinalizer(store SaleStore) *Finalizer {
	return &Finalizer{store: store}
}

// FinalizeSale: doğrulanmış ödemeyle sepeti satışa dönüştürür. Boş sepette
// ErrEmptyCart döner ve hiçbir yan etki oluşmaz. Kayıt başarısız olursa sepet
// olduğu gibi kalır; başarılı olursa sepet boşaltılır.
func (f *Finalizer) FinalizeSale(cart *Cart, payment PaymentResult, operator Operator) (*models.Sale, error) {
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	totals := cart.Totals()

	items := make([]models.SaleItem, 0, cart.Len())
	for _, line := range cart.Lines() {
		items = append(items, models.SaleItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			SKU:         line.Product.SKU,
			UnitPrice:   line.Product.Price,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal.InexactFloat64(),
		})
	}

	sale := &models.Sale{
		ReceiptNumber: NewReceiptNumber(),
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Tax:           totals.Tax.InexactFloat64(),
		Discount:      0, // İleride kullanılmak üzere, şimdilik hep 0
		Total:         totals.Total.InexactFloat64(),
		PaymentMethod: payment.Method,
		CashReceived:  payment.CashReceived,
		Change:        payment.Change,
		StaffID:       operator.ID,
		StaffName:     operator.Name,
		Items:         items,
	}

	if err := f.store.CreateSale(sale); err != nil {
		return nil, err
	}

	cart.Clear()
	return sale, nil
}

// NewReceiptNumber: "RCP-20251209-143055-7F3A2B1C" biçiminde fiş numarası
// üretir. Zaman damgası + rastgele sonek, çakışma olasılığı pratikte sıfır.
func NewReceiptNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("RCP-%s-%s", time.Now().Format("20060102-150405"), suffix)
}
