package pos

import (
	"errors"
	"regexp"
	"testing"

	"pos-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSaleStore struct {
	saved []*models.Sale
	err   error
}

func (m *mockSaleStore) CreateSale(sale *models.Sale) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, sale)
	return nil
}

func TestFinalizeSaleEmptyCart(t *testing.T) {
	store := &mockSaleStore{}
	finalizer := NewFinalizer(store)
	cart := NewCart(8)

	sale, err := finalizer.FinalizeSale(cart, PaymentResult{Method: models.PaymentMethodCard}, Operator{ID: 1, Name: "Ayşe"})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, sale)
	assert.Empty(t, store.saved, "boş sepette kayıt denemesi olmamalı")
}

func TestFinalizeSale(t *testing.T) {
	store := &mockSaleStore{}
	finalizer := NewFinalizer(store)

	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "sandvic", 10.00, 5), 2))
	require.NoError(t, cart.AddItem(testProduct(2, "kahve", 3.50, 10), 1))

	payment, err := ValidatePayment(models.PaymentMethodCash, cart.Totals().Total, floatPtr(30.00))
	require.NoError(t, err)

	sale, err := finalizer.FinalizeSale(cart, payment, Operator{ID: 7, Name: "Ayşe"})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.InDelta(t, 23.50, sale.Subtotal, 0.001)
	assert.InDelta(t, 1.88, sale.Tax, 0.001)
	assert.InDelta(t, 25.38, sale.Total, 0.001)
	assert.Equal(t, 0.0, sale.Discount)
	assert.Equal(t, models.PaymentMethodCash, sale.PaymentMethod)
	require.NotNil(t, sale.Change)
	assert.InDelta(t, 4.62, *sale.Change, 0.001)
	assert.Equal(t, uint(7), sale.StaffID)
	assert.Equal(t, "Ayşe", sale.StaffName)

	// Her satır için satış anındaki miktar kadar stok düşülecek: 2 ve 1
	require.Len(t, sale.Items, 2)
	assert.Equal(t, "sandvic", sale.Items[0].ProductName)
	assert.Equal(t, 2, sale.Items[0].Quantity)
	assert.InDelta(t, 20.00, sale.Items[0].Subtotal, 0.001)
	assert.Equal(t, "kahve", sale.Items[1].ProductName)
	assert.Equal(t, 1, sale.Items[1].Quantity)
	assert.InDelta(t, 3.50, sale.Items[1].Subtotal, 0.001)

	require.Len(t, store.saved, 1)
	assert.True(t, cart.IsEmpty(), "başarılı satış sonrası sepet boşalmalı")
}

func TestFinalizeSaleStoreError(t *testing.T) {
	store := &mockSaleStore{err: errors.New("bağlantı koptu")}
	finalizer := NewFinalizer(store)

	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "kahve", 4.50, 100), 2))

	sale, err := finalizer.FinalizeSale(cart, PaymentResult{Method: models.PaymentMethodCard}, Operator{ID: 1, Name: "Ayşe"})
	assert.Error(t, err)
	assert.Nil(t, sale)
	assert.Equal(t, 1, cart.Len(), "kayıt başarısızsa sepet olduğu gibi kalmalı")
}

func TestFinalizeSaleStockConflict(t *testing.T) {
	store := &mockSaleStore{err: ErrInsufficientStock}
	finalizer := NewFinalizer(store)

	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "kahve", 4.50, 100), 2))

	_, err := finalizer.FinalizeSale(cart, PaymentResult{Method: models.PaymentMethodCard}, Operator{ID: 1, Name: "Ayşe"})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, cart.Len())
}

func TestNewReceiptNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^RCP-\d{8}-\d{6}-[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rn := NewReceiptNumber()
		assert.Regexp(t, pattern, rn)
		assert.False(t, seen[rn], "fiş numarası tekrar etti: %s", rn)
		seen[rn] = true
	}
}
