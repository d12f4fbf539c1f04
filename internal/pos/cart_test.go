package pos

import (
	"testing"

	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id uint, name string, price float64, stock int) models.Product {
	p := models.Product{
		Name:     name,
		SKU:      name,
		Price:    price,
		Quantity: stock,
	}
	p.ID = id
	return p
}

func TestCartTotals(t *testing.T) {
	cart := NewCart(8)

	require.NoError(t, cart.AddItem(testProduct(1, "sandvic", 10.00, 5), 2))
	require.NoError(t, cart.AddItem(testProduct(2, "kahve", 3.50, 10), 1))

	totals := cart.Totals()
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromFloat(23.50)), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(decimal.NewFromFloat(1.88)), "tax: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(decimal.NewFromFloat(25.38)), "total: %s", totals.Total)
}

func TestCartTotalsEmpty(t *testing.T) {
	cart := NewCart(8)
	totals := cart.Totals()
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestCartTotalsIdempotent(t *testing.T) {
	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "cay", 2.25, 10), 2))

	first := cart.Totals()
	second := cart.Totals()
	assert.True(t, first.Total.Equal(second.Total))
	assert.Equal(t, 1, cart.Len())
}

func TestCartAddItemMergesLines(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)

	require.NoError(t, cart.AddItem(p, 2))
	require.NoError(t, cart.AddItem(p, 3))

	require.Equal(t, 1, cart.Len())
	line := cart.Lines()[0]
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.Subtotal.Equal(decimal.NewFromFloat(22.50)))
}

func TestCartAddItemInsufficientStockEmptyCart(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 3)

	err := cart.AddItem(p, 4)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.True(t, cart.IsEmpty(), "başarısız ekleme sepeti değiştirmemeli")
}

func TestCartAddItemInsufficientStock(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 5)

	require.NoError(t, cart.AddItem(p, 3))

	// 3 + 3 > 5, sepet değişmemeli
	err := cart.AddItem(p, 3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, 3, cart.Lines()[0].Quantity)
}

func TestCartAddItemExactStockAllowed(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 5)

	require.NoError(t, cart.AddItem(p, 5))
	assert.Equal(t, 5, cart.Lines()[0].Quantity)
}

func TestCartAddItemInvalidQuantity(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 5)

	assert.ErrorIs(t, cart.AddItem(p, 0), ErrInvalidQuantity)
	assert.ErrorIs(t, cart.AddItem(p, -1), ErrInvalidQuantity)
	assert.True(t, cart.IsEmpty())
}

func TestCartSetItemQuantity(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)
	require.NoError(t, cart.AddItem(p, 2))

	require.NoError(t, cart.SetItemQuantity(p, 7))
	assert.Equal(t, 7, cart.Lines()[0].Quantity)

	// Azaltma her zaman geçerli
	require.NoError(t, cart.SetItemQuantity(p, 1))
	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCartSetItemQuantityZeroRemoves(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)
	require.NoError(t, cart.AddItem(p, 2))

	require.NoError(t, cart.SetItemQuantity(p, 0))
	assert.True(t, cart.IsEmpty())
}

func TestCartSetItemQuantityAbsentNoop(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)

	require.NoError(t, cart.SetItemQuantity(p, 3))
	assert.True(t, cart.IsEmpty())
}

func TestCartSetItemQuantityUsesLatestStock(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)
	require.NoError(t, cart.AddItem(p, 2))

	// Stok bu arada 4'e düştü; 5 istemek artık geçersiz
	p.Quantity = 4
	err := cart.SetItemQuantity(p, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)

	require.NoError(t, cart.SetItemQuantity(p, 4))
	assert.Equal(t, 4, cart.Lines()[0].Quantity)
}

func TestCartSetItemQuantityRefreshesPrice(t *testing.T) {
	cart := NewCart(8)
	p := testProduct(1, "kahve", 4.50, 10)
	require.NoError(t, cart.AddItem(p, 2))

	p.Price = 5.00
	require.NoError(t, cart.SetItemQuantity(p, 2))
	assert.True(t, cart.Lines()[0].Subtotal.Equal(decimal.NewFromFloat(10.00)))
}

func TestCartRemoveItem(t *testing.T) {
	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "kahve", 4.50, 10), 1))
	require.NoError(t, cart.AddItem(testProduct(2, "cay", 2.25, 10), 1))

	cart.RemoveItem(1)
	require.Equal(t, 1, cart.Len())
	assert.Equal(t, uint(2), cart.Lines()[0].Product.ID)

	// Sepette olmayan ürün: sessiz no-op
	cart.RemoveItem(99)
	assert.Equal(t, 1, cart.Len())
}

func TestCartClear(t *testing.T) {
	cart := NewCart(8)
	require.NoError(t, cart.AddItem(testProduct(1, "kahve", 4.50, 10), 1))

	cart.Clear()
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Totals().Total.IsZero())
}

func TestCartZeroTaxRate(t *testing.T) {
	cart := NewCart(0)
	require.NoError(t, cart.AddItem(testProduct(1, "kahve", 4.50, 10), 2))

	totals := cart.Totals()
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.Equal(totals.Subtotal))
}
