package sales

import (
	"testing"
	"time"

	"pos-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSale(createdAt time.Time, total float64, items ...models.SaleItem) models.Sale {
	return models.Sale{
		Total:     total,
		Items:     items,
		CreatedAt: createdAt,
	}
}

func item(productID uint, name string, quantity int, subtotal float64) models.SaleItem {
	return models.SaleItem{
		ProductID:   productID,
		ProductName: name,
		Quantity:    quantity,
		Subtotal:    subtotal,
	}
}

func TestSummarizeDay(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.Local)

	allSales := []models.Sale{
		testSale(day.Add(9*time.Hour), 25.38,
			item(1, "kahve", 3, 13.50),
			item(2, "sandvic", 1, 10.00)),
		testSale(day.Add(14*time.Hour), 10.80,
			item(1, "kahve", 2, 9.00)),
		// Önceki günün satışı özete girmemeli
		testSale(day.AddDate(0, 0, -1), 99.99,
			item(3, "pasta", 5, 90.00)),
	}

	summary := SummarizeDay(allSales, day)

	assert.Equal(t, "2025-12-09", summary.Date)
	assert.InDelta(t, 36.18, summary.TotalSales, 0.001)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.InDelta(t, 18.09, summary.AverageOrderValue, 0.001)

	require.Len(t, summary.TopProducts, 2)
	// Ciroya göre sıralı: kahve 22.50 > sandvic 10.00
	assert.Equal(t, "kahve", summary.TopProducts[0].Name)
	assert.Equal(t, 5, summary.TopProducts[0].Quantity)
	assert.InDelta(t, 22.50, summary.TopProducts[0].Revenue, 0.001)
	assert.Equal(t, "sandvic", summary.TopProducts[1].Name)
}

func TestSummarizeDayEmpty(t *testing.T) {
	day := time.Date(2025, 12, 9, 0, 0, 0, 0, time.Local)

	summary := SummarizeDay(nil, day)
	assert.Equal(t, 0, summary.TotalOrders)
	assert.Equal(t, 0.0, summary.TotalSales)
	assert.Equal(t, 0.0, summary.AverageOrderValue)
	assert.Empty(t, summary.TopProducts)
}

func TestTopSellingProducts(t *testing.T) {
	now := time.Now()

	allSales := []models.Sale{
		testSale(now, 0,
			item(1, "kahve", 2, 9.00),
			item(2, "sandvic", 4, 40.00)),
		testSale(now, 0,
			item(1, "kahve", 5, 22.50),
			item(3, "pasta", 4, 72.00)),
	}

	top := TopSellingProducts(allSales, 10)
	require.Len(t, top, 3)

	// Adede göre: kahve 7, sonra adet eşitliğinde ciro: pasta 72 > sandvic 40
	assert.Equal(t, "kahve", top[0].Name)
	assert.Equal(t, 7, top[0].Quantity)
	assert.Equal(t, "pasta", top[1].Name)
	assert.Equal(t, "sandvic", top[2].Name)
}

func TestTopSellingProductsLimit(t *testing.T) {
	now := time.Now()

	allSales := []models.Sale{
		testSale(now, 0,
			item(1, "a", 3, 3),
			item(2, "b", 2, 2),
			item(3, "c", 1, 1)),
	}

	top := TopSellingProducts(allSales, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "a", top[0].Name)
	assert.Equal(t, "b", top[1].Name)
}
