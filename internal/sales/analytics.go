package sales

import (
	"sort"
	"time"

	"pos-backend/internal/models"
)

type TopProduct struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type DailySummary struct {
	Date              string       `json:"date"`
	TotalSales        float64      `json:"total_sales"`
	TotalOrders       int          `json:"total_orders"`
	AverageOrderValue float64      `json:"average_order_value"`
	TopProducts       []TopProduct `json:"top_products"`
}

func sameDay(t, day time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SummarizeDay: verilen günün satışlarını özetler. Satış listesi üzerinde
// saf bir hesaplamadır, veritabanına dokunmaz.
func SummarizeDay(allSales []models.Sale, day time.Time) DailySummary {
	daySales := make([]models.Sale, 0, len(allSales))
	for _, s := range allSales {
		if sameDay(s.CreatedAt, day) {
			daySales = append(daySales, s)
		}
	}

	total := 0.0
	for _, s := range daySales {
		total += s.Total
	}

	avg := 0.0
	if len(daySales) > 0 {
		avg = total / float64(len(daySales))
	}

	return DailySummary{
		Date:              day.Format("2006-01-02"),
		TotalSales:        total,
		TotalOrders:       len(daySales),
		AverageOrderValue: avg,
		TopProducts:       topProductsByRevenue(daySales, 5),
	}
}

// TopSellingProducts: satış adedine göre en çok satan ürünler.
func TopSellingProducts(allSales []models.Sale, limit int) []TopProduct {
	byProduct := aggregateProducts(allSales)
	sort.Slice(byProduct, func(i, j int) bool {
		if byProduct[i].Quantity != byProduct[j].Quantity {
			return byProduct[i].Quantity > byProduct[j].Quantity
		}
		return byProduct[i].Revenue > byProduct[j].Revenue
	})
	if limit > 0 && len(byProduct) > limit {
		byProduct = byProduct[:limit]
	}
	return byProduct
}

func topProductsByRevenue(allSales []models.Sale, limit int) []TopProduct {
	byProduct := aggregateProducts(allSales)
	sort.Slice(byProduct, func(i, j int) bool {
		return byProduct[i].Revenue > byProduct[j].Revenue
	})
	if limit > 0 && len(byProduct) > limit {
		byProduct = byProduct[:limit]
	}
	return byProduct
}

func aggregateProducts(allSales []models.Sale) []TopProduct {
	acc := make(map[uint]*TopProduct)
	order := make([]uint, 0)

	for _, s := range allSales {
		for _, item := range s.Items {
			p, ok := acc[item.ProductID]
			if !ok {
				p = &TopProduct{ProductID: item.ProductID, Name: item.ProductName}
				acc[item.ProductID] = p
				order = append(order, item.ProductID)
			}
			p.Quantity += item.Quantity
			p.Revenue += item.Subtotal
		}
	}

	out := make([]TopProduct, 0, len(order))
	for _, id := range order {
		out = append(out, *acc[id])
	}
	return out
}
