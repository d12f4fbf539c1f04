package sales

import (
	"fmt"
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SalesChartPoint struct {
	Label  string  `json:"label"` // tarih / hafta başlangıcı / ay başlangıcı
	Cash   float64 `json:"cash"`
	Card   float64 `json:"card"`
	UPI    float64 `json:"upi"`
	Total  float64 `json:"total"`
	Orders int     `json:"orders"`
}

type SalesChartGrandTotals struct {
	Cash   float64 `json:"cash"`
	Card   float64 `json:"card"`
	UPI    float64 `json:"upi"`
	Total  float64 `json:"total"`
	Orders int     `json:"orders"`
}

type SalesChartResponse struct {
	Period      string                `json:"period"` // daily | weekly | monthly
	From        string                `json:"from"`
	To          string                `json:"to"`
	Points      []SalesChartPoint     `json:"points"`
	GrandTotals SalesChartGrandTotals `json:"grand_totals"`
}

// GET /api/sales/summary/daily?date=2025-12-09
// Tarih verilmezse bugünü özetler
func DailySummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now()
		if raw := c.Query("date"); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			day = d
		}

		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		var list []models.Sale
		if err := database.DB.Preload("Items").
			Where("created_at >= ? AND created_at < ?", dayStart, dayEnd).
			Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		return c.JSON(SummarizeDay(list, dayStart))
	}
}

// GET /api/sales/top-products?limit=10&from=2025-12-01&to=2025-12-09
// Satış adedine göre en çok satan ürünler
func TopProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 10
		if limitStr := c.Query("limit"); limitStr != "" {
			var l int
			if _, err := fmt.Sscan(limitStr, &l); err != nil || l <= 0 || l > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "limit geçersiz")
			}
			limit = l
		}

		dbq := database.DB.Model(&models.Sale{})

		from, err := parseDateQuery(c, "from")
		if err != nil {
			return err
		}
		if from != nil {
			dbq = dbq.Where("created_at >= ?", *from)
		}

		to, err := parseDateQuery(c, "to")
		if err != nil {
			return err
		}
		if to != nil {
			dbq = dbq.Where("created_at < ?", to.AddDate(0, 0, 1))
		}

		var list []models.Sale
		if err := dbq.Preload("Items").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		return c.JSON(TopSellingProducts(list, limit))
	}
}

// GET /api/sales/chart?period=daily&count=7
// Satış grafiği: periyot başına ödeme yöntemi kırılımıyla ciro
func SalesChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		period := c.Query("period", "daily") // daily | weekly | monthly
		countStr := c.Query("count", "")

		var count int
		if countStr == "" {
			switch period {
			case "weekly":
				count = 8
			case "monthly":
				count = 6
			default:
				period = "daily"
				count = 7
			}
		} else {
			if _, err := fmt.Sscan(countStr, &count); err != nil || count <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "count geçersiz")
			}
		}

		now := time.Now()
		loc := now.Location()
		// bugünün 00:00'ı
		end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		var start time.Time

		switch period {
		case "weekly":
			days := 7 * (count - 1)
			start = end.AddDate(0, 0, -days)
		case "monthly":
			end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
			start = end.AddDate(0, -(count - 1), 0)
		default:
			period = "daily"
			start = end.AddDate(0, 0, -(count - 1))
		}

		// aggregation sonucu satır yapısı
		type row struct {
			Bucket time.Time `gorm:"column:bucket"`
			Method string    `gorm:"column:method"`
			Total  float64   `gorm:"column:total"`
			Orders int       `gorm:"column:orders"`
		}
		var rows []row

		var sql string
		switch period {
		case "weekly":
			sql = `
				SELECT date_trunc('week', created_at)::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total,
					   COUNT(*) AS orders
				FROM sales
				WHERE created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		case "monthly":
			sql = `
				SELECT date_trunc('month', created_at)::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total,
					   COUNT(*) AS orders
				FROM sales
				WHERE created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		default: // daily
			sql = `
				SELECT created_at::date AS bucket,
					   payment_method AS method,
					   SUM(total) AS total,
					   COUNT(*) AS orders
				FROM sales
				WHERE created_at >= ? AND created_at < ?
				GROUP BY bucket, method
				ORDER BY bucket ASC;
			`
		}

		// aralık sonu: bir sonraki periyodun başlangıcı
		var rangeEnd time.Time
		switch period {
		case "monthly":
			rangeEnd = end.AddDate(0, 1, 0)
		default:
			rangeEnd = end.AddDate(0, 0, 1)
		}

		if err := database.DB.Raw(sql, start, rangeEnd).Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		// bucket bazlı toplama
		type bucketAgg struct {
			Bucket time.Time
			Cash   float64
			Card   float64
			UPI    float64
			Total  float64
			Orders int
		}

		buckets := make(map[time.Time]*bucketAgg)

		for _, r := range rows {
			agg, ok := buckets[r.Bucket]
			if !ok {
				agg = &bucketAgg{Bucket: r.Bucket}
				buckets[r.Bucket] = agg
			}

			switch r.Method {
			case string(models.PaymentMethodCash):
				agg.Cash += r.Total
			case string(models.PaymentMethodCard):
				agg.Card += r.Total
			case string(models.PaymentMethodUPI):
				agg.UPI += r.Total
			}
			agg.Orders += r.Orders
		}

		// map'ten slice'a taşı ve sıralı hale getir
		ordered := make([]bucketAgg, 0, len(buckets))
		for _, v := range buckets {
			v.Total = v.Cash + v.Card + v.UPI
			ordered = append(ordered, *v)
		}

		for i := 0; i < len(ordered); i++ {
			for j := i + 1; j < len(ordered); j++ {
				if ordered[j].Bucket.Before(ordered[i].Bucket) {
					ordered[i], ordered[j] = ordered[j], ordered[i]
				}
			}
		}

		points := make([]SalesChartPoint, 0, len(ordered))
		grand := SalesChartGrandTotals{}

		for _, b := range ordered {
			points = append(points, SalesChartPoint{
				Label:  b.Bucket.Format("2006-01-02"),
				Cash:   b.Cash,
				Card:   b.Card,
				UPI:    b.UPI,
				Total:  b.Total,
				Orders: b.Orders,
			})

			grand.Cash += b.Cash
			grand.Card += b.Card
			grand.UPI += b.UPI
			grand.Total += b.Total
			grand.Orders += b.Orders
		}

		resp := SalesChartResponse{
			Period:      period,
			From:        start.Format("2006-01-02"),
			To:          end.Format("2006-01-02"),
			Points:      points,
			GrandTotals: grand,
		}

		return c.JSON(resp)
	}
}
