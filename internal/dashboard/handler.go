package dashboard

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LowStockAlert struct {
	ProductID    uint   `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Deficit      int    `json:"deficit"`
}

type RecentSale struct {
	ID            uint    `json:"id"`
	ReceiptNumber string  `json:"receipt_number"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method"`
	StaffName     string  `json:"staff_name"`
	CreatedAt     string  `json:"created_at"`
}

type StatsResponse struct {
	TodayRevenue      float64         `json:"today_revenue"`
	TodayOrders       int64           `json:"today_orders"`
	AverageOrderValue float64         `json:"average_order_value"`
	ProductCount      int64           `json:"product_count"`
	LowStockCount     int64           `json:"low_stock_count"`
	LowStockAlerts    []LowStockAlert `json:"low_stock_alerts"`
	RecentSales       []RecentSale    `json:"recent_sales"`
}

// GET /api/dashboard/stats
// Ana ekran özeti: bugünkü ciro, düşük stok uyarıları, son satışlar
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		// Bugünün toplamları
		type todayRow struct {
			Revenue float64 `gorm:"column:revenue"`
			Orders  int64   `gorm:"column:orders"`
		}
		var today todayRow
		if err := database.DB.Raw(`
			SELECT COALESCE(SUM(total), 0) AS revenue, COUNT(*) AS orders
			FROM sales
			WHERE created_at >= ?
		`, dayStart).Scan(&today).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Veri toplanırken hata oluştu")
		}

		avg := 0.0
		if today.Orders > 0 {
			avg = today.Revenue / float64(today.Orders)
		}

		var productCount int64
		database.DB.Model(&models.Product{}).Count(&productCount)

		// Düşük stok uyarıları (en kritik 10 ürün)
		var lowStockCount int64
		database.DB.Model(&models.Product{}).Where("quantity <= min_stock").Count(&lowStockCount)

		var lowProducts []models.Product
		if err := database.DB.
			Where("quantity <= min_stock").
			Order("quantity - min_stock asc").
			Limit(10).
			Find(&lowProducts).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		alerts := make([]LowStockAlert, 0, len(lowProducts))
		for _, p := range lowProducts {
			alerts = append(alerts, LowStockAlert{
				ProductID:    p.ID,
				Name:         p.Name,
				SKU:          p.SKU,
				CurrentStock: p.Quantity,
				MinStock:     p.MinStock,
				Deficit:      p.MinStock - p.Quantity,
			})
		}

		// Son satışlar
		var recent []models.Sale
		if err := database.DB.Order("created_at desc, id desc").Limit(5).Find(&recent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		recentSales := make([]RecentSale, 0, len(recent))
		for _, s := range recent {
			recentSales = append(recentSales, RecentSale{
				ID:            s.ID,
				ReceiptNumber: s.ReceiptNumber,
				Total:         s.Total,
				PaymentMethod: string(s.PaymentMethod),
				StaffName:     s.StaffName,
				CreatedAt:     s.CreatedAt.Format(time.RFC3339),
			})
		}

		return c.JSON(StatsResponse{
			TodayRevenue:      today.Revenue,
			TodayOrders:       today.Orders,
			AverageOrderValue: avg,
			ProductCount:      productCount,
			LowStockCount:     lowStockCount,
			LowStockAlerts:    alerts,
			RecentSales:       recentSales,
		})
	}
}
