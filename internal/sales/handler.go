package sales

import (
	"time"

	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SaleItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	SKU         string  `json:"sku"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type SaleResponse struct {
	ID            uint               `json:"id"`
	ReceiptNumber string             `json:"receipt_number"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Discount      float64            `json:"discount"`
	Total         float64            `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	CashReceived  *float64           `json:"cash_received,omitempty"`
	Change        *float64           `json:"change,omitempty"`
	StaffID       uint               `json:"staff_id"`
	StaffName     string             `json:"staff_name"`
	Items         []SaleItemResponse `json:"items"`
	CreatedAt     string             `json:"created_at"`
}

func toSaleResponse(s *models.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			SKU:         it.SKU,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
			Subtotal:    it.Subtotal,
		})
	}
	return SaleResponse{
		ID:            s.ID,
		ReceiptNumber: s.ReceiptNumber,
		Subtotal:      s.Subtotal,
		Tax:           s.Tax,
		Discount:      s.Discount,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		CashReceived:  s.CashReceived,
		Change:        s.Change,
		StaffID:       s.StaffID,
		StaffName:     s.StaffName,
		Items:         items,
		CreatedAt:     s.CreatedAt.Format(time.RFC3339),
	}
}

// Gün başlangıcı/sonu filtreleri için "2006-01-02" parse yardımcıları
func parseDateQuery(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
	}
	return &d, nil
}

// GET /api/sales?from=2025-12-01&to=2025-12-09&payment_method=cash
// Satışlar yeniden eskiye sıralı döner; satırlar dahildir.
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
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
			// 'to' günü dahil: bir sonraki günün başlangıcına kadar
			dbq = dbq.Where("created_at < ?", to.AddDate(0, 0, 1))
		}

		if method := c.Query("payment_method"); method != "" {
			if method != string(models.PaymentMethodCash) &&
				method != string(models.PaymentMethodCard) &&
				method != string(models.PaymentMethodUPI) {
				return fiber.NewError(fiber.StatusBadRequest, "payment_method 'cash', 'card' veya 'upi' olmalı")
			}
			dbq = dbq.Where("payment_method = ?", method)
		}

		var list []models.Sale
		if err := dbq.Preload("Items").Order("created_at desc, id desc").Find(&list).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]SaleResponse, 0, len(list))
		for i := range list {
			resp = append(resp, toSaleResponse(&list[i]))
		}
		return c.JSON(resp)
	}
}

// GET /api/sales/:id
func GetSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Sale
		if err := database.DB.Preload("Items").First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
		}

		return c.JSON(toSaleResponse(&s))
	}
}
