package pos

import (
	"errors"
	"fmt"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CheckoutItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"` // 0 veya eksikse 1 kabul edilir
}

type CheckoutPaymentRequest struct {
	Method       string   `json:"method"` // "cash" | "card" | "upi"
	CashReceived *float64 `json:"cash_received"`
}

type CheckoutRequest struct {
	Items   []CheckoutItemRequest  `json:"items"`
	Payment CheckoutPaymentRequest `json:"payment"`
}

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

func toSaleResponse(sale *models.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(sale.Items))
	for _, it := range sale.Items {
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
		ID:            sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Discount:      sale.Discount,
		Total:         sale.Total,
		PaymentMethod: string(sale.PaymentMethod),
		CashReceived:  sale.CashReceived,
		Change:        sale.Change,
		StaffID:       sale.StaffID,
		StaffName:     sale.StaffName,
		Items:         items,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
}

// POST /api/pos/checkout
// Sepet satırlarını güncel stoka karşı yeniden kurar, ödemeyi doğrular ve
// satışı stok düşüşleriyle birlikte tek transaction'da kaydeder.
func CheckoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CheckoutRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		// Vergi oranı mağaza ayarlarından okunur
		taxRate := 8.0
		var setting models.StoreSetting
		if err := database.DB.First(&setting, 1).Error; err == nil {
			taxRate = setting.TaxRate
		}

		cart := NewCart(taxRate)
		for _, it := range body.Items {
			quantity := it.Quantity
			if quantity == 0 {
				quantity = 1
			}

			var product models.Product
			if err := database.DB.First(&product, "id = ?", it.ProductID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Ürün bulunamadı (ID: %d)", it.ProductID))
			}

			if err := cart.AddItem(product, quantity); err != nil {
				if errors.Is(err, ErrInsufficientStock) {
					return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Yetersiz stok: %s (eldeki: %d)", product.Name, product.Quantity))
				}
				return fiber.NewError(fiber.StatusBadRequest, "Miktar 0'dan büyük olmalı")
			}
		}

		totals := cart.Totals()

		payment, err := ValidatePayment(models.PaymentMethod(body.Payment.Method), totals.Total, body.Payment.CashReceived)
		if err != nil {
			if errors.Is(err, ErrInsufficientPayment) {
				return fiber.NewError(fiber.StatusBadRequest, "Verilen nakit toplam tutardan az")
			}
			return fiber.NewError(fiber.StatusBadRequest, "Ödeme yöntemi 'cash', 'card' veya 'upi' olmalı")
		}

		// Operatör JWT'den çözülür, sepete/satışa açıkça geçirilir
		userID, err := auth.CurrentUserID(c)
		if err != nil {
			return err
		}
		var user models.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
		}
		operator := Operator{ID: user.ID, Name: user.Name}

		finalizer := NewFinalizer(NewStore(database.DB))
		sale, err := finalizer.FinalizeSale(cart, payment, operator)
		if err != nil {
			switch {
			case errors.Is(err, ErrEmptyCart):
				return fiber.NewError(fiber.StatusBadRequest, "Sepet boş")
			case errors.Is(err, ErrInsufficientStock):
				return fiber.NewError(fiber.StatusConflict, "Yetersiz stok: satış sırasında stok azaldı, hiçbir kayıt yapılmadı")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Satış kaydedilemedi")
			}
		}

		// Audit log yaz
		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      operator.ID,
			UserName:    operator.Name,
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Satış tamamlandı: %s - %.2f (%s)", sale.ReceiptNumber, sale.Total, sale.PaymentMethod),
			Before:      nil,
			After:       toSaleResponse(sale),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
	}
}
