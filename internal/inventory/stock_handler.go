package inventory

import (
	"fmt"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AdjustStockRequest struct {
	Delta int    `json:"delta"` // Pozitif: stok girişi, negatif: fire/düzeltme
	Note  string `json:"note"`
}

type AdjustStockResponse struct {
	Product  ProductResponse `json:"product"`
	Delta    int             `json:"delta"`
	Note     string          `json:"note"`
	LowStock bool            `json:"low_stock"`
}

// POST /api/products/:id/adjust-stock
// Satış dışı stok hareketleri için: mal kabul, sayım düzeltmesi, fire.
// Sonuç negatife inecekse işlem reddedilir.
func AdjustStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body AdjustStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		if body.Delta == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "delta 0 olamaz")
		}

		before := toProductResponse(&p)

		// Koşullu güncelleme: eşzamanlı bir satış stoku düşürmüş olabilir,
		// negatife inmeyi veritabanı seviyesinde engelle
		res := database.DB.Model(&models.Product{}).
			Where("id = ? AND quantity + ? >= 0", p.ID, body.Delta).
			Update("quantity", gorm.Expr("quantity + ?", body.Delta))
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok güncellenemedi")
		}
		if res.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusConflict, fmt.Sprintf("Stok negatife inemez (eldeki: %d)", p.Quantity))
		}

		if err := database.DB.First(&p, "id = ?", p.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün okunamadı")
		}

		// Audit log
		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    p.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Stok düzeltmesi: %s (%+d) - %s", p.Name, body.Delta, body.Note),
				Before:      before,
				After:       toProductResponse(&p),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(AdjustStockResponse{
			Product:  toProductResponse(&p),
			Delta:    body.Delta,
			Note:     body.Note,
			LowStock: p.IsLowStock(),
		})
	}
}
