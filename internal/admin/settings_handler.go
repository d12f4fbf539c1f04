package admin

import (
	"fmt"
	"strings"
	"time"

	"pos-backend/internal/audit"
	"pos-backend/internal/auth"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateSettingsRequest struct {
	Name          *string  `json:"name"`
	Address       *string  `json:"address"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	TaxRate       *float64 `json:"tax_rate"` // Yüzde olarak (8 = %8)
	Currency      *string  `json:"currency"`
	ReceiptFooter *string  `json:"receipt_footer"`
}

type SettingsResponse struct {
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email"`
	TaxRate       float64 `json:"tax_rate"`
	Currency      string  `json:"currency"`
	ReceiptFooter string  `json:"receipt_footer"`
	UpdatedAt     string  `json:"updated_at"`
}

func toSettingsResponse(s *models.StoreSetting) SettingsResponse {
	return SettingsResponse{
		Name:          s.Name,
		Address:       s.Address,
		Phone:         s.Phone,
		Email:         s.Email,
		TaxRate:       s.TaxRate,
		Currency:      s.Currency,
		ReceiptFooter: s.ReceiptFooter,
		UpdatedAt:     s.UpdatedAt.Format(time.RFC3339),
	}
}

// GET /api/settings (tüm authenticated kullanıcılar)
func GetSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var setting models.StoreSetting
		if err := database.DB.First(&setting, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}
		return c.JSON(toSettingsResponse(&setting))
	}
}

// PUT /api/admin/settings (sadece admin)
func UpdateSettingsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var setting models.StoreSetting
		if err := database.DB.First(&setting, 1).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar okunamadı")
		}

		var body UpdateSettingsRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		before := toSettingsResponse(&setting)

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			setting.Name = name
		}
		if body.Address != nil {
			setting.Address = strings.TrimSpace(*body.Address)
		}
		if body.Phone != nil {
			setting.Phone = strings.TrimSpace(*body.Phone)
		}
		if body.Email != nil {
			setting.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.TaxRate != nil {
			if *body.TaxRate < 0 || *body.TaxRate > 100 {
				return fiber.NewError(fiber.StatusBadRequest, "tax_rate 0 ile 100 arasında olmalı")
			}
			setting.TaxRate = *body.TaxRate
		}
		if body.Currency != nil {
			currency := strings.TrimSpace(strings.ToUpper(*body.Currency))
			if currency == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Currency boş olamaz")
			}
			setting.Currency = currency
		}
		if body.ReceiptFooter != nil {
			setting.ReceiptFooter = strings.TrimSpace(*body.ReceiptFooter)
		}

		if err := database.DB.Save(&setting).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ayarlar güncellenemedi")
		}

		// Audit log
		if userID, err := auth.CurrentUserID(c); err == nil {
			var user models.User
			userName := ""
			if err := database.DB.First(&user, userID).Error; err == nil {
				userName = user.Name
			}
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "store_setting",
				EntityID:    setting.ID,
				Action:      models.AuditActionUpdate,
				Description: "Mağaza ayarları güncellendi",
				Before:      before,
				After:       toSettingsResponse(&setting),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toSettingsResponse(&setting))
	}
}
