package inventory

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

type ProductResponse struct {
	ID          uint    `json:"id"`
	SKU         string  `json:"sku"`
	Barcode     string  `json:"barcode"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	MinStock    int     `json:"min_stock"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
	LowStock    bool    `json:"low_stock"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CreateProductRequest struct {
	SKU         string  `json:"sku"`
	Barcode     string  `json:"barcode"` // Opsiyonel
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Cost        float64 `json:"cost"`
	Quantity    int     `json:"quantity"`
	MinStock    int     `json:"min_stock"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

type UpdateProductRequest struct {
	SKU         *string  `json:"sku"`
	Barcode     *string  `json:"barcode"`
	Name        *string  `json:"name"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Cost        *float64 `json:"cost"`
	Quantity    *int     `json:"quantity"`
	MinStock    *int     `json:"min_stock"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
}

func toProductResponse(p *models.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Category:    p.Category,
		Price:       p.Price,
		Cost:        p.Cost,
		Quantity:    p.Quantity,
		MinStock:    p.MinStock,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		LowStock:    p.IsLowStock(),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// Audit log için ortak yardımcı: işlemi yapan kullanıcıyı çöz
func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userID, err := auth.CurrentUserID(c)
	if err != nil {
		return 0, "", err
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

// GET /api/products?category=...&search=...&low_stock=true (tüm authenticated kullanıcılar)
// search: isim, SKU veya barkod üzerinde arar
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Product{})

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			dbq = dbq.Where("category = ?", category)
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR barcode = ?", pattern, pattern, search)
		}

		if c.Query("low_stock") == "true" {
			dbq = dbq.Where("quantity <= min_stock")
		}

		var products []models.Product
		if err := dbq.Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, toProductResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/products/categories
// Üründeki kategori alanlarından tekil liste döndürür
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []string
		if err := database.DB.Model(&models.Product{}).
			Where("category <> ''").
			Distinct("category").
			Order("category asc").
			Pluck("category", &categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}
		return c.JSON(categories)
	}
}

// GET /api/products/low-stock
// quantity <= min_stock olan ürünler, açıkla birlikte
func ListLowStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.
			Where("quantity <= min_stock").
			Order("quantity - min_stock asc").
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		type LowStockResponse struct {
			Product      ProductResponse `json:"product"`
			CurrentStock int             `json:"current_stock"`
			MinStock     int             `json:"min_stock"`
			Deficit      int             `json:"deficit"`
		}

		res := make([]LowStockResponse, 0, len(products))
		for i := range products {
			p := &products[i]
			res = append(res, LowStockResponse{
				Product:      toProductResponse(p),
				CurrentStock: p.Quantity,
				MinStock:     p.MinStock,
				Deficit:      p.MinStock - p.Quantity,
			})
		}
		return c.JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		return c.JSON(toProductResponse(&p))
	}
}

// POST /api/admin/products (sadece admin)
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		body.SKU = strings.TrimSpace(body.SKU)
		body.Name = strings.TrimSpace(body.Name)
		body.Category = strings.TrimSpace(body.Category)

		if body.SKU == "" || body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "SKU ve name zorunlu")
		}
		if body.Price < 0 || body.Cost < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}
		if body.Quantity < 0 || body.MinStock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity ve min_stock negatif olamaz")
		}

		// SKU unique kontrolü
		var existing models.Product
		if err := database.DB.Where("sku = ?", body.SKU).First(&existing).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Bu SKU zaten kullanılıyor")
		}

		p := models.Product{
			SKU:         body.SKU,
			Barcode:     strings.TrimSpace(body.Barcode),
			Name:        body.Name,
			Category:    body.Category,
			Price:       body.Price,
			Cost:        body.Cost,
			Quantity:    body.Quantity,
			MinStock:    body.MinStock,
			Description: body.Description,
			ImageURL:    strings.TrimSpace(body.ImageURL),
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		// Audit log yaz
		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    p.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Ürün eklendi: %s (%s)", p.Name, p.SKU),
				Before:      nil,
				After:       toProductResponse(&p),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(toProductResponse(&p))
	}
}

// PUT /api/admin/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz veri")
		}

		before := toProductResponse(&p)

		if body.SKU != nil {
			sku := strings.TrimSpace(*body.SKU)
			if sku == "" {
				return fiber.NewError(fiber.StatusBadRequest, "SKU boş olamaz")
			}
			if sku != p.SKU {
				var existing models.Product
				if err := database.DB.Where("sku = ? AND id <> ?", sku, p.ID).First(&existing).Error; err == nil {
					return fiber.NewError(fiber.StatusBadRequest, "Bu SKU zaten kullanılıyor")
				}
			}
			p.SKU = sku
		}

		if body.Barcode != nil {
			p.Barcode = strings.TrimSpace(*body.Barcode)
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Name boş olamaz")
			}
			p.Name = name
		}

		if body.Category != nil {
			p.Category = strings.TrimSpace(*body.Category)
		}

		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
			}
			p.Price = *body.Price
		}

		if body.Cost != nil {
			if *body.Cost < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Maliyet negatif olamaz")
			}
			p.Cost = *body.Cost
		}

		if body.Quantity != nil {
			if *body.Quantity < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "quantity negatif olamaz")
			}
			p.Quantity = *body.Quantity
		}

		if body.MinStock != nil {
			if *body.MinStock < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "min_stock negatif olamaz")
			}
			p.MinStock = *body.MinStock
		}

		if body.Description != nil {
			p.Description = *body.Description
		}

		if body.ImageURL != nil {
			p.ImageURL = strings.TrimSpace(*body.ImageURL)
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		// Audit log
		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    p.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Ürün güncellendi: %s (%s)", p.Name, p.SKU),
				Before:      before,
				After:       toProductResponse(&p),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(toProductResponse(&p))
	}
}

// DELETE /api/admin/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		before := toProductResponse(&p)

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		// Audit log
		if userID, userName, err := getUserInfo(c); err == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    p.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Ürün silindi: %s (%s)", p.Name, p.SKU),
				Before:      before,
				After:       nil,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
