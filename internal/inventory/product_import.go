package inventory

import (
	"fmt"
	"strconv"
	"strings"

	"pos-backend/internal/audit"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// ImportRow: XLSX'ten okunan bir ürün satırı
// Beklenen kolon sırası: SKU | Name | Category | Price | Cost | Quantity | MinStock | Barcode
type ImportRow struct {
	SKU      string
	Name     string
	Category string
	Price    float64
	Cost     float64
	Quantity int
	MinStock int
	Barcode  string
}

type ImportResultResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped"` // Atlanan satırların açıklamaları
}

// parseImportNumber: "12,50" gibi virgüllü sayıları da kabul eder
func parseImportNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// ParseProductRows: sheet satırlarını ürün satırlarına çevirir. İlk satır
// başlık satırıysa atlanır. Hatalı satırlar import'u durdurmaz, açıklamasıyla
// birlikte skipped listesine eklenir.
func ParseProductRows(rows [][]string) ([]ImportRow, []string) {
	parsed := make([]ImportRow, 0, len(rows))
	skipped := make([]string, 0)

	startIndex := 0
	if len(rows) > 0 {
		firstCell := strings.ToUpper(cell(rows[0], 0))
		if strings.Contains(firstCell, "SKU") || strings.Contains(firstCell, "STOK") ||
			strings.Contains(firstCell, "ÜRÜN") || strings.Contains(firstCell, "PRODUCT") {
			startIndex = 1
		}
	}

	for i := startIndex; i < len(rows); i++ {
		row := rows[i]
		rowNo := i + 1

		sku := cell(row, 0)
		name := cell(row, 1)

		// Boş satırları sessizce atla
		if sku == "" && name == "" {
			continue
		}
		if sku == "" || name == "" {
			skipped = append(skipped, fmt.Sprintf("Satır %d: SKU ve name zorunlu", rowNo))
			continue
		}

		price, err := parseImportNumber(cell(row, 3))
		if err != nil || price < 0 {
			skipped = append(skipped, fmt.Sprintf("Satır %d: fiyat geçersiz", rowNo))
			continue
		}

		cost, err := parseImportNumber(cell(row, 4))
		if err != nil || cost < 0 {
			skipped = append(skipped, fmt.Sprintf("Satır %d: maliyet geçersiz", rowNo))
			continue
		}

		quantityF, err := parseImportNumber(cell(row, 5))
		if err != nil || quantityF < 0 {
			skipped = append(skipped, fmt.Sprintf("Satır %d: miktar geçersiz", rowNo))
			continue
		}

		minStockF, err := parseImportNumber(cell(row, 6))
		if err != nil || minStockF < 0 {
			skipped = append(skipped, fmt.Sprintf("Satır %d: min_stock geçersiz", rowNo))
			continue
		}

		parsed = append(parsed, ImportRow{
			SKU:      sku,
			Name:     name,
			Category: cell(row, 2),
			Price:    price,
			Cost:     cost,
			Quantity: int(quantityF),
			MinStock: int(minStockF),
			Barcode:  cell(row, 7),
		})
	}

	return parsed, skipped
}

// POST /api/admin/products/import
// XLSX dosyasından toplu ürün yükler. SKU'su mevcut olan ürünler güncellenir,
// olmayanlar oluşturulur.
func ImportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece .xlsx dosyaları yüklenebilir")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya açılamadı: "+err.Error())
		}
		defer file.Close()

		// Excelize ile dosyayı oku
		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası okunamadı: "+err.Error())
		}
		defer excelFile.Close()

		// İlk sheet'i al
		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyasında sheet bulunamadı")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Sheet okunamadı: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Excel dosyası boş")
		}

		imported, skipped := ParseProductRows(rows)

		userID, userName, uerr := getUserInfo(c)

		created := 0
		updated := 0
		for _, row := range imported {
			var p models.Product
			err := database.DB.Where("sku = ?", row.SKU).First(&p).Error

			if err == nil {
				// Mevcut ürün: güncelle
				p.Name = row.Name
				p.Category = row.Category
				p.Price = row.Price
				p.Cost = row.Cost
				p.Quantity = row.Quantity
				p.MinStock = row.MinStock
				if row.Barcode != "" {
					p.Barcode = row.Barcode
				}
				if err := database.DB.Save(&p).Error; err != nil {
					skipped = append(skipped, fmt.Sprintf("%s: güncellenemedi", row.SKU))
					continue
				}
				updated++
			} else {
				p = models.Product{
					SKU:      row.SKU,
					Barcode:  row.Barcode,
					Name:     row.Name,
					Category: row.Category,
					Price:    row.Price,
					Cost:     row.Cost,
					Quantity: row.Quantity,
					MinStock: row.MinStock,
				}
				if err := database.DB.Create(&p).Error; err != nil {
					skipped = append(skipped, fmt.Sprintf("%s: oluşturulamadı", row.SKU))
					continue
				}
				created++
			}
		}

		// Tek bir özet audit kaydı yeterli
		if uerr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "product",
				EntityID:    0,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Toplu ürün import: %d yeni, %d güncelleme, %d atlandı", created, updated, len(skipped)),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(ImportResultResponse{
			Created: created,
			Updated: updated,
			Skipped: skipped,
		})
	}
}
