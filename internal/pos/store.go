package pos

import (
	"fmt"

	"pos-backend/internal/models"

	"gorm.io/gorm"
)

// Store: SaleStore'un GORM implementasyonu. Satış kaydı ve stok düşüşleri
// tek bir veritabanı transaction'ı içinde yapılır.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateSale(sale *models.Sale) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("satış kaydedilemedi: %w", err)
		}

		for _, item := range sale.Items {
			// Koşullu düşüş: stok bu arada azaldıysa satır etkilenmez ve
			// tüm satış geri alınır. Stok hiçbir zaman negatife inmez.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", item.ProductID, item.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", item.Quantity))
			if res.Error != nil {
				return fmt.Errorf("stok düşülemedi (ürün %d): %w", item.ProductID, res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}
		}

		return nil
	})
}
