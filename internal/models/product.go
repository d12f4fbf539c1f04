package models

import "time"

type Product struct {
	ID          uint    `gorm:"primaryKey"`
	SKU         string  `gorm:"size:50;uniqueIndex;not null"`
	Barcode     string  `gorm:"size:50;index"` // Opsiyonel, barkod okuyucu ile arama için
	Name        string  `gorm:"size:100;not null"`
	Category    string  `gorm:"size:50;index"`
	Price       float64 `gorm:"not null"` // Birim satış fiyatı
	Cost        float64 // Birim maliyet
	Quantity    int     `gorm:"not null;default:0;check:quantity >= 0"`  // Eldeki stok
	MinStock    int     `gorm:"not null;default:0;check:min_stock >= 0"` // Kritik stok eşiği
	Description string  `gorm:"size:500"`
	ImageURL    string  `gorm:"size:500"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Kritik stok kontrolü: quantity <= min_stock ise ürün "düşük stok" sayılır
func (p *Product) IsLowStock() bool {
	return p.Quantity <= p.MinStock
}
