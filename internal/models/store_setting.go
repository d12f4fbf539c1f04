package models

import "time"

// StoreSetting: mağaza ayarları, tek satır olarak tutulur (id=1).
type StoreSetting struct {
	ID            uint    `gorm:"primaryKey"`
	Name          string  `gorm:"size:100;not null"`
	Address       string  `gorm:"size:255"`
	Phone         string  `gorm:"size:30"`
	Email         string  `gorm:"size:100"`
	TaxRate       float64 `gorm:"not null;default:8"` // Yüzde olarak (8 = %8)
	Currency      string  `gorm:"size:10;not null;default:'USD'"`
	ReceiptFooter string  `gorm:"size:255"`
	UpdatedAt     time.Time
}
