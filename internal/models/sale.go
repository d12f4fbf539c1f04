package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash" // nakit
	PaymentMethodCard PaymentMethod = "card" // kredi/banka kartı
	PaymentMethodUPI  PaymentMethod = "upi"  // dijital ödeme
)

// Sale: tamamlanmış bir satış kaydı. Checkout sırasında bir kez oluşturulur,
// sonrasında asla değiştirilmez.
type Sale struct {
	ID            uint          `gorm:"primaryKey"`
	ReceiptNumber string        `gorm:"size:50;uniqueIndex;not null"` // Fiş numarası
	Subtotal      float64       `gorm:"not null"`
	Tax           float64       `gorm:"not null"`
	Discount      float64       `gorm:"not null;default:0"` // Şimdilik hep 0, ileride kullanılmak üzere
	Total         float64       `gorm:"not null"`
	PaymentMethod PaymentMethod `gorm:"size:20;not null"` // cash / card / upi
	CashReceived  *float64      // Sadece nakit ödemede
	Change        *float64      // Sadece nakit ödemede
	StaffID       uint          `gorm:"index;not null"` // Satışı yapan kullanıcı
	StaffName     string        `gorm:"size:100"`       // Kullanıcı adı (denormalize)
	Items         []SaleItem    `gorm:"foreignKey:SaleID"`
	CreatedAt     time.Time     `gorm:"index"`
}

// SaleItem: satıştaki bir sepet satırı. Ürün bilgileri satış anındaki
// haliyle kopyalanır, ürün sonradan değişse bile fiş aynı kalır.
type SaleItem struct {
	ID          uint    `gorm:"primaryKey"`
	SaleID      uint    `gorm:"index;not null"`
	ProductID   uint    `gorm:"index;not null"`
	ProductName string  `gorm:"size:100;not null"`
	SKU         string  `gorm:"size:50"`
	UnitPrice   float64 `gorm:"not null"` // Satış anındaki birim fiyat
	Quantity    int     `gorm:"not null"`
	Subtotal    float64 `gorm:"not null"`
}
