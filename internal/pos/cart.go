package pos

import (
	"pos-backend/internal/models"

	"github.com/shopspring/decimal"
)

// CartLine: aktif satıştaki bir sepet satırı. Ürün bilgisi, satırın en son
// güncellendiği andaki snapshot olarak tutulur; subtotal o andaki birim
// fiyat üzerinden hesaplanır.
type CartLine struct {
	Product  models.Product
	Quantity int
	Subtotal decimal.Decimal // Quantity × birim fiyat
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// Cart: devam eden tek bir satışın satırlarını tutar. Ürün başına tek satır
// vardır (aynı ürün tekrar eklenirse miktar artar), satırlar ekleme sırasını
// korur. Tek kasiyer tek terminalde çalıştığı için eşzamanlılık koruması yok.
type Cart struct {
	lines   []CartLine
	taxRate decimal.Decimal // oran olarak, 0.08 = %8
}

// NewCart: verilen vergi yüzdesiyle boş bir sepet oluşturur (8 = %8).
func NewCart(taxRatePercent float64) *Cart {
	return &Cart{
		taxRate: decimal.NewFromFloat(taxRatePercent).Div(decimal.NewFromInt(100)),
	}
}

func lineSubtotal(unitPrice float64, quantity int) decimal.Decimal {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2)
}

func (c *Cart) findLine(productID uint) int {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem: sepete ürün ekler. Ürün zaten sepetteyse miktarı artırır.
// Toplam istenen miktar eldeki stoku aşarsa ErrInsufficientStock döner ve
// sepet olduğu gibi kalır. Sınır dahildir: istenen == stok geçerlidir.
func (c *Cart) AddItem(product models.Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	idx := c.findLine(product.ID)

	newQuantity := quantity
	if idx >= 0 {
		newQuantity += c.lines[idx].Quantity
	}
	if newQuantity > product.Quantity {
		return ErrInsufficientStock
	}

	if idx >= 0 {
		c.lines[idx].Product = product
		c.lines[idx].Quantity = newQuantity
		c.lines[idx].Subtotal = lineSubtotal(product.Price, newQuantity)
		return nil
	}

	c.lines = append(c.lines, CartLine{
		Product:  product,
		Quantity: quantity,
		Subtotal: lineSubtotal(product.Price, quantity),
	})
	return nil
}

// SetItemQuantity: satırın miktarını verilen değerle değiştirir. quantity == 0
// satırı siler. Stok kontrolü, satır ilk eklendiğindeki eski snapshot'a değil,
// parametre olarak gelen güncel ürün kaydına göre yapılır; satırın fiyatı da
// bu kayıttan tazelenir. Ürün sepette yoksa işlem yapılmaz.
func (c *Cart) SetItemQuantity(product models.Product, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		c.RemoveItem(product.ID)
		return nil
	}

	idx := c.findLine(product.ID)
	if idx < 0 {
		return nil
	}

	if quantity > product.Quantity {
		return ErrInsufficientStock
	}

	c.lines[idx].Product = product
	c.lines[idx].Quantity = quantity
	c.lines[idx].Subtotal = lineSubtotal(product.Price, quantity)
	return nil
}

// RemoveItem: ürünün satırını siler. Ürün sepette yoksa sessizce geçer.
func (c *Cart) RemoveItem(productID uint) {
	idx := c.findLine(productID)
	if idx < 0 {
		return
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
}

// Clear: tüm satırları boşaltır.
func (c *Cart) Clear() {
	c.lines = nil
}

// Totals: mevcut satırlar üzerinden ara toplam, vergi ve genel toplamı
// hesaplar. Yan etkisi yoktur, istenildiği kadar çağrılabilir.
// tax = subtotal × oran, kuruşa yuvarlanır.
func (c *Cart) Totals() Totals {
	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.Subtotal)
	}
	tax := subtotal.Mul(c.taxRate).Round(2)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Lines: satırların kopyasını döndürür, dışarıdan mutasyona kapalı.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}
