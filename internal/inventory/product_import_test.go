package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductRows(t *testing.T) {
	rows := [][]string{
		{"SKU", "Ürün Adı", "Kategori", "Fiyat", "Maliyet", "Miktar", "Min Stok", "Barkod"},
		{"KHV-001", "Filtre Kahve", "İçecek", "4.50", "1.20", "100", "20", "8690000000017"},
		{"SND-001", "Tavuklu Sandviç", "Yiyecek", "10,00", "4,50", "25", "5", ""},
	}

	parsed, skipped := ParseProductRows(rows)
	require.Empty(t, skipped)
	require.Len(t, parsed, 2)

	assert.Equal(t, "KHV-001", parsed[0].SKU)
	assert.Equal(t, "Filtre Kahve", parsed[0].Name)
	assert.Equal(t, "İçecek", parsed[0].Category)
	assert.Equal(t, 4.50, parsed[0].Price)
	assert.Equal(t, 1.20, parsed[0].Cost)
	assert.Equal(t, 100, parsed[0].Quantity)
	assert.Equal(t, 20, parsed[0].MinStock)
	assert.Equal(t, "8690000000017", parsed[0].Barcode)

	// Virgüllü ondalıklar da kabul edilir
	assert.Equal(t, 10.00, parsed[1].Price)
	assert.Equal(t, 4.50, parsed[1].Cost)
}

func TestParseProductRowsNoHeader(t *testing.T) {
	rows := [][]string{
		{"KHV-001", "Filtre Kahve", "İçecek", "4.50", "1.20", "100", "20", ""},
	}

	parsed, skipped := ParseProductRows(rows)
	require.Empty(t, skipped)
	require.Len(t, parsed, 1)
	assert.Equal(t, "KHV-001", parsed[0].SKU)
}

func TestParseProductRowsSkipsInvalid(t *testing.T) {
	rows := [][]string{
		{"SKU", "Name"},
		{"", "Adsız Ürün", "", "1.00", "0", "1", "0", ""},        // SKU eksik
		{"BAD-01", "Kötü Fiyat", "", "abc", "0", "1", "0", ""},   // fiyat geçersiz
		{"BAD-02", "Eksi Miktar", "", "1.00", "0", "-5", "0", ""}, // miktar negatif
		{"", "", "", "", "", "", "", ""},                          // boş satır, sessizce geç
		{"OK-01", "Geçerli", "", "2.00", "1.00", "3", "1", ""},
	}

	parsed, skipped := ParseProductRows(rows)
	require.Len(t, parsed, 1)
	assert.Equal(t, "OK-01", parsed[0].SKU)

	require.Len(t, skipped, 3)
	assert.Contains(t, skipped[0], "Satır 2")
	assert.Contains(t, skipped[0], "SKU ve name zorunlu")
	assert.Contains(t, skipped[1], "fiyat geçersiz")
	assert.Contains(t, skipped[2], "miktar geçersiz")
}

func TestParseProductRowsShortRow(t *testing.T) {
	// Eksik kolonlar boş sayılır, sayısal alanlar sıfırlanır
	rows := [][]string{
		{"KHV-001", "Filtre Kahve"},
	}

	parsed, skipped := ParseProductRows(rows)
	require.Empty(t, skipped)
	require.Len(t, parsed, 1)
	assert.Equal(t, 0.0, parsed[0].Price)
	assert.Equal(t, 0, parsed[0].Quantity)
}

func TestParseImportNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"4.50", 4.50, true},
		{"4,50", 4.50, true},
		{" 12 ", 12, true},
		{"", 0, true},
		{"abc", 0, false},
	}

	for _, tc := range cases {
		got, err := parseImportNumber(tc.in)
		if tc.ok {
			require.NoError(t, err, "girdi: %q", tc.in)
			assert.Equal(t, tc.want, got, "girdi: %q", tc.in)
		} else {
			assert.Error(t, err, "girdi: %q", tc.in)
		}
	}
}
