package database

import (
	"log"

	"pos-backend/internal/config"
	"pos-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.SaleItem{},
		&models.StoreSetting{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	// Varsayılan mağaza ayarları (ilk açılışta tek satır oluşturulur)
	var settingCount int64
	DB.Model(&models.StoreSetting{}).Count(&settingCount)
	if settingCount == 0 {
		setting := models.StoreSetting{
			ID:       1,
			Name:     "Mağazam",
			TaxRate:  8,
			Currency: "USD",
		}
		if err := DB.Create(&setting).Error; err != nil {
			log.Printf("Varsayılan ayarlar oluşturulamadı: %v", err)
		} else {
			log.Println("Varsayılan mağaza ayarları oluşturuldu (tax_rate=8)")
		}
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}
