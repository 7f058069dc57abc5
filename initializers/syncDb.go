package initializers

import (
	"log"

	"github.com/viratcollections/virat-api/models"
)

func SyncDatabase() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentDraft{},
		&models.Banner{},
	)
	if err != nil {
		log.Fatal("Failed to sync database:", err)
	}
	log.Println("Database synced successfully.")
}
