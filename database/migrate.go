package database

import (
	"location-backend/models"

	"gorm.io/gorm"
)

// AutoMigrate applies the (idempotent) schema for all tables.
func AutoMigrate() {
	if err := Migrate(DB); err != nil {
		panic(err)
	}
}

// Migrate runs AutoMigrate on the given connection; tests use it against
// in-memory databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Materiel{},
		&models.Client{},
		&models.Devis{},
		&models.DevisMateriel{},
		&models.DevisExtra{},
		&models.Facture{},
		&models.FactureMateriel{},
		&models.FactureExtra{},
		&models.Setting{},
		&models.IdempotencyKey{},
	)
}
