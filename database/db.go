package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/pkg/errors"

	"github.com/IhorDund/Invenlytics/config"
	"github.com/IhorDund/Invenlytics/models"
)

// Connect opens the Postgres connection and runs migrations. The returned
// handle is passed explicitly to every service; there is no package-level DB.
func Connect(cfg config.Config) (*gorm.DB, error) {
	connectionString := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBName, cfg.DBPassword, cfg.DBSSLMode)

	db, err := gorm.Open("postgres", connectionString)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}

	Migrate(db)
	return db, nil
}

func Migrate(db *gorm.DB) {
	db.AutoMigrate(&models.Product{}, &models.Purchase{}, &models.Sale{}, &models.Return{})
}
