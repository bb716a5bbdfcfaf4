package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Purchase is an append-only stock intake event. It is never updated or
// deleted once recorded.
type Purchase struct {
	gorm.Model
	ProductID     uint      `json:"product_id" gorm:"not null;index"`
	Product       Product   `gorm:"foreignKey:ProductID;references:ID"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	PurchasePrice float64   `json:"purchase_price" gorm:"not null"`
	Date          time.Time `json:"date" gorm:"not null;index"`
}
