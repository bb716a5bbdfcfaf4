package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Return is an append-only customer return event. ReturnToStock records
// whether the returned units went back on the shelf.
type Return struct {
	gorm.Model
	ProductID     uint      `json:"product_id" gorm:"not null;index"`
	Product       Product   `gorm:"foreignKey:ProductID;references:ID"`
	Quantity      int       `json:"quantity" gorm:"not null"`
	ReturnPrice   float64   `json:"return_price" gorm:"not null"`
	Date          time.Time `json:"date" gorm:"not null;index"`
	ReturnToStock bool      `json:"return_to_stock" gorm:"not null"`
}
