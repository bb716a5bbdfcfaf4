package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// Sale is an append-only sale event. It is never updated or deleted once
// recorded.
type Sale struct {
	gorm.Model
	ProductID uint      `json:"product_id" gorm:"not null;index"`
	Product   Product   `gorm:"foreignKey:ProductID;references:ID"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	SalePrice float64   `json:"sale_price" gorm:"not null"`
	Date      time.Time `json:"date" gorm:"not null;index"`
}
