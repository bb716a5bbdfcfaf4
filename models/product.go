package models

import (
	"errors"

	"github.com/jinzhu/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough product in stock")
)

type Product struct {
	gorm.Model
	Name          string     `json:"name" gorm:"not null"`
	EAN           string     `json:"ean,omitempty"`
	Quantity      int        `json:"quantity" gorm:"not null"`
	PurchasePrice float64    `json:"purchase_price" gorm:"not null"`
	Purchases     []Purchase `json:"-" gorm:"foreignKey:ProductID"`
	Sales         []Sale     `json:"-" gorm:"foreignKey:ProductID"`
	Returns       []Return   `json:"-" gorm:"foreignKey:ProductID"`
}
