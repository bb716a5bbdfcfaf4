package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateReturn(c *gin.Context) {
	var input struct {
		ProductID     uint    `json:"product_id" binding:"required"`
		Quantity      int     `json:"quantity" binding:"required"`
		ReturnPrice   float64 `json:"return_price" binding:"required"`
		Date          string  `json:"date"`
		ReturnToStock bool    `json:"return_to_stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parseDate(input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	ret, err := h.Ledger.AddReturn(input.ProductID, input.Quantity, input.ReturnPrice, date, input.ReturnToStock)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ret)
}
