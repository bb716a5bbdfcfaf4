package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePurchase(c *gin.Context) {
	var input struct {
		ProductID     uint    `json:"product_id" binding:"required"`
		Quantity      int     `json:"quantity" binding:"required"`
		PurchasePrice float64 `json:"purchase_price" binding:"required"`
		Date          string  `json:"date"`
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

	purchase, err := h.Ledger.AddPurchase(input.ProductID, input.Quantity, input.PurchasePrice, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *Handler) GetPurchases(c *gin.Context) {
	start, end, err := parseRange(c.Query("start"), c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, expected YYYY-MM-DD"})
		return
	}

	purchases, err := h.Reports.PurchasesBetween(start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}
