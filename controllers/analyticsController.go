package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FastestSellouts(c *gin.Context) {
	ranks, err := h.Analytics.FastestSellouts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ranks)
}

func (h *Handler) MostProfitablePerDay(c *gin.Context) {
	rank, err := h.Analytics.MostProfitablePerDay()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rank)
}

func (h *Handler) MonthlyBreakdown(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return
	}

	breakdown, err := h.Analytics.MonthlyBreakdown(year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

func (h *Handler) PredictRestocks(c *gin.Context) {
	forecasts, err := h.Analytics.PredictRestocks()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecasts)
}

func (h *Handler) PredictRestock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	forecast, err := h.Analytics.PredictRestock(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, forecast)
}
