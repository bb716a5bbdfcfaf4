package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/IhorDund/Invenlytics/controllers"
)

func SetupRoutes(router *gin.Engine, h *controllers.Handler) {
	api := router.Group("/api")

	products := api.Group("/products")
	{
		products.GET("", h.GetProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
	}

	api.POST("/purchases", h.CreatePurchase)
	api.GET("/purchases", h.GetPurchases)
	api.POST("/sales", h.CreateSale)
	api.GET("/sales", h.GetSales)
	api.POST("/returns", h.CreateReturn)

	reports := api.Group("/reports")
	{
		reports.GET("/profit", h.ProfitReport)
		reports.GET("/stock", h.StockSnapshot)
		reports.GET("/valuation", h.InventoryValuation)
		reports.POST("", h.GenerateReport)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/fastest-sellouts", h.FastestSellouts)
		analytics.GET("/most-profitable", h.MostProfitablePerDay)
		analytics.GET("/monthly/:year", h.MonthlyBreakdown)
		analytics.GET("/restock-forecast", h.PredictRestocks)
		analytics.GET("/restock-forecast/:id", h.PredictRestock)
	}
}
