package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhorDund/Invenlytics/controllers"
	"github.com/IhorDund/Invenlytics/database"
	"github.com/IhorDund/Invenlytics/models"
	"github.com/IhorDund/Invenlytics/routes"
)

func setupRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	database.Migrate(db)
	t.Cleanup(func() { db.Close() })

	router := gin.New()
	routes.SetupRoutes(router, controllers.NewHandler(db))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProductLifecycle(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":           "Smart TV LG OLED55",
		"quantity":       12,
		"purchase_price": 899.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = doJSON(t, router, http.MethodPut, "/api/products/1", gin.H{"name": "Smart TV LG OLED65"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Smart TV LG OLED65", updated.Name)
	assert.Equal(t, 899.0, updated.PurchasePrice)

	rec = doJSON(t, router, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSaleOverdraftReturnsConflict(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":           "Gaming Console PS5",
		"quantity":       2,
		"purchase_price": 450.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", gin.H{
		"product_id": 1,
		"quantity":   5,
		"sale_price": 599.0,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", gin.H{
		"product_id": 1,
		"quantity":   2,
		"sale_price": 599.0,
		"date":       "2024-04-01",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestAnalyticsEmptyResult(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/analytics/most-profitable", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProfitReportEndpoint(t *testing.T) {
	router := setupRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":           "Camera Canon EOS R5",
		"quantity":       0,
		"purchase_price": 2000.0,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/purchases", gin.H{
		"product_id":     1,
		"quantity":       2,
		"purchase_price": 1900.0,
		"date":           "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/sales", gin.H{
		"product_id": 1,
		"quantity":   1,
		"sale_price": 2500.0,
		"date":       "2024-02-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/reports/profit?start=2024-01-01&end=2024-12-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var report struct {
		Income  float64 `json:"income"`
		Expense float64 `json:"expense"`
		Profit  float64 `json:"profit"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, 2500.0, report.Income)
	assert.Equal(t, 3800.0, report.Expense)
	assert.Equal(t, -1300.0, report.Profit)
}
