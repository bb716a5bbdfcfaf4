package analytics

import (
	"testing"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IhorDund/Invenlytics/database"
	"github.com/IhorDund/Invenlytics/ledger"
	"github.com/IhorDund/Invenlytics/models"
	"github.com/IhorDund/Invenlytics/reports"
)

func setup(t *testing.T) (*Service, *ledger.Service, *gorm.DB) {
	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	database.Migrate(db)
	t.Cleanup(func() { db.Close() })
	return NewService(db), ledger.NewService(db), db
}

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func TestFastestSellouts(t *testing.T) {
	svc, lgr, _ := setup(t)

	slow, err := lgr.AddProduct("Slow seller", 0, 10, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(slow.ID, 5, 10, date("2024-01-01"))
	require.NoError(t, err)
	_, err = lgr.AddSale(slow.ID, 5, 20, date("2024-01-10"))
	require.NoError(t, err)

	fast, err := lgr.AddProduct("Fast seller", 0, 10, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(fast.ID, 10, 10, date("2024-01-01"))
	require.NoError(t, err)
	_, err = lgr.AddSale(fast.ID, 4, 20, date("2024-01-02"))
	require.NoError(t, err)
	_, err = lgr.AddSale(fast.ID, 6, 20, date("2024-01-05"))
	require.NoError(t, err)

	// still in stock, must not appear
	stocked, err := lgr.AddProduct("Still stocked", 0, 10, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(stocked.ID, 10, 10, date("2024-01-01"))
	require.NoError(t, err)
	_, err = lgr.AddSale(stocked.ID, 1, 20, date("2024-01-03"))
	require.NoError(t, err)

	// sold out from initial stock with no recorded purchase, excluded
	unsourced, err := lgr.AddProduct("Unsourced", 3, 10, "")
	require.NoError(t, err)
	_, err = lgr.AddSale(unsourced.ID, 3, 20, date("2024-01-04"))
	require.NoError(t, err)

	ranks, err := svc.FastestSellouts()
	require.NoError(t, err)
	require.Len(t, ranks, 2)

	assert.Equal(t, fast.ID, ranks[0].ProductID)
	assert.Equal(t, 4, ranks[0].DaysToSellOut)
	assert.Equal(t, 10, ranks[0].TotalPurchased)
	assert.Equal(t, 10, ranks[0].TotalSold)

	assert.Equal(t, slow.ID, ranks[1].ProductID)
	assert.Equal(t, 9, ranks[1].DaysToSellOut)
}

func TestFastestSelloutsSameDay(t *testing.T) {
	svc, lgr, _ := setup(t)

	product, err := lgr.AddProduct("Flash sale", 0, 10, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(product.ID, 2, 10, date("2024-03-03"))
	require.NoError(t, err)
	_, err = lgr.AddSale(product.ID, 2, 20, date("2024-03-03"))
	require.NoError(t, err)

	ranks, err := svc.FastestSellouts()
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, 0, ranks[0].DaysToSellOut)
}

func TestMostProfitablePerDay(t *testing.T) {
	svc, lgr, _ := setup(t)

	t.Run("Empty candidate set", func(t *testing.T) {
		_, err := svc.MostProfitablePerDay()
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	steady, err := lgr.AddProduct("Steady", 0, 5, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(steady.ID, 10, 5, date("2024-01-01")) // cost 50
	require.NoError(t, err)
	_, err = lgr.AddSale(steady.ID, 10, 10, date("2024-01-06")) // revenue 100
	require.NoError(t, err)
	// profit 50 over 5 days = 10/day

	spike, err := lgr.AddProduct("Spike", 0, 5, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(spike.ID, 10, 5, date("2024-01-01")) // cost 50
	require.NoError(t, err)
	_, err = lgr.AddSale(spike.ID, 10, 20, date("2024-01-11")) // revenue 200
	require.NoError(t, err)
	// profit 150 over 10 days = 15/day

	// bought and sold the same day: days_on_sale is zero, excluded
	sameDay, err := lgr.AddProduct("Same day", 0, 5, "")
	require.NoError(t, err)
	_, err = lgr.AddPurchase(sameDay.ID, 1, 5, date("2024-01-02"))
	require.NoError(t, err)
	_, err = lgr.AddSale(sameDay.ID, 1, 500, date("2024-01-02"))
	require.NoError(t, err)

	t.Run("Picks highest profit per day", func(t *testing.T) {
		best, err := svc.MostProfitablePerDay()
		require.NoError(t, err)
		assert.Equal(t, spike.ID, best.ProductID)
		assert.Equal(t, 150.0, best.TotalProfit)
		assert.Equal(t, 10, best.DaysOnSale)
		assert.Equal(t, 15.0, best.ProfitPerDay)
	})
}

func TestMonthlyBreakdown(t *testing.T) {
	svc, lgr, db := setup(t)

	product, err := lgr.AddProduct("Seasonal", 0, 30, "")
	require.NoError(t, err)
	for _, event := range []struct {
		purchase string
		sale     string
	}{
		{"2024-01-05", "2024-01-20"},
		{"2024-03-02", "2024-03-15"},
		{"2024-03-10", "2024-03-25"},
		{"2024-08-01", "2024-08-30"},
	} {
		_, err = lgr.AddPurchase(product.ID, 4, 30, date(event.purchase))
		require.NoError(t, err)
		_, err = lgr.AddSale(product.ID, 3, 55, date(event.sale))
		require.NoError(t, err)
	}
	// outside the reporting year, must not count
	_, err = lgr.AddPurchase(product.ID, 4, 30, date("2023-12-30"))
	require.NoError(t, err)
	_, err = lgr.AddSale(product.ID, 3, 55, date("2023-12-31"))
	require.NoError(t, err)

	breakdown, err := svc.MonthlyBreakdown(2024)
	require.NoError(t, err)
	require.Len(t, breakdown, 12)

	assert.Equal(t, time.January, breakdown[0].Month)
	assert.Equal(t, 3, breakdown[0].SoldQuantity)
	assert.Equal(t, 165.0, breakdown[0].Income)
	assert.Equal(t, 120.0, breakdown[0].Expense)
	assert.Equal(t, 45.0, breakdown[0].NetProfit)

	assert.Equal(t, 6, breakdown[2].SoldQuantity)
	assert.Zero(t, breakdown[1].SoldQuantity)
	assert.Zero(t, breakdown[1].Income)

	// months summed must equal the annual totals
	var income, expense float64
	var sold int
	for _, row := range breakdown {
		income += row.Income
		expense += row.Expense
		sold += row.SoldQuantity
	}
	rpt := reports.NewService(db)
	annualIncome, err := rpt.TotalIncome(date("2024-01-01"), date("2024-12-31"))
	require.NoError(t, err)
	annualExpense, err := rpt.TotalExpense(date("2024-01-01"), date("2024-12-31"))
	require.NoError(t, err)
	assert.Equal(t, annualIncome, income)
	assert.Equal(t, annualExpense, expense)
	assert.Equal(t, 12, sold)
}

func TestPredictRestock(t *testing.T) {
	svc, lgr, _ := setup(t)
	svc.now = func() time.Time { return date("2024-03-01") }

	product, err := lgr.AddProduct("Hot item", 10, 12, "")
	require.NoError(t, err)
	// 5 sales totalling 10 units: 2 units per sale on average
	for i := 0; i < 5; i++ {
		_, err = lgr.AddSale(product.ID, 2, 18, date("2024-02-10").AddDate(0, 0, i))
		require.NoError(t, err)
	}

	t.Run("Single product forecast", func(t *testing.T) {
		forecast, err := svc.PredictRestock(product.ID)
		require.NoError(t, err)
		// floor(30 / 2) = 15 days out
		assert.Equal(t, date("2024-03-16"), forecast.EstimatedRestockDate)
	})

	t.Run("All out-of-stock products", func(t *testing.T) {
		forecasts, err := svc.PredictRestocks()
		require.NoError(t, err)
		require.Len(t, forecasts, 1)
		assert.Equal(t, product.ID, forecasts[0].ProductID)
	})

	t.Run("Product still in stock does not qualify", func(t *testing.T) {
		stocked, err := lgr.AddProduct("Cold item", 5, 12, "")
		require.NoError(t, err)
		_, err = svc.PredictRestock(stocked.ID)
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("Missing product", func(t *testing.T) {
		_, err := svc.PredictRestock(9999)
		assert.ErrorIs(t, err, models.ErrProductNotFound)
	})
}
