package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/jinzhu/gorm"
	pkgerrors "github.com/pkg/errors"

	"github.com/IhorDund/Invenlytics/models"
)

var ErrEmptyResult = errors.New("no products match the criteria")

// Service derives rankings and forecasts from the recorded purchase and sale
// events. Aggregation happens in Go after loading the qualifying rows, so the
// queries stay portable across SQL dialects.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

type SelloutRank struct {
	ProductID      uint   `json:"product_id"`
	ProductName    string `json:"product_name"`
	DaysToSellOut  int    `json:"days_to_sell_out"`
	TotalPurchased int    `json:"total_purchased"`
	TotalSold      int    `json:"total_sold"`
}

type ProfitRank struct {
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	TotalProfit  float64 `json:"total_profit"`
	DaysOnSale   int     `json:"days_on_sale"`
	ProfitPerDay float64 `json:"profit_per_day"`
}

type MonthlyReport struct {
	Month        time.Month `json:"month"`
	SoldQuantity int        `json:"sold_quantity"`
	Income       float64    `json:"income"`
	Expense      float64    `json:"expense"`
	NetProfit    float64    `json:"net_profit"`
}

type RestockForecast struct {
	ProductID            uint      `json:"product_id"`
	ProductName          string    `json:"product_name"`
	EstimatedRestockDate time.Time `json:"estimated_restock_date"`
}

// FastestSellouts ranks stocked-out products by how quickly they sold out:
// whole days between the first purchase and the last sale, ascending. Products
// without at least one purchase and one sale are excluded.
func (s *Service) FastestSellouts() ([]SelloutRank, error) {
	var products []models.Product
	err := s.db.Preload("Purchases").Preload("Sales").
		Where("quantity = 0").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load out-of-stock products")
	}

	ranks := make([]SelloutRank, 0, len(products))
	for _, product := range products {
		if len(product.Purchases) == 0 || len(product.Sales) == 0 {
			continue
		}

		firstPurchase := product.Purchases[0].Date
		totalPurchased := 0
		for _, purchase := range product.Purchases {
			if purchase.Date.Before(firstPurchase) {
				firstPurchase = purchase.Date
			}
			totalPurchased += purchase.Quantity
		}

		lastSale := product.Sales[0].Date
		totalSold := 0
		for _, sale := range product.Sales {
			if sale.Date.After(lastSale) {
				lastSale = sale.Date
			}
			totalSold += sale.Quantity
		}

		ranks = append(ranks, SelloutRank{
			ProductID:      product.ID,
			ProductName:    product.Name,
			DaysToSellOut:  wholeDays(firstPurchase, lastSale),
			TotalPurchased: totalPurchased,
			TotalSold:      totalSold,
		})
	}

	sort.Slice(ranks, func(i, j int) bool {
		return ranks[i].DaysToSellOut < ranks[j].DaysToSellOut
	})
	return ranks, nil
}

// MostProfitablePerDay returns the product with the highest net profit per day
// on sale. Only products whose last sale came after their first purchase
// qualify; ErrEmptyResult is returned when none do.
func (s *Service) MostProfitablePerDay() (*ProfitRank, error) {
	var products []models.Product
	err := s.db.Preload("Purchases").Preload("Sales").Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load products")
	}

	var best *ProfitRank
	for _, product := range products {
		if len(product.Purchases) == 0 || len(product.Sales) == 0 {
			continue
		}

		firstPurchase := product.Purchases[0].Date
		expense := 0.0
		for _, purchase := range product.Purchases {
			if purchase.Date.Before(firstPurchase) {
				firstPurchase = purchase.Date
			}
			expense += float64(purchase.Quantity) * purchase.PurchasePrice
		}

		lastSale := product.Sales[0].Date
		income := 0.0
		for _, sale := range product.Sales {
			if sale.Date.After(lastSale) {
				lastSale = sale.Date
			}
			income += float64(sale.Quantity) * sale.SalePrice
		}

		daysOnSale := wholeDays(firstPurchase, lastSale)
		if daysOnSale <= 0 {
			continue
		}

		profit := round2(income - expense)
		rank := ProfitRank{
			ProductID:    product.ID,
			ProductName:  product.Name,
			TotalProfit:  profit,
			DaysOnSale:   daysOnSale,
			ProfitPerDay: round2(profit / float64(daysOnSale)),
		}
		if best == nil || rank.ProfitPerDay > best.ProfitPerDay {
			best = &rank
		}
	}

	if best == nil {
		return nil, ErrEmptyResult
	}
	return best, nil
}

// MonthlyBreakdown reports sold quantity, income, expense and net profit for
// each calendar month of the year. Months without records report zeros.
func (s *Service) MonthlyBreakdown(year int) ([]MonthlyReport, error) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)

	var sales []models.Sale
	if err := s.db.Where("date BETWEEN ? AND ?", start, end).Find(&sales).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load sales for year")
	}
	var purchases []models.Purchase
	if err := s.db.Where("date BETWEEN ? AND ?", start, end).Find(&purchases).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load purchases for year")
	}

	reports := make([]MonthlyReport, 12)
	for i := range reports {
		reports[i].Month = time.Month(i + 1)
	}
	for _, sale := range sales {
		row := &reports[int(sale.Date.Month())-1]
		row.SoldQuantity += sale.Quantity
		row.Income += float64(sale.Quantity) * sale.SalePrice
	}
	for _, purchase := range purchases {
		row := &reports[int(purchase.Date.Month())-1]
		row.Expense += float64(purchase.Quantity) * purchase.PurchasePrice
	}
	for i := range reports {
		reports[i].NetProfit = round2(reports[i].Income - reports[i].Expense)
	}
	return reports, nil
}

// PredictRestocks estimates a restock date for every stocked-out product with
// sales history. The heuristic divides a 30-day horizon by the average units
// moved per sale transaction; it deliberately mirrors the legacy model and is
// not a true per-day rate.
func (s *Service) PredictRestocks() ([]RestockForecast, error) {
	var products []models.Product
	err := s.db.Preload("Sales").
		Where("quantity = 0").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load out-of-stock products")
	}

	forecasts := make([]RestockForecast, 0, len(products))
	for _, product := range products {
		if len(product.Sales) == 0 {
			continue
		}
		forecasts = append(forecasts, s.forecast(&product))
	}
	return forecasts, nil
}

// PredictRestock estimates the restock date for one product. It returns
// ErrEmptyResult when the product still has stock or was never sold.
func (s *Service) PredictRestock(productID uint) (*RestockForecast, error) {
	var product models.Product
	err := s.db.Preload("Sales").First(&product, productID).Error
	if err != nil {
		if pkgerrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, pkgerrors.Wrap(err, "find product")
	}
	if product.Quantity != 0 || len(product.Sales) == 0 {
		return nil, ErrEmptyResult
	}
	forecast := s.forecast(&product)
	return &forecast, nil
}

func (s *Service) forecast(product *models.Product) RestockForecast {
	totalSold := 0
	for _, sale := range product.Sales {
		totalSold += sale.Quantity
	}
	avgPerSale := float64(totalSold) / float64(len(product.Sales))

	days := 30
	if avgPerSale > 0 {
		days = int(math.Floor(30 / avgPerSale))
	}

	y, m, d := s.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return RestockForecast{
		ProductID:            product.ID,
		ProductName:          product.Name,
		EstimatedRestockDate: today.AddDate(0, 0, days),
	}
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
