package reports

import (
	"math"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"github.com/IhorDund/Invenlytics/models"
)

// Open-ended reporting defaults, used when a caller does not narrow the range.
var (
	RangeStart = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	RangeEnd   = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
)

// Service computes aggregates over the recorded purchase and sale events.
// All reads are independent; nothing here mutates the ledger.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type ProfitReport struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Income    float64   `json:"income"`
	Expense   float64   `json:"expense"`
	Profit    float64   `json:"profit"`
}

type StockItem struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

// TotalIncome sums quantity*price over sales dated within [start, end].
func (s *Service) TotalIncome(start, end time.Time) (float64, error) {
	return s.sumRevenue(&models.Sale{}, "sale_price", start, end)
}

// TotalExpense sums quantity*price over purchases dated within [start, end].
func (s *Service) TotalExpense(start, end time.Time) (float64, error) {
	return s.sumRevenue(&models.Purchase{}, "purchase_price", start, end)
}

// Profit returns income minus expense for the period, rounded to cents.
func (s *Service) Profit(start, end time.Time) (float64, error) {
	report, err := s.ProfitReport(start, end)
	if err != nil {
		return 0, err
	}
	return report.Profit, nil
}

func (s *Service) ProfitReport(start, end time.Time) (*ProfitReport, error) {
	income, err := s.TotalIncome(start, end)
	if err != nil {
		return nil, err
	}
	expense, err := s.TotalExpense(start, end)
	if err != nil {
		return nil, err
	}
	return &ProfitReport{
		StartDate: start,
		EndDate:   end,
		Income:    income,
		Expense:   expense,
		Profit:    round2(income - expense),
	}, nil
}

// InventoryValuation values the stock on hand at reference purchase prices.
func (s *Service) InventoryValuation() (float64, error) {
	var row struct{ Total float64 }
	err := s.db.Model(&models.Product{}).
		Select("COALESCE(SUM(quantity * purchase_price), 0) AS total").
		Where("quantity > 0").
		Scan(&row).Error
	if err != nil {
		return 0, errors.Wrap(err, "sum inventory value")
	}
	return row.Total, nil
}

// StockSnapshot lists products with stock on hand, keyed by product id so
// that distinct products sharing a name stay distinct.
func (s *Service) StockSnapshot() ([]StockItem, error) {
	var products []models.Product
	if err := s.db.Where("quantity > 0").Order("id").Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list stocked products")
	}

	items := make([]StockItem, 0, len(products))
	for _, product := range products {
		items = append(items, StockItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  product.Quantity,
		})
	}
	return items, nil
}

// SalesBetween lists sales in the period with their products attached.
func (s *Service) SalesBetween(start, end time.Time) ([]models.Sale, error) {
	var sales []models.Sale
	err := s.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").
		Find(&sales).Error
	if err != nil {
		return nil, errors.Wrap(err, "list sales")
	}
	return sales, nil
}

// PurchasesBetween lists purchases in the period with their products attached.
func (s *Service) PurchasesBetween(start, end time.Time) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := s.db.Preload("Product").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date").
		Find(&purchases).Error
	if err != nil {
		return nil, errors.Wrap(err, "list purchases")
	}
	return purchases, nil
}

func (s *Service) sumRevenue(event interface{}, priceColumn string, start, end time.Time) (float64, error) {
	var row struct{ Total float64 }
	err := s.db.Model(event).
		Select("COALESCE(SUM(quantity * " + priceColumn + "), 0) AS total").
		Where("date BETWEEN ? AND ?", start, end).
		Scan(&row).Error
	if err != nil {
		return 0, errors.Wrap(err, "sum event revenue")
	}
	return row.Total, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
