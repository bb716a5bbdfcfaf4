package ledger

import (
	"time"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"

	"github.com/IhorDund/Invenlytics/models"
)

// Service implements the ledger operations: product registration and the
// append-only purchase, sale and return events. Every mutation that touches
// stock runs the event insert and the quantity update in one transaction so
// the quantity never drifts from the recorded history.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ProductUpdate carries optional fields for UpdateProductInfo. A nil pointer
// means "leave unchanged", so an update can set EAN to the empty string.
type ProductUpdate struct {
	Name          *string  `json:"name"`
	PurchasePrice *float64 `json:"purchase_price"`
	EAN           *string  `json:"ean"`
}

func (s *Service) AddProduct(name string, quantity int, purchasePrice float64, ean string) (*models.Product, error) {
	product := &models.Product{
		Name:          name,
		EAN:           ean,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
	}
	if err := s.db.Create(product).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return product, nil
}

func (s *Service) GetProduct(productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, errors.Wrap(err, "find product")
	}
	return &product, nil
}

func (s *Service) Products() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// AddPurchase records a stock intake and increments the product quantity.
// The date defaults to today.
func (s *Service) AddPurchase(productID uint, quantity int, purchasePrice float64, date time.Time) (*models.Purchase, error) {
	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}
	if quantity <= 0 || purchasePrice <= 0 {
		return nil, ErrInvalidArgument
	}
	if date.IsZero() {
		date = today()
	}

	purchase := &models.Purchase{
		ProductID:     productID,
		Quantity:      quantity,
		PurchasePrice: purchasePrice,
		Date:          date,
	}

	tx := s.db.Begin()
	if err := tx.Create(purchase).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "create purchase")
	}
	if err := tx.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "increment stock")
	}
	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(err, "commit purchase")
	}
	return purchase, nil
}

// AddSale records a sale and decrements the product quantity. The decrement
// is guarded so stock can never go negative even if the quantity changed
// between the availability check and the update.
func (s *Service) AddSale(productID uint, quantity int, salePrice float64, date time.Time) (*models.Sale, error) {
	if quantity <= 0 || salePrice <= 0 {
		return nil, ErrInvalidArgument
	}
	product, err := s.GetProduct(productID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			return nil, models.ErrInsufficientStock
		}
		return nil, err
	}
	if product.Quantity < quantity {
		return nil, models.ErrInsufficientStock
	}
	if date.IsZero() {
		date = today()
	}

	sale := &models.Sale{
		ProductID: productID,
		Quantity:  quantity,
		SalePrice: salePrice,
		Date:      date,
	}

	tx := s.db.Begin()
	if err := tx.Create(sale).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "create sale")
	}
	res := tx.Model(&models.Product{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		tx.Rollback()
		return nil, errors.Wrap(res.Error, "decrement stock")
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return nil, models.ErrInsufficientStock
	}
	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(err, "commit sale")
	}
	return sale, nil
}

// AddReturn records a customer return. A product cannot take back more units
// than were sold net of earlier returns. When returnToStock is set the
// returned units go back into the quantity on hand.
func (s *Service) AddReturn(productID uint, quantity int, returnPrice float64, date time.Time, returnToStock bool) (*models.Return, error) {
	if _, err := s.GetProduct(productID); err != nil {
		return nil, err
	}
	if quantity <= 0 || returnPrice <= 0 {
		return nil, ErrInvalidArgument
	}

	sold, err := s.sumQuantity(&models.Sale{}, productID)
	if err != nil {
		return nil, err
	}
	returned, err := s.sumQuantity(&models.Return{}, productID)
	if err != nil {
		return nil, err
	}
	if int64(quantity) > sold-returned {
		return nil, ErrExcessReturn
	}

	if date.IsZero() {
		date = today()
	}

	ret := &models.Return{
		ProductID:     productID,
		Quantity:      quantity,
		ReturnPrice:   returnPrice,
		Date:          date,
		ReturnToStock: returnToStock,
	}

	tx := s.db.Begin()
	if err := tx.Create(ret).Error; err != nil {
		tx.Rollback()
		return nil, errors.Wrap(err, "create return")
	}
	if returnToStock {
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", quantity)).Error; err != nil {
			tx.Rollback()
			return nil, errors.Wrap(err, "restock returned items")
		}
	}
	if err := tx.Commit().Error; err != nil {
		return nil, errors.Wrap(err, "commit return")
	}
	return ret, nil
}

// UpdateProductInfo overwrites only the fields supplied in the update.
func (s *Service) UpdateProductInfo(productID uint, update ProductUpdate) (*models.Product, error) {
	product, err := s.GetProduct(productID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.PurchasePrice != nil {
		fields["purchase_price"] = *update.PurchasePrice
	}
	if update.EAN != nil {
		fields["ean"] = *update.EAN
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(fields).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return product, nil
}

func (s *Service) sumQuantity(event interface{}, productID uint) (int64, error) {
	var row struct{ Total int64 }
	err := s.db.Model(event).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return 0, errors.Wrap(err, "sum event quantities")
	}
	return row.Total, nil
}

func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
