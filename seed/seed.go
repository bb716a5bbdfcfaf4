// Package seed fills the database with a randomized but internally consistent
// demo dataset: products first, then purchases and sales spread over the last
// year, all driven through the ledger so the stock invariant holds.
package seed

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/jinzhu/gorm"

	"github.com/IhorDund/Invenlytics/ledger"
	"github.com/IhorDund/Invenlytics/models"
)

var productNames = []string{
	"Laptop Dell XPS 13", "Smartphone Samsung Galaxy S23", "Tablet iPad Pro",
	"Headphones Sony WH-1000XM5", "Smartwatch Apple Watch", "Camera Canon EOS R5",
	"Printer HP LaserJet Pro", "External SSD Samsung T7", "Gaming Monitor LG UltraGear",
	"Mechanical Keyboard Corsair K95", "Smart TV LG OLED55", "Bluetooth Speaker JBL Flip 5",
	"Gaming Console PS5", "VR Headset Meta Quest 3", "Graphics Card Nvidia RTX 4090",
}

type Options struct {
	Products  int
	Purchases int
	Sales     int
}

func DefaultOptions() Options {
	return Options{Products: 100, Purchases: 500, Sales: 500}
}

func Generate(db *gorm.DB, opts Options) error {
	svc := ledger.NewService(db)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	ids := make([]uint, 0, opts.Products)
	for i := 1; i <= opts.Products; i++ {
		name := fmt.Sprintf("%s %d", productNames[rng.Intn(len(productNames))], i)
		product, err := svc.AddProduct(name, 1+rng.Intn(100), randomPrice(rng, 10, 2000), randomEAN(rng))
		if err != nil {
			return err
		}
		ids = append(ids, product.ID)
	}

	for i := 0; i < opts.Purchases; i++ {
		_, err := svc.AddPurchase(ids[rng.Intn(len(ids))], 1+rng.Intn(20), randomPrice(rng, 10, 2000), randomDate(rng))
		if err != nil {
			return err
		}
	}

	for i := 0; i < opts.Sales; i++ {
		_, err := svc.AddSale(ids[rng.Intn(len(ids))], 1+rng.Intn(20), randomPrice(rng, 20, 3000), randomDate(rng))
		if err != nil && !errors.Is(err, models.ErrInsufficientStock) {
			return err
		}
		// sales that would overdraw the stock are skipped
	}

	return nil
}

func randomEAN(rng *rand.Rand) string {
	return fmt.Sprintf("%d", 1000000000000+rng.Int63n(9000000000000))
}

func randomPrice(rng *rand.Rand, min, max float64) float64 {
	cents := int64((min + rng.Float64()*(max-min)) * 100)
	return float64(cents) / 100
}

func randomDate(rng *rand.Rand) time.Time {
	y, m, d := time.Now().AddDate(0, 0, -(1 + rng.Intn(365))).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
