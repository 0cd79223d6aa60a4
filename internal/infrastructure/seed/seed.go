// Package seed generates the demo data shown on first load: a month of mock
// spending history and a pair of price alerts. Seeding is isolated here so
// the insights core can be tested deterministically with a fixed provider.
package seed

import (
	"math/rand"
	"time"

	"github.com/smartmall/backend/internal/domain"
)

// Provider builds randomized demo data from the catalog
type Provider struct {
	catalog domain.Catalog
	rng     *rand.Rand
}

// NewProvider creates a seed provider. Pass a seeded rand for reproducible
// output in tests.
func NewProvider(catalog domain.Catalog, rng *rand.Rand) *Provider {
	return &Provider{catalog: catalog, rng: rng}
}

// SpendingHistory produces roughly a month of demo purchase records, walking
// backwards from 30 days ago in random 1-3 day steps.
func (p *Provider) SpendingHistory(now time.Time) []domain.SpendingRecord {
	products := p.catalog.All()
	var history []domain.SpendingRecord

	for daysAgo := 30; daysAgo >= 0; daysAgo -= p.rng.Intn(3) + 1 {
		date := now.AddDate(0, 0, -daysAgo)
		numItems := p.rng.Intn(4) + 1

		picked := p.pickProducts(products, numItems)
		items := make([]domain.PurchaseItem, 0, len(picked))
		var total float64
		for _, prod := range picked {
			qty := p.rng.Intn(3) + 1
			items = append(items, domain.PurchaseItem{
				ProductID: prod.ID,
				Name:      prod.Name,
				Quantity:  qty,
				Price:     prod.Price,
			})
			total += prod.Price * float64(qty)
		}

		category := "General"
		if len(picked) > 0 {
			category = picked[0].Category
		}

		history = append(history, domain.SpendingRecord{
			Date:     date.Format("2006-01-02"),
			Amount:   total,
			Category: category,
			Items:    items,
		})
	}

	return history
}

// PriceAlerts produces two demo alerts with a 10-30% markdown
func (p *Provider) PriceAlerts() []domain.PriceAlert {
	products := p.pickProducts(p.catalog.All(), 2)

	alerts := make([]domain.PriceAlert, 0, len(products))
	for _, prod := range products {
		discount := p.rng.Intn(21) + 10
		alerts = append(alerts, domain.PriceAlert{
			ProductID:   prod.ID,
			ProductName: prod.Name,
			OldPrice:    prod.Price,
			NewPrice:    prod.Price * (1 - float64(discount)/100),
			Discount:    discount,
		})
	}
	return alerts
}

// pickProducts returns n distinct products in shuffled order
func (p *Provider) pickProducts(products []domain.Product, n int) []domain.Product {
	shuffled := make([]domain.Product, len(products))
	copy(shuffled, products)
	p.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}
