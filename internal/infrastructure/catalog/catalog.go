// Package catalog holds the fixed product and payment-method reference data
// for the demo storefront. Prices are in RM.
package catalog

import "github.com/smartmall/backend/internal/domain"

// Catalog serves immutable reference data, indexed by product id
type Catalog struct {
	products []domain.Product
	byID     map[string]domain.Product
	methods  []domain.PaymentMethod
}

// New creates the demo catalog
func New() *Catalog {
	c := &Catalog{
		products: demoProducts(),
		methods:  demoPaymentMethods(),
	}
	c.byID = make(map[string]domain.Product, len(c.products))
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

// All returns every catalog product in display order
func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a product by id
func (c *Catalog) ByID(id string) (domain.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// PaymentMethods returns the checkout payment options
func (c *Catalog) PaymentMethods() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, len(c.methods))
	copy(out, c.methods)
	return out
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{
			ID: "p1", Name: "Fresh Milk 1L", Price: 7.50, Category: "Dairy", Image: "🥛",
			NFCID: "nfc-001", Aisle: "A3", Location: "Chiller, left of entrance",
			Alternatives: []string{"p2", "p8"},
			NearbyPrices: []domain.StorePrice{{Store: "MegaMart", Price: 7.90}, {Store: "GrocerHub", Price: 7.20}},
			Nutrition: &domain.Nutrition{
				Calories: 64, Sugar: 4.8, Protein: 3.3, Fat: 3.6, Fiber: 0,
				IsHalal: true, IsVegan: false, IsGlutenFree: true, Allergens: []string{"milk"},
			},
		},
		{
			ID: "p2", Name: "Oat Milk 1L", Price: 9.90, Category: "Dairy", Image: "🌾",
			NFCID: "nfc-002", Aisle: "A3", Location: "Chiller, left of entrance",
			Alternatives: []string{"p1"},
			Nutrition: &domain.Nutrition{
				Calories: 45, Sugar: 3.0, Protein: 1.0, Fat: 1.5, Fiber: 0.8,
				IsHalal: true, IsVegan: true, IsGlutenFree: false, Allergens: []string{"oats"},
			},
		},
		{
			ID: "p3", Name: "Cavendish Bananas (1kg)", Price: 4.20, Category: "Fruits", Image: "🍌",
			NFCID: "nfc-003", Aisle: "B1", Location: "Produce island",
			Alternatives: []string{"p4"},
			NearbyPrices: []domain.StorePrice{{Store: "MegaMart", Price: 4.50}},
		},
		{
			ID: "p4", Name: "Fuji Apples (4 pack)", Price: 8.90, Category: "Fruits", Image: "🍎",
			NFCID: "nfc-004", Aisle: "B1", Location: "Produce island",
			Alternatives: []string{"p3", "p12"},
		},
		{
			ID: "p5", Name: "Wholemeal Loaf", Price: 4.50, Category: "Bakery", Image: "🍞",
			NFCID: "nfc-005", Aisle: "C2",
			Alternatives: []string{"p6"},
			Nutrition: &domain.Nutrition{
				Calories: 247, Sugar: 4.0, Protein: 9.7, Fat: 3.4, Fiber: 6.0,
				IsHalal: true, IsVegan: true, IsGlutenFree: false, Allergens: []string{"gluten", "wheat"},
			},
		},
		{
			ID: "p6", Name: "Butter Croissant (2 pcs)", Price: 6.80, Category: "Bakery", Image: "🥐",
			NFCID: "nfc-006", Aisle: "C2",
		},
		{
			ID: "p7", Name: "Chicken Breast (500g)", Price: 12.90, Category: "Meat", Image: "🍗",
			NFCID: "nfc-007", Aisle: "D1", Location: "Cold counter",
			NearbyPrices: []domain.StorePrice{{Store: "GrocerHub", Price: 13.40}},
		},
		{
			ID: "p8", Name: "Greek Yogurt 500g", Price: 11.50, Category: "Dairy", Image: "🥣",
			NFCID: "nfc-008", Aisle: "A3",
			Alternatives: []string{"p1"},
		},
		{
			ID: "p9", Name: "Tiger Prawns (300g)", Price: 18.90, Category: "Seafood", Image: "🦐",
			NFCID: "nfc-009", Aisle: "D2", Location: "Ice counter",
		},
		{
			ID: "p10", Name: "Kopi O Bottled Coffee", Price: 3.90, Category: "Beverages", Image: "☕",
			NFCID: "nfc-010", Aisle: "E4",
			Alternatives: []string{"p11"},
		},
		{
			ID: "p11", Name: "Teh Tarik Bottled Tea", Price: 3.50, Category: "Beverages", Image: "🧋",
			NFCID: "nfc-011", Aisle: "E4",
			Alternatives: []string{"p10"},
		},
		{
			ID: "p12", Name: "Baby Spinach (250g)", Price: 5.60, Category: "Vegetables", Image: "🥬",
			NFCID: "nfc-012", Aisle: "B2", Location: "Produce island",
			Alternatives: []string{"p13"},
		},
		{
			ID: "p13", Name: "Cherry Tomatoes (400g)", Price: 6.20, Category: "Vegetables", Image: "🍅",
			NFCID: "nfc-013", Aisle: "B2",
			Alternatives: []string{"p12"},
		},
	}
}

func demoPaymentMethods() []domain.PaymentMethod {
	return []domain.PaymentMethod{
		{ID: "tng", Name: "Touch 'n Go eWallet", Icon: "📱", Type: "ewallet"},
		{ID: "grabpay", Name: "GrabPay", Icon: "🟢", Type: "ewallet"},
		{ID: "boost", Name: "Boost", Icon: "🚀", Type: "ewallet"},
		{ID: "visa", Name: "Visa / Mastercard", Icon: "💳", Type: "card"},
		{ID: "fpx", Name: "Online Banking (FPX)", Icon: "🏦", Type: "bank"},
	}
}
