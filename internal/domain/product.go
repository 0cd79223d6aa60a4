package domain

// Product represents an item from the fixed store catalog. Catalog data is
// immutable reference data; user state never mutates it.
type Product struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Price        float64      `json:"price"`
	Category     string       `json:"category"`
	Image        string       `json:"image"`
	NFCID        string       `json:"nfcId"`
	Aisle        string       `json:"aisle,omitempty"`
	Location     string       `json:"location,omitempty"`
	Alternatives []string     `json:"alternatives,omitempty"`
	NearbyPrices []StorePrice `json:"nearbyPrices,omitempty"`
	Nutrition    *Nutrition   `json:"nutrition,omitempty"`
}

// StorePrice is a price comparison entry for the same product at another store
type StorePrice struct {
	Store string  `json:"store"`
	Price float64 `json:"price"`
}

// CartLine is a product in the cart with a quantity of at least 1.
// Lines are keyed by product id and keep first-insertion order.
type CartLine struct {
	Product
	Quantity int `json:"quantity"`
}

// PaymentMethod represents a checkout payment option
type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Type string `json:"type"` // "ewallet", "card" or "bank"
}

// Receipt is the artifact produced by a completed checkout
type Receipt struct {
	TransactionID string         `json:"transactionId"`
	Items         []PurchaseItem `json:"items"`
	Total         float64        `json:"total"`
	PaymentMethod string         `json:"paymentMethod"`
	Timestamp     string         `json:"timestamp"`
}
