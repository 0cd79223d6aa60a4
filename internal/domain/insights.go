package domain

// PurchaseItem is one line of a finalized purchase
type PurchaseItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// SpendingRecord is an immutable log entry appended on each completed
// purchase. The log is only ever filtered by date range, never compacted.
type SpendingRecord struct {
	Date     string         `json:"date"` // "2006-01-02", no time of day
	Amount   float64        `json:"amount"`
	Category string         `json:"category"`
	Items    []PurchaseItem `json:"items"`
}

// RefillReminder estimates when a purchased product runs out.
// One reminder per product id; the latest purchase wins.
type RefillReminder struct {
	ProductID           string `json:"productId"`
	ProductName         string `json:"productName"`
	LastPurchased       int64  `json:"lastPurchased"`       // unix millis
	EstimatedRunOutDate int64  `json:"estimatedRunOutDate"` // unix millis
	AvgConsumptionDays  int    `json:"avgConsumptionDays"`
}

// Deal is an ephemeral personalized offer generated from a purchase.
// Expired deals are filtered on read and garbage-collected on the next write.
type Deal struct {
	ID        string `json:"id"`
	ProductID string `json:"productId"`
	Discount  int    `json:"discount"` // percent
	Reason    string `json:"reason"`
	ExpiresAt int64  `json:"expiresAt"` // unix millis
}

// PriceAlert is static demo data with no expiry; dismissed explicitly by product id
type PriceAlert struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	OldPrice    float64 `json:"oldPrice"`
	NewPrice    float64 `json:"newPrice"`
	Discount    int     `json:"discount"`
}

// CategoryBreakdown expresses one category's share of the monthly spend
type CategoryBreakdown struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}
