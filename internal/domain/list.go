package domain

// ShoppingListItem is a persisted list entry. ProductID is set when the entry
// references a catalog product; free-text entries leave it empty.
type ShoppingListItem struct {
	ID        string `json:"id"`
	ProductID string `json:"productId,omitempty"`
	Name      string `json:"name"`
	Checked   bool   `json:"checked"`
}

// OfflineScan is a scan captured while offline, queued for replay
type OfflineScan struct {
	ProductID string `json:"productId"`
	Timestamp int64  `json:"timestamp"` // unix millis
	Synced    bool   `json:"synced"`
}
