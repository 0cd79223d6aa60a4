// Package store provides KeyValueStore implementations. The in-memory store
// mirrors browser local storage for tests and demos; the SQLite store gives
// the same contract durable, cross-restart persistence.
package store

// Store keys. Every component owns its own key and rewrites the whole value
// on each mutation.
const (
	KeyBudgetSettings  = "smartmall_budget"
	KeyBudgetSpending  = "smartmall_spending"
	KeyShoppingList    = "smartmall_shopping_list"
	KeySpendingHistory = "smartmall_spending_history"
	KeyDeals           = "smartmall_deals"
	KeyRefillReminders = "smartmall_refill_reminders"
	KeyPriceAlerts     = "smartmall_price_alerts"
	KeyOfflineScans    = "smartmall_offline_scans"
	KeyUsers           = "smartmall_users"
	KeyCurrentUser     = "smartmall_current_user"

	// KeyPurchaseHistoryPrefix is joined with a user id for per-user history.
	KeyPurchaseHistoryPrefix = "smartmall_purchase_history_"
)
