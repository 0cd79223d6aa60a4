package domain

// BudgetSettings holds the user's spending limits.
// Created with defaults (100/500/enabled) when absent from the store.
type BudgetSettings struct {
	DailyLimit  float64 `json:"dailyLimit"`
	WeeklyLimit float64 `json:"weeklyLimit"`
	Enabled     bool    `json:"enabled"`
}

// DefaultBudgetSettings returns the settings used when none are stored yet
func DefaultBudgetSettings() BudgetSettings {
	return BudgetSettings{DailyLimit: 100, WeeklyLimit: 500, Enabled: true}
}

// BudgetSettingsPatch is a partial settings update; nil fields are left unchanged
type BudgetSettingsPatch struct {
	DailyLimit  *float64 `json:"dailyLimit,omitempty"`
	WeeklyLimit *float64 `json:"weeklyLimit,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
}

// PeriodCounter tracks spending for one calendar day.
// If Date no longer matches today the amount is stale and reads as zero.
type PeriodCounter struct {
	Date   string  `json:"date"` // "2006-01-02"
	Amount float64 `json:"amount"`
}

// WeekCounter tracks spending for one week. Weeks start on Monday;
// Sunday counts as day 7 of the prior week.
type WeekCounter struct {
	WeekStart string  `json:"weekStart"` // "2006-01-02" of the Monday
	Amount    float64 `json:"amount"`
}

// SpendingData is the persisted pair of period counters
type SpendingData struct {
	Daily  PeriodCounter `json:"daily"`
	Weekly WeekCounter   `json:"weekly"`
}

// BudgetCheck is the advisory result of projecting a candidate amount against
// the budget. CanSpend is always true; warnings never block the purchase.
type BudgetCheck struct {
	CanSpend bool     `json:"canSpend"`
	Warnings []string `json:"warnings"`
}

// BudgetStatus is the derived view of the current budget state
type BudgetStatus struct {
	Settings         BudgetSettings `json:"settings"`
	DailySpent       float64        `json:"dailySpent"`
	WeeklySpent      float64        `json:"weeklySpent"`
	DailyRemaining   float64        `json:"dailyRemaining"`
	WeeklyRemaining  float64        `json:"weeklyRemaining"`
	DailyPercentage  float64        `json:"dailyPercentage"`
	WeeklyPercentage float64        `json:"weeklyPercentage"`
}
