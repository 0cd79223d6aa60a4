package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// BudgetService tracks daily and weekly spending against configurable limits.
// Counters roll over automatically when the stored period no longer matches
// the current day or week, so spending never accumulates across periods.
//
// Checks are advisory: CheckBudget warns but never blocks a purchase.
type BudgetService struct {
	store domain.KeyValueStore
	clock domain.Clock
	mu    sync.Mutex
}

// NewBudgetService creates a budget service backed by the given store
func NewBudgetService(kv domain.KeyValueStore, clock domain.Clock) *BudgetService {
	return &BudgetService{store: kv, clock: clock}
}

// Settings returns the stored budget settings, or the defaults (100/500/on)
// when none have been saved yet.
func (s *BudgetService) Settings(ctx context.Context) (domain.BudgetSettings, error) {
	var settings domain.BudgetSettings
	err := s.store.Get(ctx, store.KeyBudgetSettings, &settings)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return domain.DefaultBudgetSettings(), nil
	}
	if err != nil {
		return domain.BudgetSettings{}, err
	}
	return settings, nil
}

// UpdateSettings merges the non-nil patch fields into the stored settings.
// Limits are accepted as-is, including non-positive values; derived values
// guard against them instead (see Status).
func (s *BudgetService) UpdateSettings(ctx context.Context, patch domain.BudgetSettingsPatch) (domain.BudgetSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.Settings(ctx)
	if err != nil {
		return domain.BudgetSettings{}, err
	}

	if patch.DailyLimit != nil {
		settings.DailyLimit = *patch.DailyLimit
	}
	if patch.WeeklyLimit != nil {
		settings.WeeklyLimit = *patch.WeeklyLimit
	}
	if patch.Enabled != nil {
		settings.Enabled = *patch.Enabled
	}

	if err := s.store.Set(ctx, store.KeyBudgetSettings, settings); err != nil {
		return domain.BudgetSettings{}, err
	}
	return settings, nil
}

// CheckBudget projects spending amount against the current period totals and
// returns human-readable warnings when the projection crosses 80% or 100% of
// a limit. CanSpend is always true.
func (s *BudgetService) CheckBudget(ctx context.Context, amount float64) (domain.BudgetCheck, error) {
	check := domain.BudgetCheck{CanSpend: true, Warnings: []string{}}

	settings, err := s.Settings(ctx)
	if err != nil {
		return check, err
	}
	if !settings.Enabled {
		return check, nil
	}

	spending, err := s.currentSpending(ctx)
	if err != nil {
		return check, err
	}

	newDailyTotal := spending.Daily.Amount + amount
	newWeeklyTotal := spending.Weekly.Amount + amount

	if newDailyTotal > settings.DailyLimit {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("Daily budget exceeded! (RM %.2f / RM %.2f)", newDailyTotal, settings.DailyLimit))
	} else if newDailyTotal > settings.DailyLimit*0.8 {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("Approaching daily limit: RM %.2f remaining", settings.DailyLimit-newDailyTotal))
	}

	if newWeeklyTotal > settings.WeeklyLimit {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("Weekly budget exceeded! (RM %.2f / RM %.2f)", newWeeklyTotal, settings.WeeklyLimit))
	} else if newWeeklyTotal > settings.WeeklyLimit*0.8 {
		check.Warnings = append(check.Warnings,
			fmt.Sprintf("Approaching weekly limit: RM %.2f remaining", settings.WeeklyLimit-newWeeklyTotal))
	}

	return check, nil
}

// AddSpending adds amount to the daily and weekly counters, rolling each
// counter over first if its stored period has elapsed.
func (s *BudgetService) AddSpending(ctx context.Context, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spending, err := s.currentSpending(ctx)
	if err != nil {
		return err
	}

	spending.Daily.Amount += amount
	spending.Weekly.Amount += amount

	return s.store.Set(ctx, store.KeyBudgetSpending, spending)
}

// Status returns the derived budget view. Non-positive limits read as fully
// used (0 remaining, 100%) so division never produces NaN or Inf.
func (s *BudgetService) Status(ctx context.Context) (domain.BudgetStatus, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return domain.BudgetStatus{}, err
	}
	spending, err := s.currentSpending(ctx)
	if err != nil {
		return domain.BudgetStatus{}, err
	}

	status := domain.BudgetStatus{
		Settings:    settings,
		DailySpent:  spending.Daily.Amount,
		WeeklySpent: spending.Weekly.Amount,
	}
	status.DailyRemaining, status.DailyPercentage = deriveBudget(settings.DailyLimit, spending.Daily.Amount)
	status.WeeklyRemaining, status.WeeklyPercentage = deriveBudget(settings.WeeklyLimit, spending.Weekly.Amount)
	return status, nil
}

// currentSpending loads the stored counters and rolls over any that belong to
// an elapsed period. Rollover is applied in memory on every read; the result
// is persisted on the next write.
func (s *BudgetService) currentSpending(ctx context.Context) (domain.SpendingData, error) {
	now := s.clock.Now()
	today := now.Format(dateLayout)
	weekStart := mondayOf(now).Format(dateLayout)

	var spending domain.SpendingData
	err := s.store.Get(ctx, store.KeyBudgetSpending, &spending)
	if err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return domain.SpendingData{}, err
	}

	if spending.Daily.Date != today {
		spending.Daily = domain.PeriodCounter{Date: today, Amount: 0}
	}
	if spending.Weekly.WeekStart != weekStart {
		spending.Weekly = domain.WeekCounter{WeekStart: weekStart, Amount: 0}
	}
	return spending, nil
}

func deriveBudget(limit, spent float64) (remaining, percentage float64) {
	if limit <= 0 {
		return 0, 100
	}
	remaining = limit - spent
	if remaining < 0 {
		remaining = 0
	}
	percentage = spent / limit * 100
	if percentage > 100 {
		percentage = 100
	}
	return remaining, percentage
}
