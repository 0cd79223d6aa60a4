package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// consumptionDays maps a product category to the simulated days a purchase
// lasts before it needs a refill. Unlisted categories default to 7.
var consumptionDays = map[string]int{
	"Fruits":     5,
	"Dairy":      7,
	"Bakery":     4,
	"Meat":       5,
	"Seafood":    3,
	"Beverages":  7,
	"Vegetables": 4,
}

const defaultConsumptionDays = 7

// maxDealsPerPurchase caps the deals generated by a single purchase; excess
// candidates are silently dropped.
const maxDealsPerPurchase = 3

// reminderWindow is how far ahead of the estimated run-out a refill reminder
// is surfaced.
const reminderWindow = 3 * 24 * time.Hour

const dealLifetime = 7 * 24 * time.Hour

// InsightsService appends purchase records and derives category breakdowns,
// refill reminders and personalized deals from them. The record log is
// append-only; deals expire lazily (filter on read, garbage-collect on the
// next write) and reminders become visible or invisible purely as a function
// of the current time.
type InsightsService struct {
	store   domain.KeyValueStore
	catalog domain.Catalog
	seed    domain.SeedProvider
	clock   domain.Clock
	rng     *rand.Rand
	mu      sync.Mutex
}

// NewInsightsService creates an insights service. The rand source drives deal
// discounts; pass a seeded one for deterministic tests.
func NewInsightsService(kv domain.KeyValueStore, catalog domain.Catalog, seed domain.SeedProvider, clock domain.Clock, rng *rand.Rand) *InsightsService {
	return &InsightsService{store: kv, catalog: catalog, seed: seed, clock: clock, rng: rng}
}

// EnsureSeeded populates demo spending history and price alerts on first
// load. Keys that already hold data are left alone.
func (s *InsightsService) EnsureSeeded(ctx context.Context) error {
	var records []domain.SpendingRecord
	err := s.store.Get(ctx, store.KeySpendingHistory, &records)
	if errors.Is(err, domain.ErrKeyNotFound) {
		if err := s.store.Set(ctx, store.KeySpendingHistory, s.seed.SpendingHistory(s.clock.Now())); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	var alerts []domain.PriceAlert
	err = s.store.Get(ctx, store.KeyPriceAlerts, &alerts)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return s.store.Set(ctx, store.KeyPriceAlerts, s.seed.PriceAlerts())
	}
	return err
}

// RecordPurchase appends a spending record for a completed purchase, upserts
// refill reminders for every purchased product, and generates deals on the
// purchased products' alternatives.
func (s *InsightsService) RecordPurchase(ctx context.Context, items []domain.PurchaseItem, total float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	records, err := s.loadRecords(ctx)
	if err != nil {
		return err
	}
	records = append(records, domain.SpendingRecord{
		Date:     now.Format(dateLayout),
		Amount:   total,
		Category: s.dominantCategory(items),
		Items:    items,
	})
	if err := s.store.Set(ctx, store.KeySpendingHistory, records); err != nil {
		return err
	}

	if err := s.upsertReminders(ctx, items, now); err != nil {
		return err
	}
	return s.generateDeals(ctx, items, now)
}

// dominantCategory attributes the purchase to the category with the highest
// summed line value, ties broken by first-encountered order.
func (s *InsightsService) dominantCategory(items []domain.PurchaseItem) string {
	totals := make(map[string]float64)
	var order []string

	for _, item := range items {
		product, ok := s.catalog.ByID(item.ProductID)
		if !ok {
			continue
		}
		if _, seen := totals[product.Category]; !seen {
			order = append(order, product.Category)
		}
		totals[product.Category] += item.Price * float64(item.Quantity)
	}

	dominant := "General"
	best := -1.0
	for _, category := range order {
		if totals[category] > best {
			best = totals[category]
			dominant = category
		}
	}
	return dominant
}

func (s *InsightsService) upsertReminders(ctx context.Context, items []domain.PurchaseItem, now time.Time) error {
	var reminders []domain.RefillReminder
	if err := s.store.Get(ctx, store.KeyRefillReminders, &reminders); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}

	nowMillis := now.UnixMilli()
	for _, item := range items {
		product, ok := s.catalog.ByID(item.ProductID)
		if !ok {
			continue
		}
		days, ok := consumptionDays[product.Category]
		if !ok {
			days = defaultConsumptionDays
		}
		runOut := now.Add(time.Duration(days) * 24 * time.Hour).UnixMilli()

		updated := false
		for i := range reminders {
			if reminders[i].ProductID == item.ProductID {
				reminders[i].LastPurchased = nowMillis
				reminders[i].EstimatedRunOutDate = runOut
				updated = true
				break
			}
		}
		if !updated {
			reminders = append(reminders, domain.RefillReminder{
				ProductID:           item.ProductID,
				ProductName:         item.Name,
				LastPurchased:       nowMillis,
				EstimatedRunOutDate: runOut,
				AvgConsumptionDays:  days,
			})
		}
	}

	return s.store.Set(ctx, store.KeyRefillReminders, reminders)
}

// generateDeals creates one deal per purchased product's alternative that was
// not itself part of the purchase, capped at maxDealsPerPurchase. The write
// also drops any previously stored deals that have expired.
func (s *InsightsService) generateDeals(ctx context.Context, items []domain.PurchaseItem, now time.Time) error {
	purchased := make(map[string]bool, len(items))
	for _, item := range items {
		purchased[item.ProductID] = true
	}

	var newDeals []domain.Deal
	for _, item := range items {
		product, ok := s.catalog.ByID(item.ProductID)
		if !ok {
			continue
		}
		for _, altID := range product.Alternatives {
			if purchased[altID] {
				continue
			}
			if _, ok := s.catalog.ByID(altID); !ok {
				continue
			}
			// The index keeps ids unique when two purchased products share
			// an alternative, so dismissal removes exactly one deal.
			newDeals = append(newDeals, domain.Deal{
				ID:        fmt.Sprintf("deal-%s-%d-%d", altID, now.UnixMilli(), len(newDeals)),
				ProductID: altID,
				Discount:  s.rng.Intn(16) + 5, // 5-20% off
				Reason:    fmt.Sprintf("Because you bought %s", product.Name),
				ExpiresAt: now.Add(dealLifetime).UnixMilli(),
			})
		}
	}
	if len(newDeals) > maxDealsPerPurchase {
		newDeals = newDeals[:maxDealsPerPurchase]
	}

	var stored []domain.Deal
	if err := s.store.Get(ctx, store.KeyDeals, &stored); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}

	// Lazy expiry: surviving deals are re-filtered on every write
	merged := filterDeals(stored, now)
	merged = append(merged, newDeals...)
	return s.store.Set(ctx, store.KeyDeals, merged)
}

// WeeklySpending returns records dated within the last 7 days
func (s *InsightsService) WeeklySpending(ctx context.Context) ([]domain.SpendingRecord, error) {
	return s.spendingSince(ctx, 7)
}

// MonthlySpending returns records dated within the last 30 days
func (s *InsightsService) MonthlySpending(ctx context.Context) ([]domain.SpendingRecord, error) {
	return s.spendingSince(ctx, 30)
}

// WeeklyTotal sums the record amounts over the weekly window
func (s *InsightsService) WeeklyTotal(ctx context.Context) (float64, error) {
	records, err := s.WeeklySpending(ctx)
	if err != nil {
		return 0, err
	}
	return sumRecords(records), nil
}

// MonthlyTotal sums the record amounts over the monthly window
func (s *InsightsService) MonthlyTotal(ctx context.Context) (float64, error) {
	records, err := s.MonthlySpending(ctx)
	if err != nil {
		return 0, err
	}
	return sumRecords(records), nil
}

// CategoryBreakdown sums line values per category over the monthly window and
// expresses each as a percentage of the monthly total. A zero monthly total
// yields zero percentages, never NaN.
func (s *InsightsService) CategoryBreakdown(ctx context.Context) ([]domain.CategoryBreakdown, error) {
	records, err := s.MonthlySpending(ctx)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	var order []string
	for _, record := range records {
		for _, item := range record.Items {
			product, ok := s.catalog.ByID(item.ProductID)
			if !ok {
				continue
			}
			if _, seen := totals[product.Category]; !seen {
				order = append(order, product.Category)
			}
			totals[product.Category] += item.Price * float64(item.Quantity)
		}
	}

	monthlyTotal := sumRecords(records)
	breakdown := make([]domain.CategoryBreakdown, 0, len(order))
	for _, category := range order {
		entry := domain.CategoryBreakdown{Category: category, Amount: totals[category]}
		if monthlyTotal > 0 {
			entry.Percentage = totals[category] / monthlyTotal * 100
		}
		breakdown = append(breakdown, entry)
	}
	return breakdown, nil
}

// ActiveDeals returns stored deals whose expiry has not passed. Expired deals
// stay in the store until the next write.
func (s *InsightsService) ActiveDeals(ctx context.Context) ([]domain.Deal, error) {
	var stored []domain.Deal
	if err := s.store.Get(ctx, store.KeyDeals, &stored); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return filterDeals(stored, s.clock.Now()), nil
}

// ActiveReminders returns reminders whose estimated run-out falls within the
// next 3 days. Reminders outside the window are suppressed, not deleted.
func (s *InsightsService) ActiveReminders(ctx context.Context) ([]domain.RefillReminder, error) {
	var reminders []domain.RefillReminder
	if err := s.store.Get(ctx, store.KeyRefillReminders, &reminders); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}

	now := s.clock.Now().UnixMilli()
	horizon := s.clock.Now().Add(reminderWindow).UnixMilli()

	active := make([]domain.RefillReminder, 0, len(reminders))
	for _, r := range reminders {
		if r.EstimatedRunOutDate > now && r.EstimatedRunOutDate <= horizon {
			active = append(active, r)
		}
	}
	return active, nil
}

// PriceAlerts returns the current demo price alerts
func (s *InsightsService) PriceAlerts(ctx context.Context) ([]domain.PriceAlert, error) {
	var alerts []domain.PriceAlert
	if err := s.store.Get(ctx, store.KeyPriceAlerts, &alerts); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return alerts, nil
}

// DismissDeal permanently removes a deal by id
func (s *InsightsService) DismissDeal(ctx context.Context, dealID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []domain.Deal
	if err := s.store.Get(ctx, store.KeyDeals, &stored); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}
	kept := make([]domain.Deal, 0, len(stored))
	for _, d := range stored {
		if d.ID != dealID {
			kept = append(kept, d)
		}
	}
	return s.store.Set(ctx, store.KeyDeals, kept)
}

// DismissReminder permanently removes the reminder for a product
func (s *InsightsService) DismissReminder(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var reminders []domain.RefillReminder
	if err := s.store.Get(ctx, store.KeyRefillReminders, &reminders); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}
	kept := make([]domain.RefillReminder, 0, len(reminders))
	for _, r := range reminders {
		if r.ProductID != productID {
			kept = append(kept, r)
		}
	}
	return s.store.Set(ctx, store.KeyRefillReminders, kept)
}

// DismissPriceAlert permanently removes the alert for a product
func (s *InsightsService) DismissPriceAlert(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var alerts []domain.PriceAlert
	if err := s.store.Get(ctx, store.KeyPriceAlerts, &alerts); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}
	kept := make([]domain.PriceAlert, 0, len(alerts))
	for _, a := range alerts {
		if a.ProductID != productID {
			kept = append(kept, a)
		}
	}
	return s.store.Set(ctx, store.KeyPriceAlerts, kept)
}

func (s *InsightsService) loadRecords(ctx context.Context) ([]domain.SpendingRecord, error) {
	var records []domain.SpendingRecord
	if err := s.store.Get(ctx, store.KeySpendingHistory, &records); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return records, nil
}

// spendingSince filters the record log to entries with date >= now - days.
// Record dates carry no time of day, so they parse to midnight.
func (s *InsightsService) spendingSince(ctx context.Context, days int) ([]domain.SpendingRecord, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := s.clock.Now().Add(-time.Duration(days) * 24 * time.Hour)
	filtered := make([]domain.SpendingRecord, 0, len(records))
	for _, record := range records {
		date, err := time.ParseInLocation(dateLayout, record.Date, cutoff.Location())
		if err != nil {
			continue
		}
		if !date.Before(cutoff) {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func filterDeals(deals []domain.Deal, now time.Time) []domain.Deal {
	nowMillis := now.UnixMilli()
	active := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		if d.ExpiresAt > nowMillis {
			active = append(active, d)
		}
	}
	return active
}

func sumRecords(records []domain.SpendingRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Amount
	}
	return total
}
