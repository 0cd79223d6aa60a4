package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// stubClock is a settable domain.Clock shared by the usecase tests
type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time { return c.now }

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func newBudgetFixture(now time.Time) (*BudgetService, *store.MemoryStore, *stubClock) {
	kv := store.NewMemoryStore()
	clock := &stubClock{now: now}
	return NewBudgetService(kv, clock), kv, clock
}

func TestBudgetService_Settings_Defaults(t *testing.T) {
	svc, _, _ := newBudgetFixture(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	settings, err := svc.Settings(context.Background())
	if err != nil {
		t.Fatalf("Settings() error = %v", err)
	}
	want := domain.BudgetSettings{DailyLimit: 100, WeeklyLimit: 500, Enabled: true}
	if settings != want {
		t.Errorf("Settings() = %+v, want defaults %+v", settings, want)
	}
}

func TestBudgetService_UpdateSettings_MergesPartial(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newBudgetFixture(time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC))

	got, err := svc.UpdateSettings(ctx, domain.BudgetSettingsPatch{DailyLimit: floatPtr(50)})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if got.DailyLimit != 50 || got.WeeklyLimit != 500 || !got.Enabled {
		t.Errorf("UpdateSettings() = %+v, want daily 50 with other fields untouched", got)
	}

	got, err = svc.UpdateSettings(ctx, domain.BudgetSettingsPatch{Enabled: boolPtr(false)})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if got.DailyLimit != 50 || got.Enabled {
		t.Errorf("UpdateSettings() = %+v, want daily limit preserved and enabled=false", got)
	}

	// Non-positive limits are stored as-is; Status guards derivations instead
	got, err = svc.UpdateSettings(ctx, domain.BudgetSettingsPatch{DailyLimit: floatPtr(0)})
	if err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}
	if got.DailyLimit != 0 {
		t.Errorf("DailyLimit = %v, want 0 accepted as-is", got.DailyLimit)
	}
}

func TestBudgetService_AddSpending_DailyRollover(t *testing.T) {
	ctx := context.Background()
	svc, kv, clock := newBudgetFixture(time.Date(2026, 8, 25, 15, 0, 0, 0, time.UTC))

	if err := svc.AddSpending(ctx, 50); err != nil {
		t.Fatalf("AddSpending() error = %v", err)
	}

	// Next calendar day: the daily counter must restart, not accumulate
	clock.now = time.Date(2026, 8, 26, 9, 0, 0, 0, time.UTC)
	if err := svc.AddSpending(ctx, 20); err != nil {
		t.Fatalf("AddSpending() error = %v", err)
	}

	var spending domain.SpendingData
	if err := kv.Get(ctx, store.KeyBudgetSpending, &spending); err != nil {
		t.Fatalf("Get(spending) error = %v", err)
	}
	if spending.Daily.Amount != 20 {
		t.Errorf("daily amount = %v, want 20 (not 70)", spending.Daily.Amount)
	}
	if spending.Daily.Date != "2026-08-26" {
		t.Errorf("daily date = %q, want 2026-08-26", spending.Daily.Date)
	}
	// Same week (Tue -> Wed), so the weekly counter accumulates
	if spending.Weekly.Amount != 70 {
		t.Errorf("weekly amount = %v, want 70", spending.Weekly.Amount)
	}
}

func TestBudgetService_AddSpending_WeeklyRollover(t *testing.T) {
	ctx := context.Background()
	// Sunday belongs to the prior week (week starts Monday)
	svc, kv, clock := newBudgetFixture(time.Date(2026, 8, 23, 18, 0, 0, 0, time.UTC)) // Sunday

	if err := svc.AddSpending(ctx, 80); err != nil {
		t.Fatalf("AddSpending() error = %v", err)
	}

	var spending domain.SpendingData
	if err := kv.Get(ctx, store.KeyBudgetSpending, &spending); err != nil {
		t.Fatalf("Get(spending) error = %v", err)
	}
	if spending.Weekly.WeekStart != "2026-08-17" {
		t.Errorf("week start = %q, want 2026-08-17 (Monday of the prior week)", spending.Weekly.WeekStart)
	}

	// Monday starts a fresh week
	clock.now = time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	if err := svc.AddSpending(ctx, 30); err != nil {
		t.Fatalf("AddSpending() error = %v", err)
	}
	if err := kv.Get(ctx, store.KeyBudgetSpending, &spending); err != nil {
		t.Fatalf("Get(spending) error = %v", err)
	}
	if spending.Weekly.Amount != 30 {
		t.Errorf("weekly amount = %v, want 30 after Monday rollover", spending.Weekly.Amount)
	}
	if spending.Weekly.WeekStart != "2026-08-24" {
		t.Errorf("week start = %q, want 2026-08-24", spending.Weekly.WeekStart)
	}
}

func TestBudgetService_CheckBudget_Warnings(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) *BudgetService {
		t.Helper()
		svc, kv, _ := newBudgetFixture(now)
		// daily 85 / weekly 300 against limits 100 / 500
		spending := domain.SpendingData{
			Daily:  domain.PeriodCounter{Date: "2026-08-26", Amount: 85},
			Weekly: domain.WeekCounter{WeekStart: "2026-08-24", Amount: 300},
		}
		if err := kv.Set(ctx, store.KeyBudgetSpending, spending); err != nil {
			t.Fatalf("Set(spending) error = %v", err)
		}
		return svc
	}

	t.Run("approaching daily limit", func(t *testing.T) {
		svc := setup(t)
		check, err := svc.CheckBudget(ctx, 10) // projected daily 95 > 80
		if err != nil {
			t.Fatalf("CheckBudget() error = %v", err)
		}
		if !check.CanSpend {
			t.Error("CanSpend = false, want always true")
		}
		if len(check.Warnings) != 1 || !strings.Contains(check.Warnings[0], "Approaching daily limit") {
			t.Errorf("warnings = %v, want a single approaching-daily warning", check.Warnings)
		}
	})

	t.Run("daily limit exceeded", func(t *testing.T) {
		svc := setup(t)
		check, err := svc.CheckBudget(ctx, 20) // projected daily 105 > 100
		if err != nil {
			t.Fatalf("CheckBudget() error = %v", err)
		}
		if !check.CanSpend {
			t.Error("CanSpend = false, want always true")
		}
		if len(check.Warnings) != 1 || !strings.Contains(check.Warnings[0], "Daily budget exceeded") {
			t.Errorf("warnings = %v, want a single exceeded-daily warning", check.Warnings)
		}
	})

	t.Run("weekly warning triggers independently", func(t *testing.T) {
		svc := setup(t)
		check, err := svc.CheckBudget(ctx, 110) // daily 195 exceeded, weekly 410 > 400 (80%)
		if err != nil {
			t.Fatalf("CheckBudget() error = %v", err)
		}
		if len(check.Warnings) != 2 {
			t.Fatalf("warnings = %v, want daily + weekly", check.Warnings)
		}
		if !strings.Contains(check.Warnings[1], "Approaching weekly limit") {
			t.Errorf("second warning = %q, want approaching-weekly", check.Warnings[1])
		}
	})

	t.Run("disabled budget produces no warnings", func(t *testing.T) {
		svc := setup(t)
		if _, err := svc.UpdateSettings(ctx, domain.BudgetSettingsPatch{Enabled: boolPtr(false)}); err != nil {
			t.Fatalf("UpdateSettings() error = %v", err)
		}
		check, err := svc.CheckBudget(ctx, 1000)
		if err != nil {
			t.Fatalf("CheckBudget() error = %v", err)
		}
		if len(check.Warnings) != 0 {
			t.Errorf("warnings = %v, want none when disabled", check.Warnings)
		}
	})
}

func TestBudgetService_Status(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)

	t.Run("derived values", func(t *testing.T) {
		svc, _, _ := newBudgetFixture(now)
		if err := svc.AddSpending(ctx, 25); err != nil {
			t.Fatalf("AddSpending() error = %v", err)
		}

		status, err := svc.Status(ctx)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if status.DailySpent != 25 || status.DailyRemaining != 75 || status.DailyPercentage != 25 {
			t.Errorf("daily status = %+v, want spent 25 remaining 75 pct 25", status)
		}
		if status.WeeklySpent != 25 || status.WeeklyRemaining != 475 || status.WeeklyPercentage != 5 {
			t.Errorf("weekly status = %+v, want spent 25 remaining 475 pct 5", status)
		}
	})

	t.Run("overspend clamps to zero remaining and 100 percent", func(t *testing.T) {
		svc, _, _ := newBudgetFixture(now)
		if err := svc.AddSpending(ctx, 150); err != nil {
			t.Fatalf("AddSpending() error = %v", err)
		}

		status, err := svc.Status(ctx)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if status.DailyRemaining != 0 || status.DailyPercentage != 100 {
			t.Errorf("daily status = %+v, want remaining 0 pct 100", status)
		}
	})

	t.Run("zero limit never yields NaN", func(t *testing.T) {
		svc, _, _ := newBudgetFixture(now)
		if _, err := svc.UpdateSettings(ctx, domain.BudgetSettingsPatch{DailyLimit: floatPtr(0)}); err != nil {
			t.Fatalf("UpdateSettings() error = %v", err)
		}

		status, err := svc.Status(ctx)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if status.DailyRemaining != 0 || status.DailyPercentage != 100 {
			t.Errorf("daily status = %+v, want remaining 0 pct 100 for zero limit", status)
		}
	})

	t.Run("stale periods read as zero without a write", func(t *testing.T) {
		svc, _, clock := newBudgetFixture(now)
		if err := svc.AddSpending(ctx, 90); err != nil {
			t.Fatalf("AddSpending() error = %v", err)
		}

		clock.now = now.AddDate(0, 0, 14)
		status, err := svc.Status(ctx)
		if err != nil {
			t.Fatalf("Status() error = %v", err)
		}
		if status.DailySpent != 0 || status.WeeklySpent != 0 {
			t.Errorf("status = %+v, want both counters read as 0 two weeks later", status)
		}
	})
}
