package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// repeatScanWindow is how long after a scan the same product counts as a
// quantity bump rather than a fresh scan.
const repeatScanWindow = 3 * time.Second

// ScanResult is what a simulated tap produces. When the service is offline
// the scan is queued instead and only Queued is set alongside the product.
type ScanResult struct {
	Product        domain.Product `json:"product"`
	Quantity       int            `json:"quantity"`
	QuantityBumped bool           `json:"quantityBumped"`
	OnShoppingList bool           `json:"onShoppingList"`
	BudgetWarnings []string       `json:"budgetWarnings,omitempty"`
	Queued         bool           `json:"queued"`
}

// CheckoutService drives the tap-to-buy flow: simulated NFC scans feed the
// cart, checkout settles the cart into the budget, insights and purchase
// history in one step. Payment is simulated and never fails.
type CheckoutService struct {
	store    domain.KeyValueStore
	catalog  domain.Catalog
	cart     *CartService
	budget   *BudgetService
	insights *InsightsService
	auth     *AuthService
	list     *ShoppingListService
	clock    domain.Clock
	rng      *rand.Rand

	scanDelay       time.Duration
	processingDelay time.Duration

	mu         sync.Mutex
	offline    bool
	lastScanID string
	lastScanAt time.Time
}

// NewCheckoutService wires the checkout flow over the other services
func NewCheckoutService(
	kv domain.KeyValueStore,
	catalog domain.Catalog,
	cart *CartService,
	budget *BudgetService,
	insights *InsightsService,
	auth *AuthService,
	list *ShoppingListService,
	clock domain.Clock,
	rng *rand.Rand,
	scanDelay, processingDelay time.Duration,
) *CheckoutService {
	return &CheckoutService{
		store:           kv,
		catalog:         catalog,
		cart:            cart,
		budget:          budget,
		insights:        insights,
		auth:            auth,
		list:            list,
		clock:           clock,
		rng:             rng,
		scanDelay:       scanDelay,
		processingDelay: processingDelay,
	}
}

// SetOffline toggles offline mode. While offline, scans queue instead of
// reaching the cart.
func (s *CheckoutService) SetOffline(offline bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offline = offline
}

// Offline reports whether scans are currently being queued
func (s *CheckoutService) Offline() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offline
}

// Scan simulates an NFC tap: a short read delay, then a pseudo-random
// catalog product. Online scans land in the cart, check off matching
// shopping list entries and report budget warnings. The same product tapped
// again within the repeat window bumps the quantity instead.
func (s *CheckoutService) Scan(ctx context.Context) (ScanResult, error) {
	if err := s.wait(ctx, s.scanDelay); err != nil {
		return ScanResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.catalog.All()
	product := products[s.rng.Intn(len(products))]
	now := s.clock.Now()

	if s.offline {
		if err := s.queueScan(ctx, product.ID, now); err != nil {
			return ScanResult{}, err
		}
		return ScanResult{Product: product, Queued: true}, nil
	}

	bumped := product.ID == s.lastScanID && now.Sub(s.lastScanAt) <= repeatScanWindow
	s.lastScanID = product.ID
	s.lastScanAt = now

	onList, err := s.list.IsOnList(ctx, product.ID)
	if err != nil {
		return ScanResult{}, err
	}
	if onList {
		if err := s.list.MarkScanned(ctx, product.ID); err != nil {
			return ScanResult{}, err
		}
	}

	line := s.cart.AddItem(product)

	check, err := s.budget.CheckBudget(ctx, product.Price)
	if err != nil {
		return ScanResult{}, err
	}

	return ScanResult{
		Product:        product,
		Quantity:       line.Quantity,
		QuantityBumped: bumped,
		OnShoppingList: onList,
		BudgetWarnings: check.Warnings,
	}, nil
}

// PendingCount returns how many queued scans have not been replayed yet
func (s *CheckoutService) PendingCount(ctx context.Context) (int, error) {
	scans, err := s.loadScans(ctx)
	if err != nil {
		return 0, err
	}
	pending := 0
	for _, scan := range scans {
		if !scan.Synced {
			pending++
		}
	}
	return pending, nil
}

// SyncOfflineScans replays queued scans into the cart in capture order and
// marks them synced. Returns the number replayed.
func (s *CheckoutService) SyncOfflineScans(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scans, err := s.loadScans(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for i := range scans {
		if scans[i].Synced {
			continue
		}
		product, ok := s.catalog.ByID(scans[i].ProductID)
		if !ok {
			// Queued id no longer in the catalog; drop it on ClearSynced
			scans[i].Synced = true
			continue
		}
		s.cart.AddItem(product)
		scans[i].Synced = true
		synced++
	}

	if err := s.store.Set(ctx, store.KeyOfflineScans, scans); err != nil {
		return 0, err
	}
	return synced, nil
}

// ClearSynced drops replayed scans from the queue
func (s *CheckoutService) ClearSynced(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scans, err := s.loadScans(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.OfflineScan, 0, len(scans))
	for _, scan := range scans {
		if !scan.Synced {
			kept = append(kept, scan)
		}
	}
	return s.store.Set(ctx, store.KeyOfflineScans, kept)
}

// Checkout settles the cart with the given payment method. The simulated
// payment never declines; after the processing pause the purchase is fanned
// out to the budget ledger, the spending log and the user's history, and the
// cart is cleared.
func (s *CheckoutService) Checkout(ctx context.Context, methodID string) (domain.Receipt, error) {
	lines := s.cart.Items()
	if len(lines) == 0 {
		return domain.Receipt{}, domain.ErrEmptyCart
	}

	method, ok := s.paymentMethod(methodID)
	if !ok {
		return domain.Receipt{}, fmt.Errorf("unknown payment method %q: %w", methodID, domain.ErrInvalidRequest)
	}

	if err := s.wait(ctx, s.processingDelay); err != nil {
		return domain.Receipt{}, err
	}

	now := s.clock.Now()
	txnID := "TXN" + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))

	// The receipt settles the snapshot taken before the processing pause;
	// lines scanned during the pause stay in the cart for the next checkout.
	var total float64
	items := make([]domain.PurchaseItem, 0, len(lines))
	for _, line := range lines {
		total += line.Price * float64(line.Quantity)
		items = append(items, domain.PurchaseItem{
			ProductID: line.ID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	if err := s.budget.AddSpending(ctx, total); err != nil {
		return domain.Receipt{}, err
	}
	if err := s.insights.RecordPurchase(ctx, items, total); err != nil {
		return domain.Receipt{}, err
	}
	if err := s.auth.AddPurchase(ctx, items, total, txnID); err != nil {
		return domain.Receipt{}, err
	}
	for _, line := range lines {
		if current, ok := s.cart.Line(line.ID); ok && current.Quantity > line.Quantity {
			s.cart.UpdateQuantity(line.ID, current.Quantity-line.Quantity)
		} else {
			s.cart.RemoveItem(line.ID)
		}
	}

	return domain.Receipt{
		TransactionID: txnID,
		Items:         items,
		Total:         total,
		PaymentMethod: method.Name,
		Timestamp:     now.Format(time.RFC3339),
	}, nil
}

// PaymentMethods exposes the catalog's payment options
func (s *CheckoutService) PaymentMethods() []domain.PaymentMethod {
	return s.catalog.PaymentMethods()
}

func (s *CheckoutService) paymentMethod(id string) (domain.PaymentMethod, bool) {
	for _, m := range s.catalog.PaymentMethods() {
		if m.ID == id {
			return m, true
		}
	}
	return domain.PaymentMethod{}, false
}

func (s *CheckoutService) queueScan(ctx context.Context, productID string, now time.Time) error {
	scans, err := s.loadScans(ctx)
	if err != nil {
		return err
	}
	scans = append(scans, domain.OfflineScan{
		ProductID: productID,
		Timestamp: now.UnixMilli(),
	})
	return s.store.Set(ctx, store.KeyOfflineScans, scans)
}

func (s *CheckoutService) loadScans(ctx context.Context) ([]domain.OfflineScan, error) {
	var scans []domain.OfflineScan
	if err := s.store.Get(ctx, store.KeyOfflineScans, &scans); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return scans, nil
}

func (s *CheckoutService) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
