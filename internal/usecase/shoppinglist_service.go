package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// maxSuggestions bounds the catalog matches returned for a free-text entry
const maxSuggestions = 5

// ShoppingListService maintains the persisted shopping list. Scanned products
// check matching entries off automatically.
type ShoppingListService struct {
	store   domain.KeyValueStore
	catalog domain.Catalog
	mu      sync.Mutex
}

// NewShoppingListService creates a shopping list service
func NewShoppingListService(kv domain.KeyValueStore, catalog domain.Catalog) *ShoppingListService {
	return &ShoppingListService{store: kv, catalog: catalog}
}

// Items returns the list in insertion order
func (s *ShoppingListService) Items(ctx context.Context) ([]domain.ShoppingListItem, error) {
	return s.load(ctx)
}

// Add appends an unchecked entry. productID is optional; free-text entries
// leave it empty.
func (s *ShoppingListService) Add(ctx context.Context, name, productID string) (domain.ShoppingListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return domain.ShoppingListItem{}, err
	}

	item := domain.ShoppingListItem{
		ID:        uuid.NewString(),
		ProductID: productID,
		Name:      name,
		Checked:   false,
	}
	items = append(items, item)
	if err := s.store.Set(ctx, store.KeyShoppingList, items); err != nil {
		return domain.ShoppingListItem{}, err
	}
	return item, nil
}

// Remove deletes the entry with the given id
func (s *ShoppingListService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.ShoppingListItem, 0, len(items))
	for _, item := range items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	return s.store.Set(ctx, store.KeyShoppingList, kept)
}

// Toggle flips the checked state of the entry with the given id
func (s *ShoppingListService) Toggle(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Checked = !items[i].Checked
		}
	}
	return s.store.Set(ctx, store.KeyShoppingList, items)
}

// MarkScanned checks off every entry referencing the scanned product
func (s *ShoppingListService) MarkScanned(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Checked = true
		}
	}
	return s.store.Set(ctx, store.KeyShoppingList, items)
}

// IsOnList reports whether an unchecked entry references the product
func (s *ShoppingListService) IsOnList(ctx context.Context, productID string) (bool, error) {
	items, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for _, item := range items {
		if item.ProductID == productID && !item.Checked {
			return true, nil
		}
	}
	return false, nil
}

// ClearChecked removes every checked entry
func (s *ShoppingListService) ClearChecked(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := make([]domain.ShoppingListItem, 0, len(items))
	for _, item := range items {
		if !item.Checked {
			kept = append(kept, item)
		}
	}
	return s.store.Set(ctx, store.KeyShoppingList, kept)
}

// ClearAll empties the list
func (s *ShoppingListService) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Set(ctx, store.KeyShoppingList, []domain.ShoppingListItem{})
}

// Suggest returns catalog products whose name contains the typed text,
// case-insensitive, for linking free-text entries to real products.
func (s *ShoppingListService) Suggest(name string) []domain.Product {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return nil
	}

	var matches []domain.Product
	for _, p := range s.catalog.All() {
		if strings.Contains(strings.ToLower(p.Name), query) {
			matches = append(matches, p)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}

func (s *ShoppingListService) load(ctx context.Context) ([]domain.ShoppingListItem, error) {
	var items []domain.ShoppingListItem
	if err := s.store.Get(ctx, store.KeyShoppingList, &items); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return items, nil
}
