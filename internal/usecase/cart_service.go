package usecase

import (
	"sync"

	"github.com/smartmall/backend/internal/domain"
)

// CartService maintains quantity-merged cart lines in first-insertion order.
// Cart state is deliberately ephemeral: it is the one piece of state not
// flushed to the persisted store, so a restart loses the cart.
type CartService struct {
	mu    sync.Mutex
	lines []domain.CartLine
}

// NewCartService creates an empty cart
func NewCartService() *CartService {
	return &CartService{}
}

// AddItem increments the quantity of an existing line for this product, or
// appends a new line with quantity 1. Line order never changes on increment.
func (s *CartService) AddItem(product domain.Product) domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ID == product.ID {
			s.lines[i].Quantity++
			return s.lines[i]
		}
	}
	line := domain.CartLine{Product: product, Quantity: 1}
	s.lines = append(s.lines, line)
	return line
}

// RemoveItem deletes the line for productID entirely, regardless of quantity
func (s *CartService) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or less removes the line.
func (s *CartService) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return
	}
	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// Items returns a copy of the cart lines in insertion order
func (s *CartService) Items() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Total returns the sum of price x quantity over all lines
func (s *CartService) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount returns the sum of quantities over all lines
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Line returns the line for productID, if present
func (s *CartService) Line(productID string) (domain.CartLine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.ID == productID {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

func (s *CartService) removeLocked(productID string) {
	for i := range s.lines {
		if s.lines[i].ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}
