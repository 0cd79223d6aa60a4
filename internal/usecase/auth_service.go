package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartmall/backend/internal/domain"
	"github.com/smartmall/backend/internal/infrastructure/store"
)

// AuthService is the local demo account system. Credentials live in the
// key-value store in plaintext; this is deliberately not a real credential
// system. Registration conflicts and login failures are result values with a
// success flag, never errors.
type AuthService struct {
	store domain.KeyValueStore
	clock domain.Clock
	mu    sync.Mutex
}

// NewAuthService creates an auth service backed by the given store
func NewAuthService(kv domain.KeyValueStore, clock domain.Clock) *AuthService {
	return &AuthService{store: kv, clock: clock}
}

// Register creates an account and logs it in. An already-registered email
// yields a failed result.
func (s *AuthService) Register(ctx context.Context, email, password, name string) (domain.AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.AuthResult{}, err
	}
	if _, taken := users[email]; taken {
		return domain.AuthResult{Success: false, Error: "Email already registered"}, nil
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: s.clock.Now().Format(time.RFC3339),
	}
	users[email] = domain.StoredUser{User: user, Password: password}

	if err := s.store.Set(ctx, store.KeyUsers, users); err != nil {
		return domain.AuthResult{}, err
	}
	if err := s.store.Set(ctx, store.KeyCurrentUser, user); err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{Success: true}, nil
}

// Login authenticates against the stored users and sets the current session
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.AuthResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return domain.AuthResult{}, err
	}

	stored, ok := users[email]
	if !ok {
		return domain.AuthResult{Success: false, Error: "User not found"}, nil
	}
	if stored.Password != password {
		return domain.AuthResult{Success: false, Error: "Invalid password"}, nil
	}

	if err := s.store.Set(ctx, store.KeyCurrentUser, stored.User); err != nil {
		return domain.AuthResult{}, err
	}
	return domain.AuthResult{Success: true}, nil
}

// Logout clears the current session
func (s *AuthService) Logout(ctx context.Context) error {
	return s.store.Delete(ctx, store.KeyCurrentUser)
}

// CurrentUser returns the logged-in user, or nil when logged out
func (s *AuthService) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	err := s.store.Get(ctx, store.KeyCurrentUser, &user)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// AddPurchase prepends a purchase to the current user's history (newest
// first). A logged-out session records nothing.
func (s *AuthService) AddPurchase(ctx context.Context, items []domain.PurchaseItem, total float64, qrCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return err
	}

	key := store.KeyPurchaseHistoryPrefix + user.ID
	var history []domain.PurchaseHistory
	if err := s.store.Get(ctx, key, &history); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return err
	}

	purchase := domain.PurchaseHistory{
		ID:     uuid.NewString(),
		Date:   s.clock.Now().Format(time.RFC3339),
		Items:  items,
		Total:  total,
		QRCode: qrCode,
	}
	history = append([]domain.PurchaseHistory{purchase}, history...)
	return s.store.Set(ctx, key, history)
}

// PurchaseHistory returns the current user's purchases, newest first;
// empty when logged out.
func (s *AuthService) PurchaseHistory(ctx context.Context) ([]domain.PurchaseHistory, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil || user == nil {
		return nil, err
	}

	var history []domain.PurchaseHistory
	err = s.store.Get(ctx, store.KeyPurchaseHistoryPrefix+user.ID, &history)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (s *AuthService) loadUsers(ctx context.Context) (map[string]domain.StoredUser, error) {
	users := make(map[string]domain.StoredUser)
	if err := s.store.Get(ctx, store.KeyUsers, &users); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return nil, err
	}
	return users, nil
}
