package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yogawell/member-service/internal/core/domain"
)

// AccountRepository is a map-backed account store keyed by username.
// Email and phone number uniqueness is enforced with a linear scan,
// which is fine for a transient dev backend.
type AccountRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]domain.Account
}

// NewAccountRepository creates an empty in-memory account repository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{records: make(map[string]domain.Account)}
}

func (r *AccountRepository) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[account.Username]; ok {
		return nil, fmt.Errorf("insert account %q: %w", account.Username, domain.ErrDuplicateKey)
	}
	for _, existing := range r.records {
		if existing.Email == account.Email || existing.PhoneNumber == account.PhoneNumber {
			return nil, fmt.Errorf("insert account %q: %w", account.Username, domain.ErrDuplicateKey)
		}
	}

	r.nextID++
	stored := *account
	stored.ID = r.nextID
	r.records[account.Username] = stored
	return &stored, nil
}

func (r *AccountRepository) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[username]
	if !ok {
		return nil, fmt.Errorf("get account %q: %w", username, domain.ErrNotFound)
	}
	return &stored, nil
}

func (r *AccountRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[username]; !ok {
		return fmt.Errorf("delete account %q: %w", username, domain.ErrNotFound)
	}
	delete(r.records, username)
	return nil
}
