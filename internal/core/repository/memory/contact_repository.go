// Package memory provides transient, process-local implementations of
// the repository interfaces. Records are lost on restart; ids are
// assigned from a per-repository counter starting at 1.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ContactRepository is a map-backed contact store keyed by phone number.
type ContactRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]domain.Contact
	order   []string
}

// NewContactRepository creates an empty in-memory contact repository.
func NewContactRepository() *ContactRepository {
	return &ContactRepository{records: make(map[string]domain.Contact)}
}

func (r *ContactRepository) Insert(_ context.Context, contact *domain.Contact) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[contact.PhoneNo]; ok {
		return nil, fmt.Errorf("insert contact %q: %w", contact.PhoneNo, domain.ErrDuplicateKey)
	}

	r.nextID++
	stored := *contact
	stored.ID = r.nextID
	r.records[contact.PhoneNo] = stored
	r.order = append(r.order, contact.PhoneNo)
	return &stored, nil
}

func (r *ContactRepository) Get(_ context.Context, phoneNo string) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("get contact %q: %w", phoneNo, domain.ErrNotFound)
	}
	return &stored, nil
}

func (r *ContactRepository) List(_ context.Context) ([]domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contacts := make([]domain.Contact, 0, len(r.records))
	for _, phoneNo := range r.order {
		contacts = append(contacts, r.records[phoneNo])
	}
	return contacts, nil
}

func (r *ContactRepository) Update(_ context.Context, phoneNo string, upd domain.ContactUpdate) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("update contact %q: %w", phoneNo, domain.ErrNotFound)
	}

	stored.Name = upd.Name
	stored.Email = upd.Email
	stored.Message = upd.Message
	r.records[phoneNo] = stored
	return &stored, nil
}

func (r *ContactRepository) Patch(_ context.Context, phoneNo string, patch domain.ContactPatch) (*domain.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("patch contact %q: %w", phoneNo, domain.ErrNotFound)
	}

	if patch.Name != nil && *patch.Name != "" {
		stored.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != "" {
		stored.Email = *patch.Email
	}
	if patch.Message != nil && *patch.Message != "" {
		stored.Message = *patch.Message
	}
	r.records[phoneNo] = stored
	return &stored, nil
}

func (r *ContactRepository) Delete(_ context.Context, phoneNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[phoneNo]; !ok {
		return fmt.Errorf("delete contact %q: %w", phoneNo, domain.ErrNotFound)
	}
	delete(r.records, phoneNo)
	for i, key := range r.order {
		if key == phoneNo {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
