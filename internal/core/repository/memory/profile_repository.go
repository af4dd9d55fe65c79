package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ProfileRepository is a map-backed profile store keyed by phone number.
type ProfileRepository struct {
	mu      sync.Mutex
	nextID  int64
	records map[string]domain.Profile
	order   []string
}

// NewProfileRepository creates an empty in-memory profile repository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{records: make(map[string]domain.Profile)}
}

func (r *ProfileRepository) Insert(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[profile.PhoneNo]; ok {
		return nil, fmt.Errorf("insert profile %q: %w", profile.PhoneNo, domain.ErrDuplicateKey)
	}

	r.nextID++
	stored := *profile
	stored.ID = r.nextID
	r.records[profile.PhoneNo] = stored
	r.order = append(r.order, profile.PhoneNo)
	return &stored, nil
}

func (r *ProfileRepository) Get(_ context.Context, phoneNo string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("get profile %q: %w", phoneNo, domain.ErrNotFound)
	}
	return &stored, nil
}

func (r *ProfileRepository) List(_ context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profiles := make([]domain.Profile, 0, len(r.records))
	for _, phoneNo := range r.order {
		profiles = append(profiles, r.records[phoneNo])
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(_ context.Context, phoneNo string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("update profile %q: %w", phoneNo, domain.ErrNotFound)
	}

	stored.FullName = upd.FullName
	stored.DOB = upd.DOB
	stored.Age = upd.Age
	stored.Gender = upd.Gender
	stored.Email = upd.Email
	stored.Address = upd.Address
	stored.PhotoPath = upd.PhotoPath
	r.records[phoneNo] = stored
	return &stored, nil
}

func (r *ProfileRepository) Patch(_ context.Context, phoneNo string, patch domain.ProfilePatch) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[phoneNo]
	if !ok {
		return nil, fmt.Errorf("patch profile %q: %w", phoneNo, domain.ErrNotFound)
	}

	if patch.FullName != nil && *patch.FullName != "" {
		stored.FullName = *patch.FullName
	}
	if patch.DOB != nil && *patch.DOB != "" {
		stored.DOB = *patch.DOB
	}
	if patch.Age != nil && *patch.Age != 0 {
		stored.Age = *patch.Age
	}
	if patch.Gender != nil && *patch.Gender != "" {
		stored.Gender = *patch.Gender
	}
	if patch.Email != nil && *patch.Email != "" {
		stored.Email = *patch.Email
	}
	if patch.Address != nil && *patch.Address != "" {
		stored.Address = *patch.Address
	}
	if patch.PhotoPath != nil && *patch.PhotoPath != "" {
		stored.PhotoPath = *patch.PhotoPath
	}
	r.records[phoneNo] = stored
	return &stored, nil
}

func (r *ProfileRepository) Delete(_ context.Context, phoneNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[phoneNo]; !ok {
		return fmt.Errorf("delete profile %q: %w", phoneNo, domain.ErrNotFound)
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
