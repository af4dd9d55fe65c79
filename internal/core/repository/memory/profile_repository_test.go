package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/yogawell/member-service/internal/core/domain"
)

func seedProfile(t *testing.T) (*ProfileRepository, *domain.Profile) {
	t.Helper()
	repo := NewProfileRepository()
	profile, err := repo.Insert(context.Background(), &domain.Profile{
		PhoneNo:   "123",
		FullName:  "Asha Rao",
		DOB:       "15-06-1990",
		Age:       35,
		Gender:    domain.GenderFemale,
		Email:     "asha@x.com",
		Address:   "12 Lake Rd",
		PhotoPath: "profile_photos/123_photo.jpg",
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return repo, profile
}

func TestProfileRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, inserted := seedProfile(t)
	if inserted.ID != 1 {
		t.Fatalf("ID = %d, want 1", inserted.ID)
	}

	got, err := repo.Get(context.Background(), "123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if *got != *inserted {
		t.Fatalf("Get() = %+v, want %+v", got, inserted)
	}
}

func TestProfileRepositoryDuplicateInsert(t *testing.T) {
	t.Parallel()

	repo, _ := seedProfile(t)
	_, err := repo.Insert(context.Background(), &domain.Profile{PhoneNo: "123"})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("duplicate Insert() error = %v, want ErrDuplicateKey", err)
	}
}

func TestProfileRepositoryPatchFalsyValues(t *testing.T) {
	t.Parallel()

	repo, _ := seedProfile(t)
	ctx := context.Background()

	// Zero age and empty strings are supplied but must not overwrite.
	got, err := repo.Patch(ctx, "123", domain.ProfilePatch{
		Age:      intPtr(0),
		FullName: strPtr(""),
		Address:  strPtr("99 Hill St"),
	})
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if got.Age != 35 {
		t.Fatalf("Age = %d, want 35 (zero value must not overwrite)", got.Age)
	}
	if got.FullName != "Asha Rao" {
		t.Fatalf("FullName = %q, want unchanged", got.FullName)
	}
	if got.Address != "99 Hill St" {
		t.Fatalf("Address = %q, want %q", got.Address, "99 Hill St")
	}
}

func TestProfileRepositoryUpdateReplacesAllFields(t *testing.T) {
	t.Parallel()

	repo, _ := seedProfile(t)
	got, err := repo.Update(context.Background(), "123", domain.ProfileUpdate{
		FullName:  "Asha R",
		DOB:       "16-06-1990",
		Age:       36,
		Gender:    domain.GenderOther,
		Email:     "asha2@x.com",
		Address:   "new",
		PhotoPath: "profile_photos/123_new.jpg",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.FullName != "Asha R" || got.DOB != "16-06-1990" || got.Age != 36 ||
		got.Gender != domain.GenderOther || got.Email != "asha2@x.com" ||
		got.Address != "new" || got.PhotoPath != "profile_photos/123_new.jpg" {
		t.Fatalf("Update() = %+v", got)
	}
}

func TestProfileRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo, _ := seedProfile(t)
	ctx := context.Background()

	if err := repo.Delete(ctx, "123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "123"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestAccountRepositoryUniqueness(t *testing.T) {
	t.Parallel()

	repo := NewAccountRepository()
	ctx := context.Background()

	base := domain.Account{
		Username:       "asha",
		Email:          "asha@x.com",
		PhoneNumber:    "123",
		HashedPassword: "hash",
		UserType:       domain.UserTypeUser,
	}
	if _, err := repo.Insert(ctx, &base); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	tests := []struct {
		name    string
		account domain.Account
	}{
		{name: "same username", account: domain.Account{Username: "asha", Email: "other@x.com", PhoneNumber: "999"}},
		{name: "same email", account: domain.Account{Username: "other", Email: "asha@x.com", PhoneNumber: "999"}},
		{name: "same phone", account: domain.Account{Username: "other", Email: "other@x.com", PhoneNumber: "123"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := repo.Insert(ctx, &tc.account); !errors.Is(err, domain.ErrDuplicateKey) {
				t.Fatalf("Insert() error = %v, want ErrDuplicateKey", err)
			}
		})
	}

	got, err := repo.GetByUsername(ctx, "asha")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.ID != 1 || got.UserType != domain.UserTypeUser {
		t.Fatalf("GetByUsername() = %+v", got)
	}
}
