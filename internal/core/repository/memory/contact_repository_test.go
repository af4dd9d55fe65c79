package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/yogawell/member-service/internal/core/domain"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestContactRepositoryInsertAssignsIDs(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	ctx := context.Background()

	first, err := repo.Insert(ctx, &domain.Contact{Name: "A", Email: "a@x.com", PhoneNo: "123", Message: "hi"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("first ID = %d, want 1", first.ID)
	}

	second, err := repo.Insert(ctx, &domain.Contact{Name: "B", Email: "b@x.com", PhoneNo: "456", Message: "yo"})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("second ID = %d, want 2", second.ID)
	}
}

func TestContactRepositoryDuplicateInsert(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &domain.Contact{Name: "A", Email: "a@x.com", PhoneNo: "123", Message: "hi"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	_, err := repo.Insert(ctx, &domain.Contact{Name: "B", Email: "b@x.com", PhoneNo: "123", Message: "other"})
	if !errors.Is(err, domain.ErrDuplicateKey) {
		t.Fatalf("duplicate Insert() error = %v, want ErrDuplicateKey", err)
	}

	// The original record must be untouched.
	got, err := repo.Get(ctx, "123")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != "A" || got.Email != "a@x.com" || got.Message != "hi" {
		t.Fatalf("original record modified by failed insert: %+v", got)
	}
}

func TestContactRepositoryGetNotFound(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestContactRepositoryListInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	ctx := context.Background()

	for _, phone := range []string{"111", "222", "333"} {
		if _, err := repo.Insert(ctx, &domain.Contact{Name: "n", Email: "n@x.com", PhoneNo: phone, Message: "m"}); err != nil {
			t.Fatalf("Insert(%q) error = %v", phone, err)
		}
	}

	contacts, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(contacts) != 3 {
		t.Fatalf("List() returned %d records, want 3", len(contacts))
	}
	for i, want := range []string{"111", "222", "333"} {
		if contacts[i].PhoneNo != want {
			t.Fatalf("contacts[%d].PhoneNo = %q, want %q", i, contacts[i].PhoneNo, want)
		}
	}
}

func TestContactRepositoryUpdate(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &domain.Contact{Name: "A", Email: "a@x.com", PhoneNo: "123", Message: "hi"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, err := repo.Update(ctx, "123", domain.ContactUpdate{Name: "B", Email: "b@x.com", Message: "bye"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Name != "B" || got.Email != "b@x.com" || got.Message != "bye" {
		t.Fatalf("Update() = %+v", got)
	}
	if got.ID != 1 || got.PhoneNo != "123" {
		t.Fatalf("Update() changed identity fields: %+v", got)
	}

	if _, err := repo.Update(ctx, "missing", domain.ContactUpdate{}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestContactRepositoryPatchSemantics(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	seed := func(t *testing.T) *ContactRepository {
		t.Helper()
		repo := NewContactRepository()
		if _, err := repo.Insert(ctx, &domain.Contact{Name: "A", Email: "a@x.com", PhoneNo: "123", Message: "hi"}); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		return repo
	}

	t.Run("empty patch is a no-op", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.Patch(ctx, "123", domain.ContactPatch{})
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if got.Name != "A" || got.Email != "a@x.com" || got.Message != "hi" {
			t.Fatalf("empty patch changed record: %+v", got)
		}
	})

	t.Run("patching one field changes only that field", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.Patch(ctx, "123", domain.ContactPatch{Message: strPtr("updated")})
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if got.Message != "updated" {
			t.Fatalf("Message = %q, want %q", got.Message, "updated")
		}
		if got.Name != "A" || got.Email != "a@x.com" {
			t.Fatalf("patch touched other fields: %+v", got)
		}
	})

	t.Run("supplied empty string does not overwrite", func(t *testing.T) {
		repo := seed(t)
		got, err := repo.Patch(ctx, "123", domain.ContactPatch{Name: strPtr("")})
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if got.Name != "A" {
			t.Fatalf("Name = %q, want %q (empty value must not overwrite)", got.Name, "A")
		}
	})

	t.Run("patch missing record", func(t *testing.T) {
		repo := seed(t)
		if _, err := repo.Patch(ctx, "missing", domain.ContactPatch{}); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("Patch(missing) error = %v, want ErrNotFound", err)
		}
	})
}

func TestContactRepositoryDelete(t *testing.T) {
	t.Parallel()

	repo := NewContactRepository()
	ctx := context.Background()

	if _, err := repo.Insert(ctx, &domain.Contact{Name: "A", Email: "a@x.com", PhoneNo: "123", Message: "hi"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if err := repo.Delete(ctx, "123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, "123"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, "123"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrNotFound", err)
	}
}
