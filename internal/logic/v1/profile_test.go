package v1

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yogawell/member-service/internal/core/domain"
	"github.com/yogawell/member-service/internal/core/repository/memory"
	"github.com/yogawell/member-service/internal/storage/photo"
)

const testMaxPhotoSize = 5 * 1024 * 1024

func newProfileService(t *testing.T) (*ProfileService, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := photo.NewLocalStore(dir)
	if err != nil {
		t.Fatalf("NewLocalStore() error = %v", err)
	}
	return NewProfileService(memory.NewProfileRepository(), store, testMaxPhotoSize), dir
}

func validCreateRequest() domain.CreateProfileRequest {
	return domain.CreateProfileRequest{
		ContactNumber: "123",
		FullName:      "Asha Rao",
		DOBDay:        15,
		DOBMonth:      6,
		DOBYear:       1990,
		Age:           35,
		Gender:        "female",
		Email:         "asha@x.com",
		Address:       "12 Lake Rd",
	}
}

func photoUpload(name string, size int) *domain.PhotoUpload {
	return &domain.PhotoUpload{Filename: name, Data: make([]byte, size)}
}

func TestProfileServiceCreateWritesPhoto(t *testing.T) {
	t.Parallel()

	svc, dir := newProfileService(t)
	ctx := context.Background()

	profile, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if profile.ID != 1 {
		t.Fatalf("ID = %d, want 1", profile.ID)
	}
	if profile.Gender != domain.GenderFemale {
		t.Fatalf("Gender = %q, want %q", profile.Gender, domain.GenderFemale)
	}
	if profile.DOB != "15-06-1990" {
		t.Fatalf("DOB = %q, want %q", profile.DOB, "15-06-1990")
	}

	wantPath := filepath.Join(dir, "123_face.jpg")
	if profile.PhotoPath != wantPath {
		t.Fatalf("PhotoPath = %q, want %q", profile.PhotoPath, wantPath)
	}
	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("photo file not written: %v", err)
	}
}

func TestProfileServiceCreateValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("invalid gender", func(t *testing.T) {
		svc, _ := newProfileService(t)
		req := validCreateRequest()
		req.Gender = "banana"
		if _, err := svc.Create(ctx, req, photoUpload("face.jpg", 64)); !errors.Is(err, domain.ErrInvalidGender) {
			t.Fatalf("Create() error = %v, want ErrInvalidGender", err)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		svc, _ := newProfileService(t)
		req := validCreateRequest()
		req.DOBDay, req.DOBMonth = 31, 2
		if _, err := svc.Create(ctx, req, photoUpload("face.jpg", 64)); !errors.Is(err, domain.ErrInvalidDate) {
			t.Fatalf("Create() error = %v, want ErrInvalidDate", err)
		}
	})

	t.Run("photo at the limit is accepted", func(t *testing.T) {
		svc, _ := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", testMaxPhotoSize)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	})

	t.Run("photo over the limit is rejected", func(t *testing.T) {
		svc, dir := newProfileService(t)
		_, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", testMaxPhotoSize+1))
		if !errors.Is(err, domain.ErrPhotoTooLarge) {
			t.Fatalf("Create() error = %v, want ErrPhotoTooLarge", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); !os.IsNotExist(err) {
			t.Fatalf("rejected upload must not leave a file behind")
		}
	})

	t.Run("duplicate phone number", func(t *testing.T) {
		svc, _ := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("other.jpg", 64)); !errors.Is(err, domain.ErrDuplicateKey) {
			t.Fatalf("second Create() error = %v, want ErrDuplicateKey", err)
		}
	})
}

func TestProfileServiceUpdateReplacesPhoto(t *testing.T) {
	t.Parallel()

	svc, dir := newProfileService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("old.jpg", 64)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := svc.Update(ctx, "123", domain.UpdateProfileRequest{
		FullName: "Asha R",
		DOBDay:   16, DOBMonth: 6, DOBYear: 1990,
		Age:    36,
		Gender: "Female",
		Email:  "asha@x.com",
	}, photoUpload("new.jpg", 64))
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	newPath := filepath.Join(dir, "123_new.jpg")
	if updated.PhotoPath != newPath {
		t.Fatalf("PhotoPath = %q, want %q", updated.PhotoPath, newPath)
	}
	if _, err := os.Stat(newPath); err != nil {
		t.Fatalf("new photo missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "123_old.jpg")); !os.IsNotExist(err) {
		t.Fatalf("old photo was not removed")
	}
}

func TestProfileServicePatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("without photo keeps the existing file", func(t *testing.T) {
		svc, dir := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		address := "99 Hill St"
		patched, err := svc.Patch(ctx, "123", domain.PatchProfileRequest{Address: &address}, nil)
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if patched.Address != "99 Hill St" {
			t.Fatalf("Address = %q", patched.Address)
		}
		if patched.FullName != "Asha Rao" {
			t.Fatalf("patch touched FullName: %q", patched.FullName)
		}
		if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); err != nil {
			t.Fatalf("existing photo missing after patch: %v", err)
		}
	})

	t.Run("with photo replaces the file", func(t *testing.T) {
		svc, dir := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		patched, err := svc.Patch(ctx, "123", domain.PatchProfileRequest{}, photoUpload("fresh.jpg", 64))
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if patched.PhotoPath != filepath.Join(dir, "123_fresh.jpg") {
			t.Fatalf("PhotoPath = %q", patched.PhotoPath)
		}
		if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); !os.IsNotExist(err) {
			t.Fatalf("replaced photo was not removed")
		}
	})

	t.Run("partial date parts leave dob unchanged", func(t *testing.T) {
		svc, _ := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		day := 1
		patched, err := svc.Patch(ctx, "123", domain.PatchProfileRequest{DOBDay: &day}, nil)
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		if patched.DOB != "15-06-1990" {
			t.Fatalf("DOB = %q, want unchanged", patched.DOB)
		}
	})

	t.Run("invalid gender is rejected", func(t *testing.T) {
		svc, _ := newProfileService(t)
		if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		gender := "banana"
		if _, err := svc.Patch(ctx, "123", domain.PatchProfileRequest{Gender: &gender}, nil); !errors.Is(err, domain.ErrInvalidGender) {
			t.Fatalf("Patch() error = %v, want ErrInvalidGender", err)
		}
	})
}

func TestProfileServiceDeleteRemovesPhoto(t *testing.T) {
	t.Parallel()

	svc, dir := newProfileService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, validCreateRequest(), photoUpload("face.jpg", 64)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, "123"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "123_face.jpg")); !os.IsNotExist(err) {
		t.Fatalf("photo file still present after delete")
	}
	if _, err := svc.Get(ctx, "123"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
}
