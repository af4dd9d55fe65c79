package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yogawell/member-service/internal/core/domain"
	"github.com/yogawell/member-service/internal/storage/photo"
	"github.com/yogawell/member-service/middleware"
)

// ProfileService implements the business logic for personal-detail
// profiles, including the photo asset lifecycle. A record is never
// committed without a valid photo path, and replacement is
// write-new-then-delete-old so the record never references a missing
// file.
type ProfileService struct {
	repo         domain.ProfileRepository
	photos       photo.Store
	maxPhotoSize int64
}

// NewProfileService creates a profile service on the given repository
// and photo store. maxPhotoSize is the inclusive payload limit in bytes.
func NewProfileService(repo domain.ProfileRepository, photos photo.Store, maxPhotoSize int64) *ProfileService {
	return &ProfileService{repo: repo, photos: photos, maxPhotoSize: maxPhotoSize}
}

func (s *ProfileService) checkPhotoSize(upload *domain.PhotoUpload) error {
	if int64(len(upload.Data)) > s.maxPhotoSize {
		return fmt.Errorf("photo %q is %d bytes: %w", upload.Filename, len(upload.Data), domain.ErrPhotoTooLarge)
	}
	return nil
}

// Create validates gender and date of birth, persists the photo, and
// stores the profile. The photo is removed again if the insert fails.
func (s *ProfileService) Create(ctx context.Context, req domain.CreateProfileRequest, upload *domain.PhotoUpload) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("profile.phone_no", req.ContactNumber),
	))
	defer span.End()

	gender, err := domain.NormalizeGender(req.Gender)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	dob, err := domain.NewDateOfBirth(req.DOBDay, req.DOBMonth, req.DOBYear)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.checkPhotoSize(upload); err != nil {
		span.RecordError(err)
		return nil, err
	}

	// Fail duplicates before touching the photo store.
	if _, err := s.repo.Get(ctx, req.ContactNumber); err == nil {
		err = fmt.Errorf("create profile %q: %w", req.ContactNumber, domain.ErrDuplicateKey)
		span.RecordError(err)
		return nil, err
	}

	photoPath, err := s.photos.Save(ctx, req.ContactNumber, upload.Filename, upload.Data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save photo: %w", err)
	}

	profile, err := s.repo.Insert(ctx, &domain.Profile{
		PhoneNo:   req.ContactNumber,
		FullName:  req.FullName,
		DOB:       dob,
		Age:       req.Age,
		Gender:    gender,
		Email:     req.Email,
		Address:   req.Address,
		PhotoPath: photoPath,
	})
	if err != nil {
		// Lost the insert race; the saved photo is unowned.
		if removeErr := s.photos.Remove(ctx, photoPath); removeErr != nil {
			span.RecordError(removeErr)
		}
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("profile.id", profile.ID))
	span.AddEvent("profile.created")
	return profile, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	profiles, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("profile.count", len(profiles)))
	return profiles, nil
}

// Get returns the profile for a phone number.
func (s *ProfileService) Get(ctx context.Context, phoneNo string) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("profile.phone_no", phoneNo),
	))
	defer span.End()

	profile, err := s.repo.Get(ctx, phoneNo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return profile, nil
}

// Update fully replaces a profile. A new photo payload is required; it
// is written before the record is updated and the previous asset is
// removed last.
func (s *ProfileService) Update(ctx context.Context, phoneNo string, req domain.UpdateProfileRequest, upload *domain.PhotoUpload) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("profile.phone_no", phoneNo),
	))
	defer span.End()

	existing, err := s.repo.Get(ctx, phoneNo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	gender, err := domain.NormalizeGender(req.Gender)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	dob, err := domain.NewDateOfBirth(req.DOBDay, req.DOBMonth, req.DOBYear)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := s.checkPhotoSize(upload); err != nil {
		span.RecordError(err)
		return nil, err
	}

	photoPath, err := s.photos.Save(ctx, phoneNo, upload.Filename, upload.Data)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save photo: %w", err)
	}

	profile, err := s.repo.Update(ctx, phoneNo, domain.ProfileUpdate{
		FullName:  req.FullName,
		DOB:       dob,
		Age:       req.Age,
		Gender:    gender,
		Email:     req.Email,
		Address:   req.Address,
		PhotoPath: photoPath,
	})
	if err != nil {
		if removeErr := s.photos.Remove(ctx, photoPath); removeErr != nil {
			span.RecordError(removeErr)
		}
		span.RecordError(err)
		return nil, err
	}

	if existing.PhotoPath != photoPath {
		if err := s.photos.Remove(ctx, existing.PhotoPath); err != nil {
			span.RecordError(err)
		}
	}
	return profile, nil
}

// Patch replaces only the supplied fields. The date of birth changes
// only when all three parts are supplied; the photo is replaced only
// when a payload is uploaded.
func (s *ProfileService) Patch(ctx context.Context, phoneNo string, req domain.PatchProfileRequest, upload *domain.PhotoUpload) (*domain.Profile, error) {
	ctx, span := middleware.StartSpan(ctx, "profile.patch", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("profile.phone_no", phoneNo),
	))
	defer span.End()

	existing, err := s.repo.Get(ctx, phoneNo)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	patch := domain.ProfilePatch{
		FullName: req.FullName,
		Age:      req.Age,
		Email:    req.Email,
		Address:  req.Address,
	}

	if req.Gender != nil && *req.Gender != "" {
		gender, err := domain.NormalizeGender(*req.Gender)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		patch.Gender = &gender
	}

	if req.DOBDay != nil && *req.DOBDay != 0 &&
		req.DOBMonth != nil && *req.DOBMonth != 0 &&
		req.DOBYear != nil && *req.DOBYear != 0 {
		dob, err := domain.NewDateOfBirth(*req.DOBDay, *req.DOBMonth, *req.DOBYear)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		patch.DOB = &dob
	}

	var newPhotoPath string
	if upload != nil {
		if err := s.checkPhotoSize(upload); err != nil {
			span.RecordError(err)
			return nil, err
		}
		newPhotoPath, err = s.photos.Save(ctx, phoneNo, upload.Filename, upload.Data)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("save photo: %w", err)
		}
		patch.PhotoPath = &newPhotoPath
	}

	profile, err := s.repo.Patch(ctx, phoneNo, patch)
	if err != nil {
		if newPhotoPath != "" {
			if removeErr := s.photos.Remove(ctx, newPhotoPath); removeErr != nil {
				span.RecordError(removeErr)
			}
		}
		span.RecordError(err)
		return nil, err
	}

	if newPhotoPath != "" && existing.PhotoPath != newPhotoPath {
		if err := s.photos.Remove(ctx, existing.PhotoPath); err != nil {
			span.RecordError(err)
		}
	}
	return profile, nil
}

// Delete removes a profile and its photo asset.
func (s *ProfileService) Delete(ctx context.Context, phoneNo string) error {
	ctx, span := middleware.StartSpan(ctx, "profile.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("profile.phone_no", phoneNo),
	))
	defer span.End()

	existing, err := s.repo.Get(ctx, phoneNo)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.repo.Delete(ctx, phoneNo); err != nil {
		span.RecordError(err)
		return err
	}
	if err := s.photos.Remove(ctx, existing.PhotoPath); err != nil {
		span.RecordError(err)
		return fmt.Errorf("remove photo: %w", err)
	}
	return nil
}
