package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ProfileRepository implements domain.ProfileRepository on SQLite.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a SQLite profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	var existingID int64
	err := r.db.db.QueryRowContext(ctx, `SELECT id FROM personal_details WHERE phone_no = ?`, profile.PhoneNo).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert profile %q: %w", profile.PhoneNo, domain.ErrDuplicateKey)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}

	result, err := r.db.db.ExecContext(ctx,
		`INSERT INTO personal_details (phone_no, full_name, dob, age, gender, email, address, photo_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.PhoneNo, profile.FullName, profile.DOB, profile.Age,
		profile.Gender, profile.Email, profile.Address, profile.PhotoPath,
	)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	stored := *profile
	stored.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert profile id: %w", err)
	}
	return &stored, nil
}

func (r *ProfileRepository) Get(ctx context.Context, phoneNo string) (*domain.Profile, error) {
	var profile domain.Profile
	err := r.db.db.QueryRowContext(ctx,
		`SELECT id, phone_no, full_name, dob, age, gender, email, address, photo_path
		 FROM personal_details WHERE phone_no = ?`, phoneNo,
	).Scan(
		&profile.ID, &profile.PhoneNo, &profile.FullName, &profile.DOB, &profile.Age,
		&profile.Gender, &profile.Email, &profile.Address, &profile.PhotoPath,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get profile %q: %w", phoneNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	rows, err := r.db.db.QueryContext(ctx,
		`SELECT id, phone_no, full_name, dob, age, gender, email, address, photo_path
		 FROM personal_details ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		err := rows.Scan(
			&profile.ID, &profile.PhoneNo, &profile.FullName, &profile.DOB, &profile.Age,
			&profile.Gender, &profile.Email, &profile.Address, &profile.PhotoPath,
		)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

func (r *ProfileRepository) Update(ctx context.Context, phoneNo string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	result, err := r.db.db.ExecContext(ctx,
		`UPDATE personal_details
		 SET full_name = ?, dob = ?, age = ?, gender = ?, email = ?, address = ?, photo_path = ?
		 WHERE phone_no = ?`,
		upd.FullName, upd.DOB, upd.Age, upd.Gender, upd.Email, upd.Address, upd.PhotoPath, phoneNo,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("update profile %q: %w", phoneNo, domain.ErrNotFound)
	}
	return r.Get(ctx, phoneNo)
}

func (r *ProfileRepository) Patch(ctx context.Context, phoneNo string, patch domain.ProfilePatch) (*domain.Profile, error) {
	profile, err := r.Get(ctx, phoneNo)
	if err != nil {
		return nil, err
	}

	upd := domain.ProfileUpdate{
		FullName:  profile.FullName,
		DOB:       profile.DOB,
		Age:       profile.Age,
		Gender:    profile.Gender,
		Email:     profile.Email,
		Address:   profile.Address,
		PhotoPath: profile.PhotoPath,
	}
	if patch.FullName != nil && *patch.FullName != "" {
		upd.FullName = *patch.FullName
	}
	if patch.DOB != nil && *patch.DOB != "" {
		upd.DOB = *patch.DOB
	}
	if patch.Age != nil && *patch.Age != 0 {
		upd.Age = *patch.Age
	}
	if patch.Gender != nil && *patch.Gender != "" {
		upd.Gender = *patch.Gender
	}
	if patch.Email != nil && *patch.Email != "" {
		upd.Email = *patch.Email
	}
	if patch.Address != nil && *patch.Address != "" {
		upd.Address = *patch.Address
	}
	if patch.PhotoPath != nil && *patch.PhotoPath != "" {
		upd.PhotoPath = *patch.PhotoPath
	}
	return r.Update(ctx, phoneNo, upd)
}

func (r *ProfileRepository) Delete(ctx context.Context, phoneNo string) error {
	result, err := r.db.db.ExecContext(ctx, `DELETE FROM personal_details WHERE phone_no = ?`, phoneNo)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete profile %q: %w", phoneNo, domain.ErrNotFound)
	}
	return nil
}
