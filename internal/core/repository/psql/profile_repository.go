package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ProfileRepository implements domain.ProfileRepository using PostgreSQL.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a PostgreSQL profile repository on the
// given pool.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Insert(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	var existingID int64
	checkQuery := `SELECT id FROM personal_details WHERE phone_no = $1`
	err := r.pool.QueryRow(ctx, checkQuery, profile.PhoneNo).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert profile %q: %w", profile.PhoneNo, domain.ErrDuplicateKey)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check existing profile: %w", err)
	}

	stored := *profile
	insertQuery := `INSERT INTO personal_details (phone_no, full_name, dob, age, gender, email, address, photo_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err = r.pool.QueryRow(ctx, insertQuery,
		profile.PhoneNo, profile.FullName, profile.DOB, profile.Age,
		profile.Gender, profile.Email, profile.Address, profile.PhotoPath,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &stored, nil
}

func (r *ProfileRepository) Get(ctx context.Context, phoneNo string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT id, phone_no, full_name, dob, age, gender, email, address, photo_path
		FROM personal_details WHERE phone_no = $1`
	err := r.pool.QueryRow(ctx, query, phoneNo).Scan(
		&profile.ID, &profile.PhoneNo, &profile.FullName, &profile.DOB, &profile.Age,
		&profile.Gender, &profile.Email, &profile.Address, &profile.PhotoPath,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get profile %q: %w", phoneNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepository) List(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT id, phone_no, full_name, dob, age, gender, email, address, photo_path
		FROM personal_details ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
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
	query := `UPDATE personal_details
		SET full_name = $1, dob = $2, age = $3, gender = $4, email = $5, address = $6, photo_path = $7
		WHERE phone_no = $8`
	result, err := r.pool.Exec(ctx, query,
		upd.FullName, upd.DOB, upd.Age, upd.Gender, upd.Email, upd.Address, upd.PhotoPath, phoneNo,
	)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if result.RowsAffected() == 0 {
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
	result, err := r.pool.Exec(ctx, `DELETE FROM personal_details WHERE phone_no = $1`, phoneNo)
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete profile %q: %w", phoneNo, domain.ErrNotFound)
	}
	return nil
}
