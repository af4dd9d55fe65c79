package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ContactRepository implements domain.ContactRepository using PostgreSQL.
type ContactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository creates a PostgreSQL contact repository on the
// given pool.
func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Insert(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	var existingID int64
	checkQuery := `SELECT id FROM contacts WHERE phone_no = $1`
	err := r.pool.QueryRow(ctx, checkQuery, contact.PhoneNo).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert contact %q: %w", contact.PhoneNo, domain.ErrDuplicateKey)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check existing contact: %w", err)
	}

	stored := *contact
	insertQuery := `INSERT INTO contacts (name, email, phone_no, message) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.pool.QueryRow(ctx, insertQuery, contact.Name, contact.Email, contact.PhoneNo, contact.Message).Scan(&stored.ID); err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}
	return &stored, nil
}

func (r *ContactRepository) Get(ctx context.Context, phoneNo string) (*domain.Contact, error) {
	var contact domain.Contact
	query := `SELECT id, name, email, phone_no, message FROM contacts WHERE phone_no = $1`
	err := r.pool.QueryRow(ctx, query, phoneNo).Scan(
		&contact.ID, &contact.Name, &contact.Email, &contact.PhoneNo, &contact.Message,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get contact %q: %w", phoneNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &contact, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT id, name, email, phone_no, message FROM contacts ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(&contact.ID, &contact.Name, &contact.Email, &contact.PhoneNo, &contact.Message); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) Update(ctx context.Context, phoneNo string, upd domain.ContactUpdate) (*domain.Contact, error) {
	query := `UPDATE contacts SET name = $1, email = $2, message = $3 WHERE phone_no = $4`
	result, err := r.pool.Exec(ctx, query, upd.Name, upd.Email, upd.Message, phoneNo)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, fmt.Errorf("update contact %q: %w", phoneNo, domain.ErrNotFound)
	}
	return r.Get(ctx, phoneNo)
}

func (r *ContactRepository) Patch(ctx context.Context, phoneNo string, patch domain.ContactPatch) (*domain.Contact, error) {
	contact, err := r.Get(ctx, phoneNo)
	if err != nil {
		return nil, err
	}

	upd := domain.ContactUpdate{Name: contact.Name, Email: contact.Email, Message: contact.Message}
	if patch.Name != nil && *patch.Name != "" {
		upd.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != "" {
		upd.Email = *patch.Email
	}
	if patch.Message != nil && *patch.Message != "" {
		upd.Message = *patch.Message
	}
	return r.Update(ctx, phoneNo, upd)
}

func (r *ContactRepository) Delete(ctx context.Context, phoneNo string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE phone_no = $1`, phoneNo)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete contact %q: %w", phoneNo, domain.ErrNotFound)
	}
	return nil
}
