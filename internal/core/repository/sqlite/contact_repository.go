package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yogawell/member-service/internal/core/domain"
)

// ContactRepository implements domain.ContactRepository on SQLite.
type ContactRepository struct {
	db *DB
}

// NewContactRepository creates a SQLite contact repository.
func NewContactRepository(db *DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Insert(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	var existingID int64
	err := r.db.db.QueryRowContext(ctx, `SELECT id FROM contacts WHERE phone_no = ?`, contact.PhoneNo).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert contact %q: %w", contact.PhoneNo, domain.ErrDuplicateKey)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing contact: %w", err)
	}

	result, err := r.db.db.ExecContext(ctx,
		`INSERT INTO contacts (name, email, phone_no, message) VALUES (?, ?, ?, ?)`,
		contact.Name, contact.Email, contact.PhoneNo, contact.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact: %w", err)
	}

	stored := *contact
	stored.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert contact id: %w", err)
	}
	return &stored, nil
}

func (r *ContactRepository) Get(ctx context.Context, phoneNo string) (*domain.Contact, error) {
	var contact domain.Contact
	err := r.db.db.QueryRowContext(ctx,
		`SELECT id, name, email, phone_no, message FROM contacts WHERE phone_no = ?`, phoneNo,
	).Scan(&contact.ID, &contact.Name, &contact.Email, &contact.PhoneNo, &contact.Message)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get contact %q: %w", phoneNo, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query contact: %w", err)
	}
	return &contact, nil
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.db.QueryContext(ctx, `SELECT id, name, email, phone_no, message FROM contacts ORDER BY id`)
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
	result, err := r.db.db.ExecContext(ctx,
		`UPDATE contacts SET name = ?, email = ?, message = ? WHERE phone_no = ?`,
		upd.Name, upd.Email, upd.Message, phoneNo,
	)
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update contact: %w", err)
	}
	if affected == 0 {
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
	result, err := r.db.db.ExecContext(ctx, `DELETE FROM contacts WHERE phone_no = ?`, phoneNo)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete contact %q: %w", phoneNo, domain.ErrNotFound)
	}
	return nil
}
