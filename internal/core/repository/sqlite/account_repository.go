package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yogawell/member-service/internal/core/domain"
)

// AccountRepository implements domain.AccountRepository on SQLite.
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a SQLite account repository.
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	var existingID int64
	err := r.db.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE username = ? OR email = ? OR phone_number = ?`,
		account.Username, account.Email, account.PhoneNumber,
	).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert account %q: %w", account.Username, domain.ErrDuplicateKey)
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	result, err := r.db.db.ExecContext(ctx,
		`INSERT INTO users (username, email, phone_number, hashed_password, user_type) VALUES (?, ?, ?, ?, ?)`,
		account.Username, account.Email, account.PhoneNumber, account.HashedPassword, account.UserType,
	)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	stored := *account
	stored.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert account id: %w", err)
	}
	return &stored, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	err := r.db.db.QueryRowContext(ctx,
		`SELECT id, username, email, phone_number, hashed_password, user_type FROM users WHERE username = ?`,
		username,
	).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PhoneNumber, &account.HashedPassword, &account.UserType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get account %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, username string) error {
	result, err := r.db.db.ExecContext(ctx, `DELETE FROM users WHERE username = ?`, username)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete account %q: %w", username, domain.ErrNotFound)
	}
	return nil
}
