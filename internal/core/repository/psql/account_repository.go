package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yogawell/member-service/internal/core/domain"
)

// AccountRepository implements domain.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a PostgreSQL account repository on the
// given pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) Insert(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	var existingID int64
	checkQuery := `SELECT id FROM users WHERE username = $1 OR email = $2 OR phone_number = $3`
	err := r.pool.QueryRow(ctx, checkQuery, account.Username, account.Email, account.PhoneNumber).Scan(&existingID)
	if err == nil {
		return nil, fmt.Errorf("insert account %q: %w", account.Username, domain.ErrDuplicateKey)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check existing account: %w", err)
	}

	stored := *account
	insertQuery := `INSERT INTO users (username, email, phone_number, hashed_password, user_type)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err = r.pool.QueryRow(ctx, insertQuery,
		account.Username, account.Email, account.PhoneNumber, account.HashedPassword, account.UserType,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &stored, nil
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	var account domain.Account
	query := `SELECT id, username, email, phone_number, hashed_password, user_type FROM users WHERE username = $1`
	err := r.pool.QueryRow(ctx, query, username).Scan(
		&account.ID, &account.Username, &account.Email,
		&account.PhoneNumber, &account.HashedPassword, &account.UserType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get account %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("query account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) Delete(ctx context.Context, username string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete account %q: %w", username, domain.ErrNotFound)
	}
	return nil
}
