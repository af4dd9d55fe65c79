package v1

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/yogawell/member-service/internal/core/domain"
	"github.com/yogawell/member-service/middleware"
)

// AccountService implements registration, lookup, and credential
// verification for user accounts. Token issuance is not part of this
// service; callers only get the account back on a successful login.
type AccountService struct {
	repo domain.AccountRepository
}

// NewAccountService creates an account service on the given repository.
func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Register validates the user type, hashes the password with bcrypt,
// and stores the account.
func (s *AccountService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.Account, error) {
	ctx, span := middleware.StartSpan(ctx, "account.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("account.username", req.Username),
	))
	defer span.End()

	userType, err := domain.NormalizeUserType(req.UserType)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.repo.Insert(ctx, &domain.Account{
		Username:       req.Username,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		HashedPassword: string(hashed),
		UserType:       userType,
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("account.id", account.ID))
	span.AddEvent("account.registered")
	return account, nil
}

// Login verifies the password for a username. Unknown usernames and
// wrong passwords both surface as ErrInvalidCredentials so the response
// does not leak which accounts exist.
func (s *AccountService) Login(ctx context.Context, req domain.LoginRequest) (*domain.Account, error) {
	ctx, span := middleware.StartSpan(ctx, "account.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("account.username", req.Username),
	))
	defer span.End()

	account, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		span.SetAttributes(attribute.Bool("account.found", false))
		return nil, fmt.Errorf("login %q: %w", req.Username, domain.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), []byte(req.Password)); err != nil {
		span.SetAttributes(attribute.Bool("account.password_match", false))
		return nil, fmt.Errorf("login %q: %w", req.Username, domain.ErrInvalidCredentials)
	}

	return account, nil
}

// GetByUsername returns the account for a username.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	ctx, span := middleware.StartSpan(ctx, "account.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("account.username", username),
	))
	defer span.End()

	account, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return account, nil
}
