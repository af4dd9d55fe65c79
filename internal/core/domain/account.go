package domain

import (
	"fmt"
	"strings"
)

// Account user types.
const (
	UserTypeUser            = "User"
	UserTypeYogaTrainer     = "Yoga Trainer"
	UserTypeYogaDoctor      = "Yoga Doctor"
	UserTypePhysiotherapist = "Physiotherapist"
)

// Account is a user account record. Username, email, and phone number
// are each unique across accounts.
type Account struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	HashedPassword string `json:"-"`
	UserType       string `json:"user_type"`
}

// NormalizeUserType matches the input case-insensitively against the
// known account types and returns the canonical form.
func NormalizeUserType(userType string) (string, error) {
	for _, t := range []string{UserTypeUser, UserTypeYogaTrainer, UserTypeYogaDoctor, UserTypePhysiotherapist} {
		if strings.EqualFold(strings.TrimSpace(userType), t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("user type %q: %w", userType, ErrInvalidUserType)
}

// RegisterRequest binds the JSON body of POST /auth/register.
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	UserType    string `json:"user_type" binding:"required"`
}

// LoginRequest binds the JSON body of POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
