package account

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6
	// MaxPasswordLength keeps input within bcrypt's 72 byte limit.
	MaxPasswordLength = 72
	maxEmailLength    = 254
)

// User is a customer identity.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeEmail trims, lowercases and validates an email address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", invalidEmail("email is required")
	}
	if len(email) > maxEmailLength {
		return "", invalidEmail("email is too long")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email[strings.LastIndex(email, "@")+1:], ".") {
		return "", invalidEmail(fmt.Sprintf("%q is not a valid email address", raw))
	}
	return email, nil
}

// ValidatePassword enforces password length bounds.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperrors.WithMetadata(apperrors.CodeAccountWeakPassword,
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
			map[string]string{"field": "password"})
	}
	if len(password) > MaxPasswordLength {
		return apperrors.WithMetadata(apperrors.CodeAccountWeakPassword,
			fmt.Sprintf("password must be at most %d bytes", MaxPasswordLength),
			map[string]string{"field": "password"})
	}
	return nil
}

func invalidEmail(message string) error {
	return apperrors.WithMetadata(apperrors.CodeAccountInvalidEmail, message, map[string]string{"field": "email"})
}
