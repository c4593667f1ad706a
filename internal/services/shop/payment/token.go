package payment

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

const (
	tokenIssuer  = "asjuices-mockpay"
	minSecretLen = 16
)

// Claims are the verified contents of a payment token.
type Claims struct {
	ID       string
	Amount   Amount
	Last4    string
	IssuedAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Last4    string `json:"last4"`
}

// Signer issues and verifies HS256 payment tokens.
type Signer struct {
	key []byte
}

// NewSigner builds a signer over secret.
func NewSigner(secret []byte) (*Signer, error) {
	if len(secret) < minSecretLen {
		return nil, fmt.Errorf("payment secret must be at least %d bytes", minSecretLen)
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Signer{key: key}, nil
}

// RandomSecret returns a fresh per-process signing secret.
func RandomSecret() ([]byte, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate payment secret: %w", err)
	}
	return secret, nil
}

// Sign issues a token for claims.
func (s *Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   tokenIssuer,
			ID:       claims.ID,
			IssuedAt: jwt.NewNumericDate(claims.IssuedAt),
		},
		Amount:   int64(claims.Amount.Cents),
		Currency: claims.Amount.Currency,
		Last4:    claims.Last4,
	})
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign payment token: %w", err)
	}
	return signed, nil
}

// Verify checks a token's signature and returns its claims.
func (s *Signer) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, apperrors.New(apperrors.CodePaymentTokenInvalid, "payment token is required")
	}
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return s.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if parsed.ID == "" {
		return Claims{}, apperrors.New(apperrors.CodePaymentTokenInvalid, "payment token jti is required")
	}
	claims := Claims{
		ID:     parsed.ID,
		Amount: Amount{Cents: money.Cents(parsed.Amount), Currency: parsed.Currency},
		Last4:  parsed.Last4,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
		return apperrors.Wrap(apperrors.CodePaymentTokenInvalid, "payment token signature is invalid", err)
	}
	if errors.Is(err, jwt.ErrTokenUnverifiable) {
		return apperrors.Wrap(apperrors.CodePaymentTokenInvalid, "payment token alg is invalid", err)
	}
	return apperrors.Wrap(apperrors.CodePaymentTokenInvalid, "payment token is invalid", err)
}
