package account

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/id"
)

var tracer = otel.Tracer("github.com/asjuices/storefront/internal/services/shop/account")

// Store persists users and profiles.
type Store interface {
	// CreateUser stores a new user with its empty profile. A taken email
	// yields a conflict error.
	CreateUser(ctx context.Context, user User, profile Profile) error
	GetUser(ctx context.Context, userID string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetProfile(ctx context.Context, userID string) (Profile, error)
	PutProfile(ctx context.Context, profile Profile) error
}

// Service implements sign-up, sign-in and profile editing.
type Service struct {
	store    Store
	now      func() time.Time
	ids      id.Generator
	hashCost int
	// dummyHash is compared against when the email is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides user id generation.
func WithIDGenerator(ids id.Generator) Option {
	return func(s *Service) { s.ids = ids }
}

// WithHashCost overrides the bcrypt cost.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// NewService builds an account service over store.
func NewService(store Store, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now, ids: id.NewID, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.hashCost)
	if err == nil {
		s.dummyHash = hash
	}
	return s
}

// SignUp creates a user with an empty profile.
func (s *Service) SignUp(ctx context.Context, email, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "account.SignUp")
	defer span.End()

	user, err := s.signUp(ctx, email, password)
	if err != nil {
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	return user, err
}

func (s *Service) signUp(ctx context.Context, email, password string) (User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return User{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.ids()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}
	createdAt := s.now().UTC()
	user := User{
		ID:           userID,
		Email:        normalized,
		PasswordHash: string(hash),
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := s.store.CreateUser(ctx, user, Profile{UserID: userID, UpdatedAt: createdAt}); err != nil {
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			return User{}, apperrors.WithMetadata(apperrors.CodeAccountEmailTaken,
				"an account with this email already exists", map[string]string{"field": "email"})
		}
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SignIn checks credentials. Unknown emails and wrong passwords return the
// same error.
func (s *Service) SignIn(ctx context.Context, email, password string) (User, error) {
	ctx, span := tracer.Start(ctx, "account.SignIn")
	defer span.End()

	user, err := s.signIn(ctx, email, password)
	if err != nil {
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	return user, err
}

func (s *Service) signIn(ctx context.Context, email, password string) (User, error) {
	invalid := apperrors.New(apperrors.CodeAccountInvalidCredentials, "invalid email or password")
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return User{}, invalid
	}
	user, err := s.store.GetUserByEmail(ctx, normalized)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			if s.dummyHash != nil {
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			}
			return User{}, invalid
		}
		return User{}, fmt.Errorf("get user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, invalid
	}
	return user, nil
}

// GetUser returns a user by id.
func (s *Service) GetUser(ctx context.Context, userID string) (User, error) {
	user, err := s.store.GetUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// GetProfile returns the profile of userID, empty when none was saved yet.
func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	userID = strings.TrimSpace(userID)
	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return Profile{UserID: userID}, nil
		}
		return Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile replaces the editable profile fields of userID.
func (s *Service) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (Profile, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Profile{}, apperrors.New(apperrors.CodeProfileInvalid, "user id is required")
	}
	normalized, err := NormalizeProfileInput(input)
	if err != nil {
		return Profile{}, err
	}
	profile := Profile{
		UserID:        userID,
		FullName:      normalized.FullName,
		Phone:         normalized.Phone,
		AddressLine1:  normalized.AddressLine1,
		AddressLine2:  normalized.AddressLine2,
		City:          normalized.City,
		PostalCode:    normalized.PostalCode,
		DeliveryNotes: normalized.DeliveryNotes,
		UpdatedAt:     s.now().UTC(),
	}
	if err := s.store.PutProfile(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("put profile: %w", err)
	}
	return profile, nil
}
