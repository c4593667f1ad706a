package account

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
)

// Profile holds the delivery details of a user.
type Profile struct {
	UserID        string
	FullName      string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	DeliveryNotes string
	UpdatedAt     time.Time
}

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	FullName      string
	Phone         string
	AddressLine1  string
	AddressLine2  string
	City          string
	PostalCode    string
	DeliveryNotes string
}

var profileLimits = []struct {
	field string
	max   int
	value func(*ProfileInput) *string
}{
	{"full_name", 120, func(p *ProfileInput) *string { return &p.FullName }},
	{"phone", 32, func(p *ProfileInput) *string { return &p.Phone }},
	{"address_line1", 160, func(p *ProfileInput) *string { return &p.AddressLine1 }},
	{"address_line2", 160, func(p *ProfileInput) *string { return &p.AddressLine2 }},
	{"city", 80, func(p *ProfileInput) *string { return &p.City }},
	{"postal_code", 16, func(p *ProfileInput) *string { return &p.PostalCode }},
	{"delivery_notes", 500, func(p *ProfileInput) *string { return &p.DeliveryNotes }},
}

// NormalizeProfileInput trims every field and enforces length and phone
// character limits.
func NormalizeProfileInput(input ProfileInput) (ProfileInput, error) {
	for _, limit := range profileLimits {
		value := limit.value(&input)
		*value = strings.TrimSpace(*value)
		if utf8.RuneCountInString(*value) > limit.max {
			return ProfileInput{}, invalidProfile(limit.field, fmt.Sprintf("%s must be at most %d characters", limit.field, limit.max))
		}
	}
	for _, r := range input.Phone {
		if !unicode.IsDigit(r) && !strings.ContainsRune(" +-()", r) {
			return ProfileInput{}, invalidProfile("phone", "phone may only contain digits, spaces and + - ( )")
		}
	}
	return input, nil
}

// Input returns the editable fields of p.
func (p Profile) Input() ProfileInput {
	return ProfileInput{
		FullName:      p.FullName,
		Phone:         p.Phone,
		AddressLine1:  p.AddressLine1,
		AddressLine2:  p.AddressLine2,
		City:          p.City,
		PostalCode:    p.PostalCode,
		DeliveryNotes: p.DeliveryNotes,
	}
}

func invalidProfile(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodeProfileInvalid, message, map[string]string{"field": field})
}
