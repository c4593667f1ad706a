// Package errors defines storefront web errors and their HTTP mapping.
package errors

import (
	stderrors "errors"
	"net/http"
	"strings"

	domainerrors "github.com/asjuices/storefront/internal/platform/errors"
)

// Kind classifies web failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
)

// Error is a typed web failure.
type Error struct {
	Kind    Kind
	Key     string
	Message string
}

// Error renders the internal message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// EK builds a typed Error with a localization key.
func EK(kind Kind, key string, message string) error {
	return Error{Kind: kind, Key: strings.TrimSpace(key), Message: message}
}

// DomainKey returns the localization key for a domain error code.
func DomainKey(code domainerrors.Code) string {
	return "error." + strings.ToLower(string(code))
}

// LocalizationKey returns the key of a web error, or the key derived from
// a coded domain error. Uncoded errors have no key.
func LocalizationKey(err error) string {
	if err == nil {
		return ""
	}
	var webErr Error
	if stderrors.As(err, &webErr) {
		return strings.TrimSpace(webErr.Key)
	}
	if code := domainerrors.CodeOf(err); code != domainerrors.CodeUnknown {
		return DomainKey(code)
	}
	return ""
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var webErr Error
	if stderrors.As(err, &webErr) {
		return kindStatus(webErr.Kind)
	}
	code := domainerrors.CodeOf(err)
	if code == domainerrors.CodeUnknown {
		return http.StatusInternalServerError
	}
	switch code.Kind() {
	case domainerrors.KindInvalidInput:
		return http.StatusBadRequest
	case domainerrors.KindNotFound:
		return http.StatusNotFound
	case domainerrors.KindConflict, domainerrors.KindFailedPrecondition:
		return http.StatusConflict
	case domainerrors.KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func kindStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
