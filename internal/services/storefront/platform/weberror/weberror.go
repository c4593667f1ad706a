// Package weberror renders shared error responses for storefront modules.
package weberror

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	apperrors "github.com/asjuices/storefront/internal/services/storefront/platform/errors"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

// ShouldRenderAppError reports whether status should use the error page.
func ShouldRenderAppError(statusCode int) bool {
	return statusCode == http.StatusNotFound || statusCode >= http.StatusInternalServerError
}

// PublicMessage resolves a user-safe localized message for err. Errors
// without a localization key fall back to the status text so internal
// details never reach the page.
func PublicMessage(loc i18n.Localizer, err error) string {
	if err == nil {
		return ""
	}
	if loc != nil {
		if key := apperrors.LocalizationKey(err); key != "" {
			if localized := strings.TrimSpace(loc.Sprintf(key)); localized != "" && localized != key {
				return localized
			}
		}
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode < http.StatusBadRequest {
		statusCode = http.StatusInternalServerError
	}
	return http.StatusText(statusCode)
}

// WriteAppError writes the localized error page for statusCode.
func WriteAppError(w http.ResponseWriter, r *http.Request, statusCode int, deps module.Dependencies) {
	if w == nil {
		return
	}
	if !ShouldRenderAppError(statusCode) {
		statusCode = http.StatusInternalServerError
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	key := "error.internal"
	if statusCode == http.StatusNotFound {
		key = "error.page_not_found"
	}
	err := pagerender.Write(w, r, deps, pagerender.Page{
		Title:      templates.AppErrorPageTitle(statusCode, loc),
		StatusCode: statusCode,
		Fragment:   templates.AppErrorState(statusCode, loc.Sprintf(key), loc),
	})
	if err != nil {
		deps.Log().Warn("render error page", zap.Int("status", statusCode), zap.Error(err))
	}
}

// WriteModuleError writes err as an error page or a short localized reply,
// and logs server-side failures.
func WriteModuleError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies) {
	if w == nil {
		return
	}
	statusCode := apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError {
		deps.Log().Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", httpx.RequestIDFrom(r)),
			zap.Error(err),
		)
	}
	if ShouldRenderAppError(statusCode) {
		WriteAppError(w, r, statusCode, deps)
		return
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	http.Error(w, PublicMessage(loc, err), statusCode)
}

// WriteNotFound writes the not-found page.
func WriteNotFound(w http.ResponseWriter, r *http.Request, deps module.Dependencies) {
	WriteAppError(w, r, http.StatusNotFound, deps)
}

// Inline returns the status and localized message for showing err beside a
// form. ok is false for server failures, which belong to WriteModuleError.
func Inline(r *http.Request, err error) (statusCode int, message string, ok bool) {
	statusCode = apperrors.HTTPStatus(err)
	if statusCode >= http.StatusInternalServerError || statusCode < http.StatusBadRequest {
		return statusCode, "", false
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	return statusCode, PublicMessage(loc, err), true
}

// WriteFlashError carries a client error to location as a flash notice.
// Server failures are written in place through WriteModuleError.
func WriteFlashError(w http.ResponseWriter, r *http.Request, err error, deps module.Dependencies, location string) {
	statusCode := apperrors.HTTPStatus(err)
	key := apperrors.LocalizationKey(err)
	if statusCode >= http.StatusInternalServerError || key == "" {
		WriteModuleError(w, r, err, deps)
		return
	}
	flash.Write(w, r, deps.SchemePolicy, flash.Error(key))
	httpx.WriteRedirect(w, r, location)
}
