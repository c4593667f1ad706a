package sessioncookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/asjuices/storefront/internal/services/storefront/platform/requestmeta"
)

func TestWriteAndRead(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://shop.example.test/", nil)
	Write(rec, req, requestmeta.SchemePolicy{}, "  ws-1 ", time.Hour)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != Name || cookie.Value != "ws-1" {
		t.Fatalf("cookie = %s=%q, want %s=%q", cookie.Name, cookie.Value, Name, "ws-1")
	}
	if !cookie.HttpOnly || cookie.Secure {
		t.Fatalf("cookie flags HttpOnly=%v Secure=%v, want true false", cookie.HttpOnly, cookie.Secure)
	}
	if cookie.MaxAge != 3600 {
		t.Fatalf("MaxAge = %d, want 3600", cookie.MaxAge)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	got, ok := Read(next)
	if !ok || got != "ws-1" {
		t.Fatalf("Read() = %q, %v, want ws-1, true", got, ok)
	}
}

func TestReadMissingOrBlank(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatal("expected nil request to have no session")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: "  "})
	if _, ok := Read(req); ok {
		t.Fatal("expected blank cookie to be ignored")
	}
}

func TestClearExpiresCookie(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	Clear(rec, httptest.NewRequest(http.MethodPost, "https://shop.example.test/logout", nil), requestmeta.SchemePolicy{})
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 {
		t.Fatalf("cookies = %+v, want one expired cookie", cookies)
	}
	if !cookies[0].Secure {
		t.Fatal("expected https clear to be secure")
	}
}
