package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/sessioncookie"
)

type stubModule struct {
	id    string
	mount module.Mount
}

func (m stubModule) ID() string { return m.id }

func (m stubModule) Mount(module.Dependencies) (module.Mount, error) { return m.mount, nil }

func noContent() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestComposeRejectsDuplicateModulePrefix(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{
			stubModule{id: "one", mount: module.Mount{Prefix: "/cart/", Handler: noContent()}},
			stubModule{id: "two", mount: module.Mount{Prefix: "cart", Handler: noContent()}},
		},
	})
	if err == nil {
		t.Fatalf("expected duplicate prefix error")
	}
}

func TestComposeRejectsNilModules(t *testing.T) {
	t.Parallel()

	if _, err := (Composer{}).Compose(ComposeInput{PublicModules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil public module error")
	}
	if _, err := (Composer{}).Compose(ComposeInput{ProtectedModules: []module.Module{nil}}); err == nil {
		t.Fatalf("expected nil protected module error")
	}
}

func TestComposeRejectsMisplacedPrefixes(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "portal", mount: module.Mount{Prefix: "/app/", Handler: noContent()}}},
	})
	if err == nil {
		t.Fatalf("expected protected prefix in public group to fail")
	}
	_, err = Composer{}.Compose(ComposeInput{
		ProtectedModules: []module.Module{stubModule{id: "cart", mount: module.Mount{Prefix: "/cart/", Handler: noContent()}}},
	})
	if err == nil {
		t.Fatalf("expected public prefix in protected group to fail")
	}
}

func TestComposeRejectsIncompleteMount(t *testing.T) {
	t.Parallel()

	_, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "empty", mount: module.Mount{Prefix: "/quiz/"}}},
	})
	if err == nil {
		t.Fatalf("expected missing handler error")
	}
}

func TestComposeWrapsProtectedModulesWithAuth(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		AuthRequired:     func(*http.Request) bool { return false },
		ProtectedModules: []module.Module{stubModule{id: "portal", mount: module.Mount{Prefix: "/app/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/app/orders", nil))
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusFound)
	}
	if got := rr.Header().Get("Location"); got != "/login" {
		t.Fatalf("Location = %q, want %q", got, "/login")
	}
}

func TestComposeAuthRedirectIsHTMXAware(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		ProtectedModules: []module.Module{stubModule{id: "portal", mount: module.Mount{Prefix: "/app/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/app/schedule", nil)
	req.Header.Set("HX-Request", "true")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if got := rr.Header().Get("HX-Redirect"); got != "/login" {
		t.Fatalf("HX-Redirect = %q, want %q", got, "/login")
	}

	post := httptest.NewRequest(http.MethodPost, "/app/schedule", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, post)
	if rr.Code != http.StatusSeeOther {
		t.Fatalf("anonymous post status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
}

func TestComposeMountsPublicModulesWithoutAuth(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		AuthRequired:  func(*http.Request) bool { return false },
		PublicModules: []module.Module{stubModule{id: "catalog", mount: module.Mount{Prefix: "/products/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products/green-reset", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeRejectsCookieMutationWithoutSameOriginProof(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		AuthRequired:     func(*http.Request) bool { return true },
		PublicModules:    []module.Module{stubModule{id: "cart", mount: module.Mount{Prefix: "/cart/", Handler: noContent()}}},
		ProtectedModules: []module.Module{stubModule{id: "portal", mount: module.Mount{Prefix: "/app/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	for _, target := range []string{"/app/profile", "/cart/clear"} {
		req := httptest.NewRequest(http.MethodPost, target, nil)
		req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "ws-1"})
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusForbidden {
			t.Fatalf("POST %s status = %d, want %d", target, rr.Code, http.StatusForbidden)
		}
	}
}

func TestComposeAllowsCookieMutationWithSameOriginHeader(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		AuthRequired:     func(*http.Request) bool { return true },
		ProtectedModules: []module.Module{stubModule{id: "portal", mount: module.Mount{Prefix: "/app/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "https://shop.example.test/app/schedule", nil)
	req.Header.Set("Origin", "https://shop.example.test")
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "ws-1"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestComposeAllowsAnonymousMutation(t *testing.T) {
	t.Parallel()

	h, err := Composer{}.Compose(ComposeInput{
		PublicModules: []module.Module{stubModule{id: "cart", mount: module.Mount{Prefix: "/cart/", Handler: noContent()}}},
	})
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}
