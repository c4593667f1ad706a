package requestmeta

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHasSameOriginProof(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		req    *http.Request
		policy SchemePolicy
		want   bool
	}{
		{
			name: "origin same host and scheme",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "https://shop.example.test/app/profile", nil)
				req.Header.Set("Origin", "https://shop.example.test")
				return req
			}(),
			want: true,
		},
		{
			name: "referer same host and scheme",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "https://shop.example.test/logout", nil)
				req.Header.Set("Referer", "https://shop.example.test/app/orders")
				return req
			}(),
			want: true,
		},
		{
			name: "origin scheme mismatch",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "https://shop.example.test/logout", nil)
				req.Header.Set("Origin", "http://shop.example.test")
				return req
			}(),
			want: false,
		},
		{
			name: "origin missing non-default port",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "https://shop.example.test:8443/logout", nil)
				req.Host = "shop.example.test:8443"
				req.Header.Set("Origin", "https://shop.example.test")
				return req
			}(),
			want: false,
		},
		{
			name: "foreign origin",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "http://shop.example.test/app/profile", nil)
				req.Header.Set("Origin", "http://evil.example.test")
				return req
			}(),
			want: false,
		},
		{
			name: "forwarded proto trusted",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/app/profile", nil)
				req.Host = "shop.example.test"
				req.Header.Set("X-Forwarded-Proto", "https")
				req.Header.Set("Origin", "https://shop.example.test")
				return req
			}(),
			policy: SchemePolicy{TrustForwardedProto: true},
			want:   true,
		},
		{
			name: "missing origin and referer",
			req:  httptest.NewRequest(http.MethodPost, "https://shop.example.test/logout", nil),
			want: false,
		},
		{
			name: "nil request",
			req:  nil,
			want: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.policy.HasSameOriginProof(tc.req); got != tc.want {
				t.Fatalf("HasSameOriginProof() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsHTTPS(t *testing.T) {
	t.Parallel()

	if (SchemePolicy{}).IsHTTPS(nil) {
		t.Fatalf("expected nil request to be non-https")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if (SchemePolicy{}).IsHTTPS(req) {
		t.Fatalf("expected http URL to be non-https")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	if (SchemePolicy{}).IsHTTPS(req) {
		t.Fatalf("expected forwarded proto to be ignored by default")
	}
	if !(SchemePolicy{TrustForwardedProto: true}).IsHTTPS(req) {
		t.Fatalf("expected trusted forwarded https request")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.TLS = &tls.ConnectionState{}
	if !(SchemePolicy{}).IsHTTPS(req) {
		t.Fatalf("expected TLS request to be https")
	}
}

func TestCookieFollowsScheme(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRequest(http.MethodGet, "http://shop.example.test/", nil)
	cookie := SchemePolicy{}.Cookie(plain, "asj_test", "v", 0)
	if cookie.Secure || !cookie.HttpOnly || cookie.Path != "/" || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("cookie = %+v, want HttpOnly Lax non-secure at /", cookie)
	}

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")
	if !(SchemePolicy{TrustForwardedProto: true}).Cookie(proxied, "asj_test", "v", -1).Secure {
		t.Fatal("expected secure cookie behind trusted https proxy")
	}
}

func TestCookieValue(t *testing.T) {
	t.Parallel()

	if _, ok := CookieValue(nil, "asj_test"); ok {
		t.Fatal("expected nil request to have no cookie")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := CookieValue(req, "asj_test"); ok {
		t.Fatal("expected missing cookie")
	}
	req.AddCookie(&http.Cookie{Name: "asj_test", Value: " abc "})
	if got, ok := CookieValue(req, "asj_test"); !ok || got != "abc" {
		t.Fatalf("CookieValue() = %q, %v, want abc, true", got, ok)
	}
	blank := httptest.NewRequest(http.MethodGet, "/", nil)
	blank.AddCookie(&http.Cookie{Name: "asj_test", Value: "  "})
	if _, ok := CookieValue(blank, "asj_test"); ok {
		t.Fatal("expected blank cookie to be ignored")
	}
}
