package httpx_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ghuser/vetclinic/pkg/httpx"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSecurityHeaders(t *testing.T) {
	h := httpx.SecurityHeaders(false).Handler(http.HandlerFunc(okHandler))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody))

	want := map[string]string{
		"X-Content-Type-Options":  "nosniff",
		"X-Frame-Options":         "DENY",
		"Referrer-Policy":         "no-referrer",
		"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	}
	for header, v := range want {
		if got := rr.Header().Get(header); got != v {
			t.Errorf("%s = %q, want %q", header, got, v)
		}
	}
}

func TestRequestBodyLimit(t *testing.T) {
	const limit = 16

	tests := []struct {
		name       string
		body       string
		chunked    bool
		wantStatus int
	}{
		{"within limit", strings.Repeat("a", 10), false, http.StatusOK},
		{"declared too large", strings.Repeat("a", 20), false, http.StatusRequestEntityTooLarge},
		{"streamed too large", strings.Repeat("a", 20), true, http.StatusRequestEntityTooLarge},
	}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	h := httpx.RequestBodyLimit(limit)(inner)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(tt.body))
			if tt.chunked {
				req.ContentLength = -1
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	h := httpx.RateLimit(2)(http.HandlerFunc(okHandler))

	var last *httptest.ResponseRecorder
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/items", http.NoBody)
		req.RemoteAddr = "10.0.0.7:5555"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last.Code)
	}
	if last.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After")
	}
	if !strings.Contains(last.Body.String(), "rate limit exceeded") {
		t.Errorf("body = %s", last.Body.String())
	}
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name            string
		allowed         string
		wantOrigin      string
		wantCredentials string
	}{
		{"listed origin", "https://clinic.example.com", "https://clinic.example.com", "true"},
		{"wildcard", "*", "*", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.CORSMiddleware(tt.allowed)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodOptions, "/api/items/1", http.NoBody)
			req.Header.Set("Origin", "https://clinic.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type, Idempotency-Key")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if got := rr.Header().Get("Access-Control-Allow-Credentials"); got != tt.wantCredentials {
				t.Errorf("Allow-Credentials = %q, want %q", got, tt.wantCredentials)
			}
			if got := strings.ToLower(rr.Header().Get("Access-Control-Allow-Headers")); !strings.Contains(got, "idempotency-key") {
				t.Errorf("Allow-Headers = %q", got)
			}
		})
	}
}

func TestNewRouter_NilMiddlewares(t *testing.T) {
	r := httpx.NewRouter(httpx.ServerConfig{IsDevelopment: true}, httpx.Middlewares{})
	r.Get("/ping", okHandler)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", http.NoBody))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
