package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/vetclinic/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	up := &stubChecker{}
	down := &stubChecker{err: errors.New("conn refused")}

	tests := []struct {
		name       string
		checks     httpx.HealthChecks
		wantStatus int
		want       map[string]string
	}{
		{
			name:       "all healthy",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: up},
			wantStatus: http.StatusOK,
			want:       map[string]string{"status": "ok", "database": "ok", "redis": "ok", "event_bus": "ok"},
		},
		{
			name:       "database down",
			checks:     httpx.HealthChecks{Database: down, Redis: up, EventBus: up},
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "database": "unreachable"},
		},
		{
			name:       "redis down",
			checks:     httpx.HealthChecks{Database: up, Redis: down, EventBus: up},
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "redis": "unreachable"},
		},
		{
			name:       "event bus down",
			checks:     httpx.HealthChecks{Database: up, Redis: up, EventBus: down},
			wantStatus: http.StatusServiceUnavailable,
			want:       map[string]string{"status": "degraded", "event_bus": "unreachable"},
		},
		{
			name:       "cache disabled",
			checks:     httpx.HealthChecks{Database: up, EventBus: up},
			wantStatus: http.StatusOK,
			want:       map[string]string{"status": "ok", "redis": "disabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			httpx.HealthHandler(tt.checks).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status code = %d, want %d", rr.Code, tt.wantStatus)
			}
			var resp map[string]string
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			for k, v := range tt.want {
				if resp[k] != v {
					t.Errorf("%s = %q, want %q", k, resp[k], v)
				}
			}
		})
	}
}
