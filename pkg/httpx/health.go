package httpx

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// HealthChecker is anything with a Ping: the database pool, the Redis
// client and the event bus.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthChecks lists what /health probes. A nil entry reports "disabled"
// and leaves the overall status alone.
type HealthChecks struct {
	Database HealthChecker
	Redis    HealthChecker
	EventBus HealthChecker
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Redis    string `json:"redis"`
	EventBus string `json:"event_bus"`
}

// HealthHandler pings every dependency concurrently. Any failure answers
// 503 with status "degraded".
func HealthHandler(checks HealthChecks) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		var resp healthResponse
		targets := []struct {
			checker HealthChecker
			result  *string
		}{
			{checks.Database, &resp.Database},
			{checks.Redis, &resp.Redis},
			{checks.EventBus, &resp.EventBus},
		}

		// Each goroutine writes only its own field; failures are reported
		// through the field rather than the group error.
		var g errgroup.Group
		for _, tg := range targets {
			g.Go(func() error {
				switch {
				case tg.checker == nil:
					*tg.result = "disabled"
				case tg.checker.Ping(ctx) != nil:
					*tg.result = "unreachable"
				default:
					*tg.result = "ok"
				}
				return nil
			})
		}
		_ = g.Wait()

		resp.Status = "ok"
		status := http.StatusOK
		for _, tg := range targets {
			if *tg.result == "unreachable" {
				resp.Status, status = "degraded", http.StatusServiceUnavailable
			}
		}
		w.Header().Set("Cache-Control", "no-store")
		JSON(w, status, resp)
	}
}
