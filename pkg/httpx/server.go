package httpx

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRateLimit      = 120
	defaultMaxBodyBytes   = 1 << 20
	defaultHandlerTimeout = 30 * time.Second
)

// ServerConfig holds the options for NewRouter. Zero limits take defaults.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is comma-separated; "*" allows any origin.
	CORSAllowedOrigins string
	// RateLimit is requests per minute per client IP.
	RateLimit      int
	MaxBodyBytes   int64
	HandlerTimeout time.Duration
}

// Middlewares are the process-specific layers NewRouter mounts ahead of
// the shared stack. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Tracing  func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the API middleware stack, outermost first:
// recovery, sentry, request id, tracing, request log, real ip, rate limit,
// cors, body limit, handler timeout, security headers.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.HandlerTimeout <= 0 {
		cfg.HandlerTimeout = defaultHandlerTimeout
	}

	r := chi.NewRouter()
	for _, m := range []func(http.Handler) http.Handler{mw.Recovery, mw.Sentry} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(middleware.RequestID)
	for _, m := range []func(http.Handler) http.Handler{mw.Tracing, mw.Logger} {
		if m != nil {
			r.Use(m)
		}
	}
	r.Use(
		middleware.RealIP,
		RateLimit(cfg.RateLimit),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.MaxBodyBytes),
		middleware.Timeout(cfg.HandlerTimeout),
		SecurityHeaders(cfg.IsDevelopment).Handler,
	)
	return r
}

// SecurityHeaders is the header policy for a JSON API that also serves
// spreadsheet downloads.
func SecurityHeaders(isDevelopment bool) *secure.Secure {
	return secure.New(secure.Options{
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		PermissionsPolicy:     "camera=(), microphone=(), geolocation=()",
		IsDevelopment:         isDevelopment,
	})
}

// RateLimit caps each client IP at perMinute requests and answers 429 with
// a JSON body and Retry-After.
func RateLimit(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Retry-After", strconv.Itoa(int(time.Minute/time.Second)))
			JSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
		}),
	)
}

// CORSMiddleware allows the listed origins to call the API, including the
// Idempotency-Key header on ledger writes. Session cookies are only sent
// cross-origin when the origins are listed explicitly.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id", "Idempotency-Key"},
		ExposedHeaders:   []string{"Content-Disposition", "Retry-After", "X-Request-Id"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           600,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit wraps the body in http.MaxBytesReader. Decoders see an
// *http.MaxBytesError once maxBytes is exceeded.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				JSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server. The write timeout leaves room for the
// handler timeout plus an XLSX export.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       2 * time.Minute,
		MaxHeaderBytes:    64 << 10,
	}
}
