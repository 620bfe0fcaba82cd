package web

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/flower/internal/settings"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// RouterOption configures the behaviour of NewRouter.
type RouterOption func(*routerConfig)

// WithAccessLog controls whether access logs are emitted.
func WithAccessLog(enabled bool) RouterOption {
	return func(cfg *routerConfig) {
		cfg.enableAccessLog = enabled
	}
}

// WithRateLimiter overrides the default request rate limiter (primarily for tests).
func WithRateLimiter(limiter rateLimiter) RouterOption {
	return func(cfg *routerConfig) {
		cfg.rateLimiter = limiter
	}
}

type routerConfig struct {
	enableAccessLog bool
	logger          *zap.Logger
	rateLimiter     rateLimiter
}

// NewRouter mounts the monitoring endpoints under the configured URL prefix
// and wraps them in the standard middleware chain. The authorize endpoint is
// served at the (already prefixed) login URL.
func NewRouter(handler *Handler, st *settings.Settings, logger *zap.Logger, opts ...RouterOption) http.Handler {
	cfg := routerConfig{
		enableAccessLog: true,
		logger:          logger,
		rateLimiter:     newTokenBucket(defaultRatePerSecond, defaultBurst),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	base := ""
	if st.URLPrefix != "" {
		base = "/" + strings.Trim(st.URLPrefix, "/")
	}

	mux := http.NewServeMux()
	mux.Handle("GET "+base+"/api/health", http.HandlerFunc(handler.handleHealth))
	mux.Handle("GET "+base+"/api/settings", http.HandlerFunc(handler.handleSettings))
	mux.Handle("GET "+st.LoginURL, http.HandlerFunc(handler.handleAuthorize))

	var root http.Handler = mux
	root = recoveryMiddleware(cfg.logger, root)
	if cfg.enableAccessLog {
		root = accessLogMiddleware(cfg.logger, root)
	}
	root = rateLimitMiddleware(cfg.rateLimiter, root)
	root = basicAuthMiddleware(st.BasicAuth, root)
	root = requestIDMiddleware(root)

	return root
}

// basicAuthMiddleware enforces HTTP basic auth against the configured
// user:password pairs. With no pairs configured it is a no-op.
func basicAuthMiddleware(pairs []string, next http.Handler) http.Handler {
	if len(pairs) == 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		if ok {
			supplied := user + ":" + password
			for _, pair := range pairs {
				if subtle.ConstantTimeCompare([]byte(pair), []byte(supplied)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="flower"`)
		writeError(w, http.StatusUnauthorized, "Unauthorized", "valid credentials required")
	})
}

func accessLogMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		requestID := requestIDFromContext(r.Context())
		logger.Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", duration),
			zap.String("request_id", requestID),
		)
	})
}

func recoveryMiddleware(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", zap.Any("error", rec))
				writeError(w, http.StatusInternalServerError, "Internal error", "unexpected server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = generateRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)

		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func generateRequestID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
