package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/udisondev/hunters/internal/logger"
)

// HeaderAPIKey carries the client API key.
const HeaderAPIKey = "X-API-Key"

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// MaxAPIKeyLen is the bcrypt input limit; longer keys are rejected outright
// because bcrypt ignores everything past it.
const MaxAPIKeyLen = 72

// PublicPaths skip API key checks.
var PublicPaths = []string{"/healthz", "/readyz", "/metrics"}

// RequestIDMiddleware puts a request ID into the context and the response headers.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

// AuthMiddleware validates X-API-Key against a bcrypt hash. Empty hash disables auth.
// The first key that passes is remembered and later compared in constant time,
// so bcrypt runs until the configured key has been seen once.
func AuthMiddleware(apiKeyHash string) func(http.Handler) http.Handler {
	var accepted atomic.Pointer[[]byte]

	return func(next http.Handler) http.Handler {
		if apiKeyHash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			key := []byte(r.Header.Get(HeaderAPIKey))
			if known := accepted.Load(); known != nil && subtle.ConstantTimeCompare(*known, key) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) == 0 || len(key) > MaxAPIKeyLen ||
				bcrypt.CompareHashAndPassword([]byte(apiKeyHash), key) != nil {
				logger.FromContext(r.Context()).Warn("api key rejected",
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", len(key) > 0)
				respondError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
				return
			}
			accepted.Store(&key)
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs every request at debug level, errors at warn.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		level := slog.LevelDebug
		if rec.status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.FromContext(r.Context()).Log(r.Context(), level, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

func loggerFor(r *http.Request) *slog.Logger {
	return logger.FromContext(r.Context())
}
