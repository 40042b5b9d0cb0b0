package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/logging"
	"github.com/bharat3214/Genei/internal/server/auth"
	"github.com/bharat3214/Genei/internal/server/metrics"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserIDFromContext returns the account id stored by Authenticate.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// Authenticate resolves the bearer token to an account id and rejects the
// request with 401 when it is missing or invalid.
func Authenticate(authn auth.Authenticator) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if header == "" {
				respondError(w, http.StatusUnauthorized, "Missing authorization header")
				return
			}
			token, ok := strings.CutPrefix(header, common.BearerPrefix)
			if !ok || token == "" {
				respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			userID, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, common.ErrTokenExpired) {
					respondError(w, http.StatusUnauthorized, "Token has expired")
				} else {
					respondError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			ctx = logging.ContextWith(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLogger tags the request context with its request id, so every entry
// logged while serving it carries the id, and logs one line per request once
// it has been served.
func RequestLogger(logger logging.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(logging.ContextWith(r.Context(), "request_id", middleware.GetReqID(r.Context())))

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote_addr", r.RemoteAddr,
			)
		})
	}
}

// Metrics records request counts and latency by route pattern, so ids in
// paths do not explode label cardinality.
func Metrics(c *metrics.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			c.ObserveHTTP(r.Method, route, status, time.Since(start))
		})
	}
}
