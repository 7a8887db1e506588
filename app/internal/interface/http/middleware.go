package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxSessionKey struct{}

var (
	errUnauthenticated = errors.New("unauthenticated")
	errInvalidSubtotal = errors.New("subtotal must be a non-negative number")
	errInvalidLimit    = errors.New("limit must be a non-negative integer")
)

// requestLogger attaches the request id to the log context and logs one
// line per request once the handler has finished.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := a.log.WithRequestID(r.Context(), chimw.GetReqID(r.Context()))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		route := ""
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			route = rctx.RoutePattern()
		}
		if a.requestMetrics != nil {
			a.requestMetrics.ObserveRequest(r.Method, route, status, elapsed)
		}

		ctx = a.log.WithFields(ctx, map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": elapsed.Milliseconds(),
			"bytes":       ww.BytesWritten(),
		})
		if status >= http.StatusInternalServerError {
			a.log.Warn(ctx, "http.request", nil)
			return
		}
		a.log.Info(ctx, "http.request")
	})
}

// sessionMiddleware resolves the guest session from the bearer token.
func (a *API) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		sessionID, err := a.sessionSvc.Resolve(r.Context(), token)
		if err != nil {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sessionID)
		ctx = a.log.WithSessionID(ctx, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(ctxSessionKey{}).(string); ok {
		return id
	}
	return ""
}
