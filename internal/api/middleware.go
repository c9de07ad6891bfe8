package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
	"git.sr.ht/~jakintosh/sigil/internal/session"
)

type contextKey int

const identityKey contextKey = iota

// requestIdentity returns the authenticated identity placed in the request
// context by requireAccess.
func requestIdentity(r *http.Request) (identity.Public, bool) {
	pub, ok := r.Context().Value(identityKey).(identity.Public)
	return pub, ok
}

// requireAccess authenticates the request with an access token from the
// Authorization header or the access_token cookie, resolves the subject to
// a live identity, and injects it into the request context.
func (a *API) requireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoded := bearerToken(r)
		if encoded == "" {
			if c, err := r.Cookie(accessCookie); err == nil {
				encoded = c.Value
			}
		}
		if encoded == "" {
			writeFailure(w, http.StatusUnauthorized, "Invalid or missing access token")
			return
		}

		claims, err := a.tokens.Parse(encoded)
		if err != nil {
			writeFailure(w, http.StatusUnauthorized, "Invalid or missing access token")
			return
		}

		// the subject must still resolve: a deleted identity's tokens die
		// with it
		pub, err := a.service.Identity(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, session.ErrIdentityNotFound) ||
				errors.Is(err, session.ErrInvalidArgument) {
				writeFailure(w, http.StatusUnauthorized, "Invalid or missing access token")
				return
			}
			a.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, pub)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return token
	}
	return ""
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// requestLogger logs each request with latency and request id metadata.
// Bodies are never logged; they can carry credentials.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("request_id", requestID),
			zap.Int("status", rec.status),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("latency", time.Since(start)),
		}
		switch {
		case rec.status >= 500:
			a.logger.Error("http_request", fields...)
		case rec.status >= 400:
			a.logger.Warn("http_request", fields...)
		default:
			a.logger.Info("http_request", fields...)
		}
	})
}
