// Package api is the HTTP boundary around the session core. Handlers parse
// the transport (JSON bodies, cookies, bearer headers), call the session
// manager, and map its sentinel errors onto HTTP statuses. The core never
// sees a request object.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"git.sr.ht/~jakintosh/sigil/internal/identity"
	"git.sr.ht/~jakintosh/sigil/internal/session"
	"git.sr.ht/~jakintosh/sigil/internal/tokens"
)

type API struct {
	service *session.Manager
	tokens  *tokens.Manager
	logger  *zap.Logger
}

func New(
	service *session.Manager,
	tokenManager *tokens.Manager,
	logger *zap.Logger,
) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		service: service,
		tokens:  tokenManager,
		logger:  logger,
	}
}

// AuthResponse is returned by register, login, and refresh. The token pair
// also travels as httpOnly cookies for browser clients.
type AuthResponse struct {
	User         identity.Public `json:"user"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeFailure(w, http.StatusBadRequest, "bad json request")
		return false
	}
	return true
}

func returnJSON(data any, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already out; nothing left to do
		return
	}
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	returnJSON(&errorResponse{
		Success:    false,
		StatusCode: status,
		Message:    message,
	}, status, w)
}

// writeError maps session sentinel errors onto statuses. Unauthorized
// responses never reveal which factor failed; everything unrecognized is a
// logged 500 with a generic message.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidArgument):
		writeFailure(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, session.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, session.ErrInvalidRefreshToken):
		writeFailure(w, http.StatusUnauthorized, "Invalid refresh token")
	case errors.Is(err, session.ErrEmailExists):
		writeFailure(w, http.StatusConflict, "User with this email already exists")
	default:
		// includes ErrIdentityNotFound during an update: the identity
		// vanished between check and write, an invariant violation
		a.logger.Error("internal error",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeFailure(w, http.StatusInternalServerError, "Internal server error")
	}
}

// validationMessage strips the sentinel prefix so the client sees only the
// field-level detail.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := session.ErrInvalidArgument.Error() + ": "
	return strings.TrimPrefix(msg, prefix)
}
