package api

import (
	"errors"
	"net/http"

	"git.sr.ht/~jakintosh/sigil/internal/metrics"
	"git.sr.ht/~jakintosh/sigil/internal/session"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req RegisterRequest
		if !decodeRequest(&req, w, r) {
			metrics.Registrations.WithLabelValues(metrics.ResultError).Inc()
			return
		}

		pub, pair, err := a.service.Register(r.Context(), req.Email, req.Name, req.Password)
		if err != nil {
			metrics.Registrations.WithLabelValues(registerResult(err)).Inc()
			a.writeError(w, r, err)
			return
		}

		metrics.Registrations.WithLabelValues(metrics.ResultOK).Inc()
		setAuthCookies(w, pair)
		returnJSON(&AuthResponse{
			User:         pub,
			AccessToken:  pair.Access,
			RefreshToken: pair.Refresh,
		}, http.StatusCreated, w)
	}
}

func registerResult(err error) string {
	switch {
	case errors.Is(err, session.ErrEmailExists):
		return metrics.ResultConflict
	case errors.Is(err, session.ErrInvalidArgument):
		return metrics.ResultDenied
	default:
		return metrics.ResultError
	}
}
