package api

import (
	"errors"
	"net/http"

	"git.sr.ht/~jakintosh/sigil/internal/metrics"
	"git.sr.ht/~jakintosh/sigil/internal/session"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		var req LoginRequest
		if !decodeRequest(&req, w, r) {
			metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
			return
		}

		pub, pair, err := a.service.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, session.ErrInvalidCredentials) {
				metrics.Logins.WithLabelValues(metrics.ResultDenied).Inc()
			} else {
				metrics.Logins.WithLabelValues(metrics.ResultError).Inc()
			}
			a.writeError(w, r, err)
			return
		}

		metrics.Logins.WithLabelValues(metrics.ResultOK).Inc()
		setAuthCookies(w, pair)
		returnJSON(&AuthResponse{
			User:         pub,
			AccessToken:  pair.Access,
			RefreshToken: pair.Refresh,
		}, http.StatusOK, w)
	}
}
