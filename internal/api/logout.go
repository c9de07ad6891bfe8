package api

import (
	"net/http"

	"git.sr.ht/~jakintosh/sigil/internal/metrics"
)

// Logout clears the stored refresh hash for the authenticated identity and
// expires the auth cookies. It is idempotent; logging out twice is fine.
func (a *API) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		pub, ok := requestIdentity(r)
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Invalid or missing access token")
			return
		}

		if err := a.service.Logout(r.Context(), pub.ID); err != nil {
			a.writeError(w, r, err)
			return
		}

		metrics.Logouts.Inc()
		clearAuthCookies(w)
		w.WriteHeader(http.StatusNoContent)
	}
}
