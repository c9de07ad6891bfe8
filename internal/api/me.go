package api

import "net/http"

// Me returns the identity behind the presented access token.
func (a *API) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		pub, ok := requestIdentity(r)
		if !ok {
			writeFailure(w, http.StatusUnauthorized, "Invalid or missing access token")
			return
		}

		returnJSON(&pub, http.StatusOK, w)
	}
}
