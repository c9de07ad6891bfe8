package api

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"git.sr.ht/~jakintosh/sigil/internal/session"
)

func (a *API) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		users, err := a.service.Identities(r.Context())
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		returnJSON(users, http.StatusOK, w)
	}
}

func (a *API) GetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		id := mux.Vars(r)["id"]

		pub, err := a.service.Identity(r.Context(), id)
		if err != nil {
			// a malformed id and a missing identity look the same from
			// outside
			if errors.Is(err, session.ErrIdentityNotFound) ||
				errors.Is(err, session.ErrInvalidArgument) {
				writeFailure(w, http.StatusNotFound, "User not found")
				return
			}
			a.writeError(w, r, err)
			return
		}

		returnJSON(&pub, http.StatusOK, w)
	}
}
