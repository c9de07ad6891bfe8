package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"git.sr.ht/~jakintosh/sigil/internal/metrics"
)

func (a *API) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(a.requestLogger)

	r.Handle("/", a.Health()).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	auth := r.PathPrefix("/auth").Subrouter()
	auth.Handle("/register", a.Register()).Methods(http.MethodPost)
	auth.Handle("/login", a.Login()).Methods(http.MethodPost)
	auth.Handle("/refresh", a.Refresh()).Methods(http.MethodPost)
	auth.Handle("/logout", a.requireAccess(a.Logout())).Methods(http.MethodPost)
	auth.Handle("/me", a.requireAccess(a.Me())).Methods(http.MethodGet)

	users := r.PathPrefix("/users").Subrouter()
	users.Use(a.requireAccess)
	users.Handle("", a.ListUsers()).Methods(http.MethodGet)
	users.Handle("/{id}", a.GetUser()).Methods(http.MethodGet)

	return r
}
