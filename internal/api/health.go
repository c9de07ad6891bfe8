package api

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *API) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnJSON(&HealthResponse{
			Status:    "ok",
			Message:   "sigil is running",
			Timestamp: time.Now().UTC(),
		}, http.StatusOK, w)
	}
}
