// Package metrics exposes operation counters in Prometheus format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigil_registrations_total",
		Help: "Registration attempts by result.",
	}, []string{"result"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigil_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	Refreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sigil_token_refreshes_total",
		Help: "Refresh token rotations by result.",
	}, []string{"result"})

	Logouts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sigil_logouts_total",
		Help: "Completed logouts.",
	})
)

const (
	ResultOK       = "ok"
	ResultDenied   = "denied"
	ResultConflict = "conflict"
	ResultError    = "error"
)

// Handler serves the default registry in text exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
