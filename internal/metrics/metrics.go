package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "league"

type Metrics struct {
	Upserts       *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Certificates  prometheus.Counter
	Logins        *prometheus.CounterVec
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Upserts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_upserts_total",
			Help:      "Player upserts by outcome (created, updated, rejected).",
		}, []string{"outcome"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_status_transitions_total",
			Help:      "Persisted status changes.",
		}, []string{"from", "to"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Player notifications by kind and result.",
		}, []string{"kind", "result"}),
		Certificates: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "certificates_rendered_total",
			Help:      "Certificate PDFs rendered.",
		}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
	}
}

// Nop returns metrics bound to a throwaway registry, for tests.
func Nop() *Metrics {
	return New(prometheus.NewRegistry())
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
