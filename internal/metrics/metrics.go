// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result label values.
const (
	ResultSuccess       = "success"
	ResultInvalid       = "invalid"
	ResultError         = "error"
	ResultNotConfigured = "not_configured"
	ResultUnauthorized  = "unauthorized"
)

// Metrics groups the application collectors.
type Metrics struct {
	registry *prometheus.Registry

	Submissions   *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	Logins        *prometheus.CounterVec
	StatusUpdates *prometheus.CounterVec
}

// New creates the collectors on a private registry, together with the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Name:      "contact_submissions_total",
			Help:      "Contact form submissions by result.",
		}, []string{"result"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Name:      "notifications_total",
			Help:      "New-contact notification attempts by result.",
		}, []string{"result"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Name:      "admin_logins_total",
			Help:      "Admin login attempts by result.",
		}, []string{"result"}),
		StatusUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leadform",
			Name:      "contact_status_updates_total",
			Help:      "Contact status changes by new status.",
		}, []string{"status"}),
	}
	reg.MustRegister(
		m.Submissions,
		m.Notifications,
		m.Logins,
		m.StatusUpdates,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
