package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	RegistrationsDeleted prometheus.Counter
	ValidationFailures   prometheus.Counter
	AdminLogins          *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. Tests pass a fresh
// prometheus.NewRegistry() so repeated construction does not panic.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "registrations_created_total",
			Help: "Total number of registrations accepted from the public form",
		}),
		RegistrationsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "registrations_deleted_total",
			Help: "Total number of delete calls made by an authorized admin",
		}),
		ValidationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "registration_validation_failures_total",
			Help: "Total number of registration submissions rejected by validation",
		}),
		AdminLogins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
	}
}

// NewNop returns metrics bound to a private registry, for tests and tools
// that do not expose /metrics.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) IncrementRegistrationsCreated() {
	m.RegistrationsCreated.Inc()
}

func (m *Metrics) IncrementRegistrationsDeleted() {
	m.RegistrationsDeleted.Inc()
}

func (m *Metrics) IncrementValidationFailures() {
	m.ValidationFailures.Inc()
}

func (m *Metrics) IncrementAdminLogin(success bool) {
	result := "failure"
	if success {
		result = "success"
	}
	m.AdminLogins.WithLabelValues(result).Inc()
}
