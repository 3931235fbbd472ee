package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the access orchestrator.
type Metrics struct {
	Requests      *prometheus.CounterVec
	AuditFailures prometheus.Counter
	SagaDuration  prometheus.Histogram
}

// New creates a Metrics instance with all orchestrator metrics registered.
func New() *Metrics {
	return &Metrics{
		Requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "accessdesk_requests_total",
			Help: "Access requests by operation, application and result code",
		}, []string{"operation", "application", "result"}),
		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "accessdesk_audit_failures_total",
			Help: "Ledger intent or outcome writes that failed",
		}),
		SagaDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "accessdesk_mutation_duration_seconds",
			Help:    "Duration of the intent-act-outcome sequence for mutations",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveRequest records one completed request.
func (m *Metrics) ObserveRequest(operation, application, result string) {
	m.Requests.WithLabelValues(operation, application, result).Inc()
}

// IncrementAuditFailure records a failed ledger write.
func (m *Metrics) IncrementAuditFailure() {
	m.AuditFailures.Inc()
}

// ObserveSaga records the duration of a mutation sequence. Call with
// time.Now() from the start of the operation.
func (m *Metrics) ObserveSaga(start time.Time) {
	m.SagaDuration.Observe(time.Since(start).Seconds())
}
