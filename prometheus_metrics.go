package kinetic

import "github.com/prometheus/client_golang/prometheus"

// PrometheusMetrics implements Metrics on top of prometheus client
// counters, for callers who want session statistics exported alongside
// the rest of their process's metrics rather than polled via Get*.
type PrometheusMetrics struct {
	submitted *prometheus.CounterVec
	completed *prometheus.CounterVec
	bytesSent prometheus.Counter
	bytesRecv prometheus.Counter
	hmacFail  prometheus.Counter
}

// NewPrometheusMetrics builds a PrometheusMetrics and registers its
// collectors against reg. Pass prometheus.DefaultRegisterer to use the
// global registry.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) *PrometheusMetrics {
	m := &PrometheusMetrics{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinetic_operations_submitted_total",
			Help:      "Operations submitted to the transport.",
		}, nil),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinetic_operations_completed_total",
			Help:      "Operations completed, labeled by final status.",
		}, []string{"status"}),
		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinetic_bytes_sent_total",
			Help:      "Bytes written to the wire across all PDUs.",
		}),
		bytesRecv: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinetic_bytes_received_total",
			Help:      "Bytes read from the wire across all PDUs.",
		}),
		hmacFail: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kinetic_hmac_failures_total",
			Help:      "Replies rejected for an HMAC mismatch.",
		}),
	}
	reg.MustRegister(m.submitted, m.completed, m.bytesSent, m.bytesRecv, m.hmacFail)
	return m
}

func (m *PrometheusMetrics) IncrementOperationsSubmitted() { m.submitted.WithLabelValues().Inc() }

func (m *PrometheusMetrics) IncrementOperationsCompleted(status Status) {
	m.completed.WithLabelValues(status.String()).Inc()
}

func (m *PrometheusMetrics) IncrementBytesSent(n int64)     { m.bytesSent.Add(float64(n)) }
func (m *PrometheusMetrics) IncrementBytesReceived(n int64) { m.bytesRecv.Add(float64(n)) }
func (m *PrometheusMetrics) IncrementHMACFailures()         { m.hmacFail.Inc() }

// GetOperationsSubmitted, GetOperationsCompleted, GetBytesSent,
// GetBytesReceived and GetHMACFailures are not supported by the
// Prometheus-backed collector: totals live in the registry, scraped
// over HTTP, not polled in-process. Callers that need both push and
// pull should wrap DefaultMetrics and PrometheusMetrics together.
func (m *PrometheusMetrics) GetOperationsSubmitted() int64 { return -1 }
func (m *PrometheusMetrics) GetOperationsCompleted() int64 { return -1 }
func (m *PrometheusMetrics) GetBytesSent() int64           { return -1 }
func (m *PrometheusMetrics) GetBytesReceived() int64       { return -1 }
func (m *PrometheusMetrics) GetHMACFailures() int64        { return -1 }
