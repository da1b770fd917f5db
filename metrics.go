package kinetic

import "sync/atomic"

// Metrics is an interface for tracking session-level statistics.
// The engine calls Increment* as operations move through the Transport
// and Correlator; a collector reads back via Get*. Re-scoped from
// aznet's blob-transaction counters to PDU/operation counters.
type Metrics interface {
	IncrementOperationsSubmitted()
	IncrementOperationsCompleted(status Status)
	IncrementBytesSent(n int64)
	IncrementBytesReceived(n int64)
	IncrementHMACFailures()

	GetOperationsSubmitted() int64
	GetOperationsCompleted() int64
	GetBytesSent() int64
	GetBytesReceived() int64
	GetHMACFailures() int64
}

// DefaultMetrics implements Metrics with atomic counters, with no
// external dependency and no export path of its own.
type DefaultMetrics struct {
	operationsSubmitted int64
	operationsCompleted int64
	bytesSent           int64
	bytesReceived       int64
	hmacFailures        int64
}

// NewDefaultMetrics creates a new DefaultMetrics instance.
func NewDefaultMetrics() *DefaultMetrics { return &DefaultMetrics{} }

func (m *DefaultMetrics) IncrementOperationsSubmitted() {
	atomic.AddInt64(&m.operationsSubmitted, 1)
}
func (m *DefaultMetrics) IncrementOperationsCompleted(Status) {
	atomic.AddInt64(&m.operationsCompleted, 1)
}
func (m *DefaultMetrics) IncrementBytesSent(n int64)     { atomic.AddInt64(&m.bytesSent, n) }
func (m *DefaultMetrics) IncrementBytesReceived(n int64) { atomic.AddInt64(&m.bytesReceived, n) }
func (m *DefaultMetrics) IncrementHMACFailures()         { atomic.AddInt64(&m.hmacFailures, 1) }

func (m *DefaultMetrics) GetOperationsSubmitted() int64 {
	return atomic.LoadInt64(&m.operationsSubmitted)
}
func (m *DefaultMetrics) GetOperationsCompleted() int64 {
	return atomic.LoadInt64(&m.operationsCompleted)
}
func (m *DefaultMetrics) GetBytesSent() int64     { return atomic.LoadInt64(&m.bytesSent) }
func (m *DefaultMetrics) GetBytesReceived() int64 { return atomic.LoadInt64(&m.bytesReceived) }
func (m *DefaultMetrics) GetHMACFailures() int64  { return atomic.LoadInt64(&m.hmacFailures) }
