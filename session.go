package kinetic

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// Session is the client-side handle to a single authenticated
// connection to one drive. It holds the credentials,
// the assigned connection identifier, the sequence counter, the
// transport handle, and the connectionReady gate. A Session corresponds
// to exactly one remote endpoint; the library does not model clustering.
type Session struct {
	endpoint       string
	identity       int64
	clusterVersion int64
	auth           *Authenticator

	cfg *Config

	transport  *Transport
	correlator *Correlator

	connectionID atomic.Int64
	nextSeq      atomic.Int64

	readyOnce sync.Once
	ready     chan struct{}
	readyErr  error

	poisoned  atomic.Bool
	closeOnce sync.Once
	closed    atomic.Bool
}

// Connect opens a TCP connection to endpoint, starts the transport, and
// waits for the server's unsolicited handshake status (which carries the
// session's connectionID). The dial itself is bounded by the configured
// connect timeout; the wait for the handshake reply that follows a
// successful dial is bounded separately by the configured handshake
// timeout. If the handshake does not complete in time it returns an error
// wrapping ErrHandshakeTimeout; failures are reported as Go errors, never
// as a Status such as StatusConnectionError.
func Connect(ctx context.Context, endpoint string, identity int64, key []byte, clusterVersion int64, opts ...Option) (*Session, error) {
	cfg := applyOptions(opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.connectTimeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(dialCtx, "tcp", endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConnected, err)
	}

	s := &Session{
		endpoint:       endpoint,
		identity:       identity,
		clusterVersion: clusterVersion,
		auth:           NewAuthenticator(key),
		cfg:            cfg,
		ready:          make(chan struct{}),
	}
	s.nextSeq.Store(1)

	s.correlator = NewCorrelator(cfg.clock, s.handleResult)
	s.transport = newTransport(s, conn)
	s.transport.Start()

	handshakeCtx, handshakeCancel := context.WithTimeout(ctx, cfg.handshakeTimeout)
	defer handshakeCancel()

	select {
	case <-s.ready:
		if s.readyErr != nil {
			s.transport.Shutdown()
			return nil, s.readyErr
		}
		return s, nil
	case <-handshakeCtx.Done():
		s.transport.Shutdown()
		return nil, fmt.Errorf("%w: %v", ErrHandshakeTimeout, handshakeCtx.Err())
	}
}

// latchReady is called exactly once, by handleUnexpectedResponse, when
// the server's unsolicited status carrying a connectionID arrives.
func (s *Session) latchReady(connectionID int64) {
	s.readyOnce.Do(func() {
		s.connectionID.Store(connectionID)
		close(s.ready)
	})
}

// NextSequence returns and increments the per-session counter. It is
// monotonically increasing and, at 64 bits, never wraps during a
// session's lifetime.
func (s *Session) NextSequence() int64 {
	return s.nextSeq.Add(1) - 1
}

// ConnectionID returns the identifier the server assigned during the
// handshake.
func (s *Session) ConnectionID() int64 { return s.connectionID.Load() }

// ClusterVersion returns the cluster version this session authenticated
// against.
func (s *Session) ClusterVersion() int64 { return s.clusterVersion }

// Identity returns the session's client identity.
func (s *Session) Identity() int64 { return s.identity }

// IsReady reports whether the handshake has completed.
func (s *Session) IsReady() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// IsPoisoned reports whether a partial-frame write failure has put the
// session into its terminal FAILED state.
func (s *Session) IsPoisoned() bool { return s.poisoned.Load() }

func (s *Session) poison() { s.poisoned.Store(true) }

// Disconnect marks the session closed, drains every still-pending
// operation with SOCKET_ERROR (waiting at most the disconnect timeout for
// their completions), then shuts the transport down. It is idempotent.
func (s *Session) Disconnect() error {
	var err error
	s.closeOnce.Do(func() {
		s.closed.Store(true)

		done := make(chan struct{})
		go func() {
			defer close(done)
			s.correlator.Drain(outcomeTxFailure)
		}()
		select {
		case <-done:
		case <-time.After(s.cfg.disconnectTimeout):
		}

		err = s.transport.Shutdown()
	})
	return err
}

// IsClosed reports whether Disconnect has been called.
func (s *Session) IsClosed() bool { return s.closed.Load() }
