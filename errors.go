package kinetic

import "errors"

// Programming-error values, returned synchronously rather than through a
// completion closure. These are never retried and never appear in the
// Status taxonomy.
var (
	// ErrInvalidConfig is returned when Config.Validate fails.
	ErrInvalidConfig = errors.New("kinetic: invalid configuration")
	// ErrNilSession is returned by CreateOperation when session is nil.
	ErrNilSession = errors.New("kinetic: session is nil")
	// ErrNotConnected is returned by CreateOperation when the session
	// has no connection (Connect was never called or it failed).
	ErrNotConnected = errors.New("kinetic: session has no connection")
	// ErrSessionClosed is returned by CreateOperation once the session
	// has been poisoned or disconnected; no further submissions succeed
	// until the session is discarded and recreated.
	ErrSessionClosed = errors.New("kinetic: session is closed")
	// ErrHandshakeTimeout is returned by Connect when connectionReady
	// is not latched before the handshake timeout (or Connect's ctx)
	// elapses.
	ErrHandshakeTimeout = errors.New("kinetic: timed out waiting for connection handshake")
)
