package kinetic

import "time"

const (
	// DefaultConnectTimeout bounds how long Connect waits for the TCP
	// dial to succeed.
	DefaultConnectTimeout = 10 * time.Second
	// DefaultHandshakeTimeout bounds how long Connect waits, after a
	// successful dial, for the server's unsolicited handshake status.
	DefaultHandshakeTimeout = 10 * time.Second
	// DefaultOperationTimeout is the deadline Execute assigns an
	// operation when the caller does not supply one explicitly.
	DefaultOperationTimeout = 30 * time.Second
	// DefaultDisconnectTimeout bounds how long graceful shutdown waits
	// for in-flight operations to drain before forcing the socket closed.
	DefaultDisconnectTimeout = 5 * time.Second
)

// Option configures a Session at construction, following the same
// functional-options shape as aznet's Listen/Dial options.
type Option func(*Config)

// Config holds the runtime settings for a Session. The zero value is
// never used directly; defaultConfig() supplies sane defaults and
// Connect applies Options on top of it.
type Config struct {
	logger  Logger
	metrics Metrics
	clock   Clock
	codec   Codec

	connectTimeout    time.Duration
	handshakeTimeout  time.Duration
	operationTimeout  time.Duration
	disconnectTimeout time.Duration

	// debug gates the fatal assertion on an undefined bus outcome; it
	// must never be enabled in a release build.
	debug bool
}

func defaultConfig() *Config {
	return &Config{
		logger:            NewNopLogger(),
		metrics:           NewDefaultMetrics(),
		clock:             RealClock{},
		codec:             DefaultCodec,
		connectTimeout:    DefaultConnectTimeout,
		handshakeTimeout:  DefaultHandshakeTimeout,
		operationTimeout:  DefaultOperationTimeout,
		disconnectTimeout: DefaultDisconnectTimeout,
	}
}

func applyOptions(opts []Option) *Config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// Validate reports whether the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.connectTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.handshakeTimeout <= 0 {
		return ErrInvalidConfig
	}
	if c.operationTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// WithLogger injects a leveled logging sink. The default is a no-op
// logger so the library is silent unless a caller opts in.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics injects a Metrics collector. The default tracks counters
// in-process with atomics and is never exported anywhere on its own.
func WithMetrics(m Metrics) Option {
	return func(c *Config) {
		if m != nil {
			c.metrics = m
		}
	}
}

// WithClock overrides the monotonic time source used for deadlines.
// Intended for deterministic tests of timeout behavior.
func WithClock(clk Clock) Option {
	return func(c *Config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithCodec overrides the protobuf codec used to marshal and unmarshal
// Command messages.
func WithCodec(codec Codec) Option {
	return func(c *Config) {
		if codec != nil {
			c.codec = codec
		}
	}
}

// WithConnectTimeout bounds how long Connect waits for the TCP dial
// itself to succeed.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

// WithHandshakeTimeout bounds how long Connect waits, after a successful
// dial, for the server's unsolicited handshake status to arrive.
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.handshakeTimeout = d
		}
	}
}

// WithOperationTimeout sets the default per-operation deadline used
// when Execute is not given an explicit one.
func WithOperationTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.operationTimeout = d
		}
	}
}

// WithDisconnectTimeout bounds how long Disconnect waits for pending
// operations to drain before it shuts the transport down unconditionally.
// Disconnect sends no logout message.
func WithDisconnectTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.disconnectTimeout = d
		}
	}
}

// WithDebugAssertions enables the fatal assertion on an undefined bus
// outcome. It exists for engine development only and must
// never be set in a production build.
func WithDebugAssertions(enabled bool) Option {
	return func(c *Config) {
		c.debug = enabled
	}
}
