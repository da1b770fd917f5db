package kinetic

import (
	"context"
	"time"
)

const (
	// DefaultReconnectFastInterval is the first retry delay ConnectWithRetry
	// uses after a failed dial attempt.
	DefaultReconnectFastInterval = 100 * time.Millisecond
	// DefaultReconnectSteadyInterval is the retry delay ConnectWithRetry
	// backs off to and holds once the fast interval has doubled past it.
	DefaultReconnectSteadyInterval = 5 * time.Second
)

// backoff is an exponential back-off sleeper, adapted from aznet's
// AdaptivePoll: it starts at fast, doubles on every Wait up to steady,
// and resets to fast whenever the caller calls Reset (a successful
// attempt). Unlike the polling use it was built for, Wait here respects
// ctx cancellation instead of blocking unconditionally.
type backoff struct {
	cur    time.Duration
	fast   time.Duration
	steady time.Duration
}

func newBackoff(fast, steady time.Duration) *backoff {
	if fast <= 0 {
		fast = DefaultReconnectFastInterval
	}
	if steady < fast {
		steady = fast
	}
	return &backoff{cur: fast, fast: fast, steady: steady}
}

func (b *backoff) wait(ctx context.Context, clock Clock) error {
	select {
	case <-clock.After(b.cur):
	case <-ctx.Done():
		return ctx.Err()
	}
	if b.cur < b.steady {
		b.cur *= 2
		if b.cur > b.steady {
			b.cur = b.steady
		}
	}
	return nil
}

func (b *backoff) reset() { b.cur = b.fast }

// ConnectWithRetry calls Connect repeatedly, backing off exponentially
// between attempts, until it succeeds or ctx is done. It exists for
// callers reconnecting to a drive that may still be rebooting; Connect
// itself stays a single attempt, since a failure against a live drive is
// usually a programming error or a bad endpoint, not something worth
// retrying blindly.
func ConnectWithRetry(ctx context.Context, endpoint string, identity int64, key []byte, clusterVersion int64, opts ...Option) (*Session, error) {
	cfg := applyOptions(opts)
	b := newBackoff(DefaultReconnectFastInterval, DefaultReconnectSteadyInterval)

	for {
		session, err := Connect(ctx, endpoint, identity, key, clusterVersion, opts...)
		if err == nil {
			return session, nil
		}
		cfg.logger.Warnf("kinetic: connect to %s failed, retrying: %v", endpoint, err)

		if waitErr := b.wait(ctx, cfg.clock); waitErr != nil {
			return nil, err
		}
	}
}
