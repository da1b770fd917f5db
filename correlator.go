package kinetic

import (
	"sync"
	"time"

	"github.com/kineticgo/kinetic/kproto"
)

// replyData is what the Transport hands the Correlator about one
// delivered reply: the unmarshaled envelope and command, the value
// payload, and whether the HMAC check passed. hmacOK is false exactly
// when the Authenticator rejected the envelope; the reply is still
// routed to the matching operation so a failed check reaches the caller
// as part of its result rather than being swallowed.
type replyData struct {
	msg    *kproto.Message
	cmd    *kproto.Command
	value  []byte
	hmacOK bool
}

// completeFunc is the Operation Controller's HandleResult, injected into
// the Correlator so match/expire/drain never need to know about closures,
// post-hooks, or the public Status taxonomy directly.
type completeFunc func(op *Operation, outcome busOutcome, reply *replyData)

type pendingEntry struct {
	op       *Operation
	deadline time.Time
	cancel   chan struct{}
}

// Correlator is the per-socket registry matching outgoing sequence
// numbers to in-flight operations, with per-request deadlines.
// Its map is protected by a single mutex; callbacks are never invoked
// while that mutex is held.
type Correlator struct {
	mu       sync.Mutex
	entries  map[int64]*pendingEntry
	clock    Clock
	complete completeFunc
}

// NewCorrelator builds a Correlator that reports completions through
// complete.
func NewCorrelator(clock Clock, complete completeFunc) *Correlator {
	return &Correlator{
		entries:  make(map[int64]*pendingEntry),
		clock:    clock,
		complete: complete,
	}
}

// Register inserts a pending entry for seq and arms its deadline timer.
func (c *Correlator) Register(seq int64, op *Operation, deadline time.Time) {
	entry := &pendingEntry{op: op, deadline: deadline, cancel: make(chan struct{})}

	c.mu.Lock()
	c.entries[seq] = entry
	c.mu.Unlock()

	go c.watch(seq, entry)
}

// watch arms the deadline for one registration. Closing entry.cancel
// (done by Match or Drain once they've popped the entry) stops the
// watcher without it ever calling expire.
func (c *Correlator) watch(seq int64, entry *pendingEntry) {
	remaining := entry.deadline.Sub(c.clock.Now())
	if remaining < 0 {
		remaining = 0
	}
	select {
	case <-entry.cancel:
		return
	case <-c.clock.After(remaining):
		c.expire(seq)
	}
}

// pop removes and returns the entry for seq, if any. match and expire
// both funnel through pop so the map mutation that decides a match/expire
// race for the same entry happens exactly once under the lock — whichever
// caller's pop succeeds is the sole winner.
func (c *Correlator) pop(seq int64) (*pendingEntry, bool) {
	c.mu.Lock()
	entry, ok := c.entries[seq]
	if ok {
		delete(c.entries, seq)
	}
	c.mu.Unlock()
	return entry, ok
}

// Match finds the pending entry for seq and completes it with outcome
// and reply. It returns false if no entry exists (a late timeout, or a
// genuinely unsolicited reply), in which case the caller must route the
// frame to HandleUnexpectedResponse instead.
func (c *Correlator) Match(seq int64, outcome busOutcome, reply *replyData) bool {
	entry, ok := c.pop(seq)
	if !ok {
		return false
	}
	close(entry.cancel)
	c.complete(entry.op, outcome, reply)
	return true
}

// Cancel removes the pending entry for seq without invoking complete.
// It is used by Transport.Submit to deregister an operation after a
// synchronous write failure, which reports SOCKET_ERROR directly to
// the caller instead of through a completion closure.
func (c *Correlator) Cancel(seq int64) bool {
	entry, ok := c.pop(seq)
	if !ok {
		return false
	}
	close(entry.cancel)
	return true
}

// expire is invoked by a registration's own watcher when its deadline
// elapses before a reply arrives.
func (c *Correlator) expire(seq int64) {
	entry, ok := c.pop(seq)
	if !ok {
		return
	}
	c.complete(entry.op, outcomeRxTimeout, nil)
}

// Drain removes and completes every pending entry with outcome,
// typically outcomeTxFailure during session shutdown.
func (c *Correlator) Drain(outcome busOutcome) {
	c.mu.Lock()
	entries := c.entries
	c.entries = make(map[int64]*pendingEntry)
	c.mu.Unlock()

	for _, entry := range entries {
		close(entry.cancel)
		c.complete(entry.op, outcome, nil)
	}
}

// Len reports the number of pending entries; used by tests asserting
// the registry empties out once callbacks fire.
func (c *Correlator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
