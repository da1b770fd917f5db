package kinetic

import (
	"context"

	"github.com/kineticgo/kinetic/kproto"
)

// CreateOperation allocates a new Operation bound to this session. It
// fails fast if the session has no usable connection, mirroring the
// original controller's refusal to hand out operations on a dead
// session.
func (s *Session) CreateOperation() (*Operation, error) {
	if s == nil {
		return nil, ErrNilSession
	}
	if s.IsClosed() || s.IsPoisoned() {
		return nil, ErrSessionClosed
	}
	if !s.IsReady() {
		return nil, ErrNotConnected
	}
	return newOperation(s), nil
}

// Execute submits op and reports its outcome. When completion is nil,
// Execute blocks until the reply arrives, the operation times out, or
// ctx is done, and returns the resulting Status directly — the
// "blocking" calling convention. When completion is
// non-nil, Execute returns as soon as the frame is written (or fails to
// be), and completion fires later from the Transport's read-loop
// goroutine, or from the Correlator's deadline watcher on a timeout —
// the "callback-driven" convention. Once the frame has been written the
// completion closure, if any, runs exactly once; when the submission
// fails synchronously it never runs and Execute returns the failure.
func (s *Session) Execute(ctx context.Context, op *Operation, completion CompletionFunc) Status {
	deadline := op.Deadline
	if deadline.IsZero() {
		deadline = s.cfg.clock.Now().Add(s.cfg.operationTimeout)
	}

	if completion == nil {
		done := make(chan CompletionResult, 1)
		op.completion = func(result CompletionResult) { done <- result }

		_, status := s.transport.Submit(op, deadline)
		if status != StatusSuccess {
			return status
		}

		select {
		case result := <-done:
			return result.Status
		case <-ctx.Done():
			return StatusOperationTimedOut
		}
	}

	op.completion = completion
	_, status := s.transport.Submit(op, deadline)
	return status
}

// Submit is the convenience entry point most callers use instead of
// CreateOperation/Execute directly: it builds the command from builder,
// wires the resulting post-hook onto a fresh Operation, and executes
// it. Returns the finished Operation (so a caller's post-hook can read
// Response/ResponseValue off it) alongside the Status Execute reported.
func (s *Session) Submit(ctx context.Context, builder CommandBuilder, completion CompletionFunc) (*Operation, Status) {
	op, err := s.CreateOperation()
	if err != nil {
		return nil, StatusInvalid
	}

	cmd, value, hook, err := builder.Build(s)
	if err != nil {
		return nil, StatusInvalid
	}
	op.Request = cmd
	op.Value = value
	op.postHook = hook

	status := s.Execute(ctx, op, completion)
	return op, status
}

// handleResult is the Correlator's completeFunc for this session
// (wired in Connect via NewCorrelator). It converts the transport-level
// outcome, or a failed HMAC check, into a public Status, runs the
// operation's post-hook, updates metrics, and invokes the completion
// closure exactly once.
func (s *Session) handleResult(op *Operation, outcome busOutcome, reply *replyData) {
	var status Status
	var result CompletionResult

	switch {
	case reply != nil && !reply.hmacOK:
		// The original Kinetic C client stamps DATA_ERROR into the reply
		// but still reports success to the caller — a known bug. Here the
		// failed check is surfaced as the operation's status instead.
		status = StatusDataError
		op.response = reply.cmd
		op.responseValue = reply.value
		result.Response = reply.cmd
		result.Value = reply.value
	case reply != nil:
		if reply.cmd.GetStatus() == nil || reply.cmd.GetStatus().Code == nil {
			status = StatusInvalid
		} else {
			status = statusFromServerCode(reply.cmd.GetStatus().GetCode())
		}
		op.response = reply.cmd
		op.responseValue = reply.value
		result.Response = reply.cmd
		result.Value = reply.value
	default:
		status = statusFromOutcome(outcome, s.cfg.debug)
	}

	if reply != nil && status.IsOK() && op.postHook != nil {
		if err := op.postHook(op); err != nil {
			s.cfg.logger.Errorf("kinetic: post-hook seq=%d trace=%s: %v", op.Sequence, op.TraceID, err)
			status = StatusInvalid
		}
	}

	op.Status = status
	result.Status = status

	s.cfg.metrics.IncrementOperationsCompleted(status)

	if op.completion != nil {
		op.completion(result)
	}
}

// handleUnexpectedResponse is the Transport's hook for any reply that
// the Correlator could not match to a pending operation. It gates on the
// envelope's authType first, the way
// original_source/src/lib/kinetic_controller.c does: only an
// UNSOLICITEDSTATUS envelope is ever treated as the handshake signal, so
// an ordinary (HMACAUTH) reply that merely echoes a connectionID — every
// normal reply does — is never mistaken for one.
func (s *Session) handleUnexpectedResponse(reply *replyData) {
	if reply.msg != nil && reply.msg.AuthType == kproto.AuthType_UNSOLICITEDSTATUS {
		header := reply.cmd.GetHeader()
		if header != nil && header.ConnectionID != nil {
			s.latchReady(header.GetConnectionID())
			return
		}
		s.cfg.logger.Errorf("kinetic: unsolicited status with no connectionID — peer is terminating the connection")
		return
	}

	code := reply.cmd.GetStatus().GetCode()
	s.cfg.logger.Errorf("kinetic: unexpected reply with no matching operation, code=%v", code)
}
