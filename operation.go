package kinetic

import (
	"time"

	"github.com/google/uuid"

	"github.com/kineticgo/kinetic/kproto"
)

// CompletionResult is what a completion closure receives: the final
// status and, when one arrived, the server's reply command plus its
// value payload.
type CompletionResult struct {
	Status   Status
	Response *kproto.Command
	Value    []byte
}

// CompletionFunc is the callback half of a completion closure. It is
// invoked exactly once per operation.
type CompletionFunc func(result CompletionResult)

// PostHook runs after HandleResult has parsed the server's status and
// before the completion closure fires. Command builders use it to
// translate a generic reply into a caller-specific type (e.g. copying a
// GET's value into the caller's entry struct).
type PostHook func(op *Operation) error

// CommandBuilder is the external collaborator that knows how to
// populate a Command for a specific verb (GET, PUT, DELETE, ...).
// Builders are consumed, not implemented, by the engine.
type CommandBuilder interface {
	// Build returns the populated command, its accompanying value
	// payload (may be nil), and an optional post-processing hook.
	Build(session *Session) (cmd *kproto.Command, value []byte, hook PostHook, err error)
}

// Operation is a single in-flight request. The Operation Controller
// exclusively owns it from construction until the completion callback
// returns; the Transport holds only a borrowed reference while it sits
// in the Correlator.
type Operation struct {
	session *Session

	// TraceID identifies this Execute call in structured logs; it has
	// no protocol meaning and never travels on the wire.
	TraceID string

	Sequence int64

	Request       *kproto.Command
	Value         []byte
	response      *kproto.Command
	responseValue []byte

	completion CompletionFunc
	postHook   PostHook

	Deadline time.Time
	Status   Status
}

// newOperation allocates an Operation bound to session, assigning it a
// trace identifier for log correlation. It does not yet have a sequence
// number; that is assigned atomically when the Transport submits it.
func newOperation(session *Session) *Operation {
	return &Operation{
		session: session,
		TraceID: uuid.New().String(),
		Status:  StatusInvalid,
	}
}

// Session returns the session the operation was created on.
func (op *Operation) Session() *Session { return op.session }

// Response returns the server's reply command, or nil if the operation
// never received one (e.g. it timed out or failed at the transport).
func (op *Operation) Response() *kproto.Command { return op.response }

// ResponseValue returns the value payload that accompanied the reply,
// if any. GET replies carry the object's bytes here; most other verbs
// leave it nil.
func (op *Operation) ResponseValue() []byte { return op.responseValue }
