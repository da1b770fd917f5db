package kinetic

import (
	"bufio"
	"io"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kineticgo/kinetic/kproto"
)

// Transport is the message bus: it owns the socket, drives the I/O
// worker, serializes writes per-socket, parses incoming PDUs via the
// Framer, and hands each inbound PDU to the Correlator with its
// sequence number.
type Transport struct {
	session *Session
	conn    net.Conn
	reader  *bufio.Reader

	wmu sync.Mutex

	closed    atomic.Bool
	closeOnce sync.Once
	readDone  chan struct{}
}

func newTransport(session *Session, conn net.Conn) *Transport {
	return &Transport{
		session:  session,
		conn:     conn,
		reader:   bufio.NewReaderSize(conn, 64*1024),
		readDone: make(chan struct{}),
	}
}

// Start launches the read loop in its own goroutine. Completion
// callbacks may run on this goroutine; callers must not
// block long or re-enter the library synchronously from inside one.
func (t *Transport) Start() {
	go t.readLoop()
}

// Submit atomically assigns the next sequence number, registers the
// operation in the Correlator under that sequence with the given
// deadline, and writes the framed PDU. A synchronous write failure
// deregisters the operation and returns SOCKET_ERROR without invoking
// its completion closure; the caller sees the error as Submit's return
// value.
func (t *Transport) Submit(op *Operation, deadline time.Time) (int64, Status) {
	if t.closed.Load() || t.session.IsPoisoned() {
		return 0, StatusSocketError
	}

	seq := t.session.NextSequence()
	op.Sequence = seq
	op.Deadline = deadline

	header := op.Request.GetHeader()
	header.ConnectionID = kproto.Int64Ptr(t.session.ConnectionID())
	header.Identity = kproto.Int64Ptr(t.session.Identity())
	header.ClusterVersion = kproto.Int64Ptr(t.session.ClusterVersion())
	header.Sequence = kproto.Int64Ptr(seq)

	commandBytes, err := t.session.cfg.codec.Marshal(op.Request)
	if err != nil {
		t.session.cfg.logger.Errorf("kinetic: marshal command seq=%d: %v", seq, err)
		return seq, StatusInvalid
	}

	envelope := t.session.auth.Seal(t.session.Identity(), commandBytes)
	envelopeBytes, err := marshalMessage(envelope)
	if err != nil {
		t.session.cfg.logger.Errorf("kinetic: marshal envelope seq=%d: %v", seq, err)
		return seq, StatusInvalid
	}

	t.session.correlator.Register(seq, op, deadline)

	if err := t.writeFrame(envelopeBytes, op.Value); err != nil {
		t.session.correlator.Cancel(seq)
		t.session.cfg.logger.Errorf("kinetic: write PDU seq=%d: %v", seq, err)
		return seq, StatusSocketError
	}

	t.session.cfg.metrics.IncrementOperationsSubmitted()
	t.session.cfg.metrics.IncrementBytesSent(int64(PDUHeaderSize + len(envelopeBytes) + len(op.Value)))
	return seq, StatusSuccess
}

// writeFrame writes one PDU under the write lock. If any byte of the
// frame reaches the wire before a later part fails, the connection's
// framing is now desynchronized from the peer's point of view and the
// session is poisoned.
func (t *Transport) writeFrame(envelope, value []byte) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()

	cw := &countingWriter{w: t.conn}
	err := EncodePDU(cw, envelope, value)
	if err != nil && cw.n > 0 {
		t.session.poison()
	}
	return err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Shutdown closes the socket, then fails every still-pending operation
// with SOCKET_ERROR, in arbitrary order.
func (t *Transport) Shutdown() error {
	var err error
	t.closeOnce.Do(func() {
		t.closed.Store(true)
		err = t.conn.Close()
		<-t.readDone
		t.session.correlator.Drain(outcomeTxFailure)
	})
	return err
}

// readLoop is the Transport's I/O worker. It decodes PDUs one at a time
// and dispatches each to the Correlator (a matched reply) or to
// HandleUnexpectedResponse (everything else).
func (t *Transport) readLoop() {
	defer close(t.readDone)

	for {
		pdu, err := DecodePDU(t.reader)
		if err != nil {
			if !t.closed.Load() {
				t.session.cfg.logger.Warnf("kinetic: read loop terminating: %v", err)
				t.session.correlator.Drain(outcomeRxFailure)
			}
			return
		}

		envelope := &kproto.Message{}
		if err := unmarshalMessage(pdu.Protobuf, envelope); err != nil {
			t.session.cfg.logger.Errorf("kinetic: decode envelope: %v", err)
			continue
		}

		hmacOK := t.session.auth.Verify(envelope)
		if !hmacOK && envelope.AuthType == kproto.AuthType_HMACAUTH {
			t.session.cfg.metrics.IncrementHMACFailures()
		}

		cmd := &kproto.Command{}
		if err := t.session.cfg.codec.Unmarshal(envelope.CommandBytes, cmd); err != nil {
			t.session.cfg.logger.Errorf("kinetic: decode command: %v", err)
			continue
		}

		t.session.cfg.metrics.IncrementBytesReceived(int64(PDUHeaderSize + len(pdu.Protobuf) + len(pdu.Value)))

		reply := &replyData{msg: envelope, cmd: cmd, value: pdu.Value, hmacOK: hmacOK}

		header := cmd.GetHeader()
		if header == nil || header.AckSequence == nil {
			t.session.handleUnexpectedResponse(reply)
			continue
		}

		if !t.session.correlator.Match(header.GetAckSequence(), outcomeSuccess, reply) {
			t.session.handleUnexpectedResponse(reply)
		}
	}
}
