package kinetic

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kineticgo/kinetic/kproto"
)

const testKey = "asdfasdf"

// fakeDrive listens on an ephemeral TCP port and hands each accepted
// connection to handle. It mirrors the request/response shape of a real
// Kinetic drive closely enough to exercise Connect/Execute end to end,
// the way the teacher's examples/echo pair exercised aznet's Conn.
func fakeDrive(t *testing.T, handle func(t *testing.T, conn net.Conn)) (addr string, closeFn func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		handle(t, conn)
	}()

	return ln.Addr().String(), func() { ln.Close() }
}

// sendHandshake writes the server's unsolicited first message: an
// UNSOLICITEDSTATUS envelope (never HMACAUTH — no request preceded it to
// sign against) carrying the connectionID the session must latch.
func sendHandshake(t *testing.T, conn net.Conn, connectionID int64) {
	t.Helper()
	cmd := &kproto.Command{
		Header: &kproto.Command_Header{ConnectionID: kproto.Int64Ptr(connectionID)},
		Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
	}
	commandBytes, err := DefaultCodec.Marshal(cmd)
	require.NoError(t, err)
	envelope := &kproto.Message{AuthType: kproto.AuthType_UNSOLICITEDSTATUS, CommandBytes: commandBytes}
	envelopeBytes, err := marshalMessage(envelope)
	require.NoError(t, err)
	require.NoError(t, EncodePDU(conn, envelopeBytes, nil))
}

func writeReply(t *testing.T, conn net.Conn, auth *Authenticator, cmd *kproto.Command, value []byte) {
	t.Helper()
	commandBytes, err := DefaultCodec.Marshal(cmd)
	require.NoError(t, err)
	envelope := auth.Seal(0, commandBytes)
	envelopeBytes, err := marshalMessage(envelope)
	require.NoError(t, err)
	require.NoError(t, EncodePDU(conn, envelopeBytes, value))
}

// readRequest reads and decodes one PDU the client sent, returning its
// Command (with Header.Sequence populated) and value payload.
func readRequest(t *testing.T, conn net.Conn) (*kproto.Command, []byte) {
	t.Helper()
	pdu, err := DecodePDU(conn)
	require.NoError(t, err)

	envelope := &kproto.Message{}
	require.NoError(t, unmarshalMessage(pdu.Protobuf, envelope))

	cmd := &kproto.Command{}
	require.NoError(t, DefaultCodec.Unmarshal(envelope.CommandBytes, cmd))
	return cmd, pdu.Value
}

func dial(t *testing.T, addr string, opts ...Option) *Session {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	session, err := Connect(ctx, addr, 1, []byte(testKey), 7, opts...)
	require.NoError(t, err)
	return session
}

func TestConnectCompletesOnHandshake(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 55)
		// keep the connection open until the test tears down the dialer.
		buf := make([]byte, 1)
		conn.Read(buf)
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	require.True(t, session.IsReady())
	require.EqualValues(t, 55, session.ConnectionID())
	require.EqualValues(t, 7, session.ClusterVersion())
}

func TestConnectTimesOutWithoutHandshake(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		// Never sends the handshake status.
		buf := make([]byte, 1)
		conn.Read(buf)
	})
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Connect(ctx, addr, 1, []byte(testKey), 0, WithConnectTimeout(50*time.Millisecond))
	require.ErrorIs(t, err, ErrHandshakeTimeout)
}

func TestExecuteBlockingSuccess(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)

		cmd, _ := readRequest(t, conn)

		reply := &kproto.Command{
			Header: &kproto.Command_Header{AckSequence: cmd.Header.Sequence},
			Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
		}
		writeReply(t, conn, NewAuthenticator([]byte(testKey)), reply, []byte("hello"))
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	op, err := session.CreateOperation()
	require.NoError(t, err)
	op.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status := session.Execute(ctx, op, nil)
	require.Equal(t, StatusSuccess, status)
	require.Equal(t, []byte("hello"), op.ResponseValue())
}

func TestExecuteCallbackDriven(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)

		cmd, _ := readRequest(t, conn)
		reply := &kproto.Command{
			Header: &kproto.Command_Header{AckSequence: cmd.Header.Sequence},
			Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
		}
		writeReply(t, conn, NewAuthenticator([]byte(testKey)), reply, nil)
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	op, err := session.CreateOperation()
	require.NoError(t, err)
	op.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_PUT)}}

	done := make(chan CompletionResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status := session.Execute(ctx, op, func(result CompletionResult) { done <- result })
	require.Equal(t, StatusSuccess, status)

	select {
	case result := <-done:
		require.Equal(t, StatusSuccess, result.Status)
	case <-time.After(time.Second):
		t.Fatal("completion never fired")
	}
}

func TestExecuteHMACMismatchSurfacesDataError(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)

		cmd, _ := readRequest(t, conn)
		reply := &kproto.Command{
			Header: &kproto.Command_Header{AckSequence: cmd.Header.Sequence},
			Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
		}
		// Sign with the wrong key: the reply's HMAC will not verify against
		// the session's authenticator. This must surface as DATA_ERROR to
		// the caller, not be silently treated as success.
		writeReply(t, conn, NewAuthenticator([]byte("wrong-key")), reply, nil)
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	op, err := session.CreateOperation()
	require.NoError(t, err)
	op.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status := session.Execute(ctx, op, nil)
	require.Equal(t, StatusDataError, status)
}

func TestExecuteTimesOutWhenNoReplyArrives(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)
		readRequest(t, conn) // consume but never reply
		buf := make([]byte, 1)
		conn.Read(buf)
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	op, err := session.CreateOperation()
	require.NoError(t, err)
	op.Deadline = time.Now().Add(30 * time.Millisecond)
	op.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status := session.Execute(ctx, op, nil)
	require.Equal(t, StatusOperationTimedOut, status)
	require.Equal(t, 0, session.correlator.Len())
}

func TestExecuteOutOfOrderReplies(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)

		firstCmd, _ := readRequest(t, conn)
		secondCmd, _ := readRequest(t, conn)

		auth := NewAuthenticator([]byte(testKey))
		// Reply to the second request first.
		writeReply(t, conn, auth, &kproto.Command{
			Header: &kproto.Command_Header{AckSequence: secondCmd.Header.Sequence},
			Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
		}, []byte("second"))
		writeReply(t, conn, auth, &kproto.Command{
			Header: &kproto.Command_Header{AckSequence: firstCmd.Header.Sequence},
			Status: &kproto.Command_Status{Code: kproto.StatusCodePtr(kproto.Command_Status_SUCCESS)},
		}, []byte("first"))
	})
	defer closeFn()

	session := dial(t, addr)
	defer session.Disconnect()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	firstDone := make(chan CompletionResult, 1)
	firstOp, err := session.CreateOperation()
	require.NoError(t, err)
	firstOp.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}
	require.Equal(t, StatusSuccess, session.Execute(ctx, firstOp, func(r CompletionResult) { firstDone <- r }))

	secondDone := make(chan CompletionResult, 1)
	secondOp, err := session.CreateOperation()
	require.NoError(t, err)
	secondOp.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}
	require.Equal(t, StatusSuccess, session.Execute(ctx, secondOp, func(r CompletionResult) { secondDone <- r }))

	var firstResult, secondResult CompletionResult
	for i := 0; i < 2; i++ {
		select {
		case firstResult = <-firstDone:
		case secondResult = <-secondDone:
		case <-time.After(time.Second):
			t.Fatal("both completions should fire despite out-of-order replies")
		}
	}
	require.Equal(t, []byte("first"), firstResult.Value)
	require.Equal(t, []byte("second"), secondResult.Value)
}

func TestDisconnectDrainsPendingOperationsAndRejectsNewSubmissions(t *testing.T) {
	addr, closeFn := fakeDrive(t, func(t *testing.T, conn net.Conn) {
		defer conn.Close()
		sendHandshake(t, conn, 1)
		readRequest(t, conn) // consume the request but never reply
		buf := make([]byte, 1)
		conn.Read(buf)
	})
	defer closeFn()

	session := dial(t, addr)

	op, err := session.CreateOperation()
	require.NoError(t, err)
	op.Request = &kproto.Command{Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)}}

	done := make(chan CompletionResult, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status := session.Execute(ctx, op, func(r CompletionResult) { done <- r })
	require.Equal(t, StatusSuccess, status)

	require.NoError(t, session.Disconnect())

	select {
	case result := <-done:
		require.Equal(t, StatusSocketError, result.Status)
	case <-time.After(time.Second):
		t.Fatal("pending operation's completion never fired on disconnect")
	}

	require.True(t, session.IsClosed())
	require.Equal(t, 0, session.correlator.Len())

	_, err = session.CreateOperation()
	require.ErrorIs(t, err, ErrSessionClosed)

	// Disconnect is idempotent.
	require.NoError(t, session.Disconnect())
}

// flakyConn wraps a net.Conn and fails every Write call after the
// failAfter'th, without touching the underlying connection, so a test
// can force a write failure partway through a single PDU's three writes
// (header, protobuf, value) without actually breaking the socket.
type flakyConn struct {
	net.Conn
	calls     int
	failAfter int
}

func (c *flakyConn) Write(p []byte) (int, error) {
	c.calls++
	if c.calls > c.failAfter {
		return 0, errors.New("flakyConn: simulated write failure")
	}
	return c.Conn.Write(p)
}

func TestPartialFrameWriteFailurePoisonsSession(t *testing.T) {
	clientConn, serverConn := net.Pipe()
	defer serverConn.Close()

	go func() {
		buf := make([]byte, 4096)
		for {
			if _, err := serverConn.Read(buf); err != nil {
				return
			}
		}
	}()

	// failAfter=1: the header write (call 1) succeeds, the protobuf
	// write (call 2) fails — bytes already reached the wire before the
	// failure, so the session must be poisoned per spec.md §7.
	conn := &flakyConn{Conn: clientConn, failAfter: 1}

	s := &Session{
		identity:       1,
		clusterVersion: 0,
		auth:           NewAuthenticator([]byte(testKey)),
		cfg:            applyOptions(nil),
		ready:          make(chan struct{}),
	}
	s.nextSeq.Store(1)
	s.correlator = NewCorrelator(s.cfg.clock, s.handleResult)
	s.transport = newTransport(s, conn)
	s.transport.Start()
	s.latchReady(7)

	op := newOperation(s)
	op.Request = &kproto.Command{
		Header: &kproto.Command_Header{MessageType: kproto.MessageTypePtr(kproto.Command_GET)},
		Body:   &kproto.Command_Body{KeyValue: &kproto.Command_KeyValue{Key: []byte("k")}},
	}

	_, status := s.transport.Submit(op, time.Now().Add(time.Second))
	require.Equal(t, StatusSocketError, status)
	require.True(t, s.IsPoisoned())

	_, err := s.CreateOperation()
	require.ErrorIs(t, err, ErrSessionClosed)

	require.NoError(t, s.transport.Shutdown())
}
