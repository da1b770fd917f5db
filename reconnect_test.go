package kinetic

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnectWithRetrySucceedsAfterTransientFailures(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close() // nothing listening yet: the first attempts must fail to dial

	go func() {
		time.Sleep(150 * time.Millisecond)
		relistened, err := net.Listen("tcp", addr)
		if err != nil {
			return
		}
		defer relistened.Close()
		conn, err := relistened.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sendHandshake(t, conn, 1)
		buf := make([]byte, 1)
		conn.Read(buf)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	session, err := ConnectWithRetry(ctx, addr, 1, []byte(testKey), 0,
		WithConnectTimeout(200*time.Millisecond))
	require.NoError(t, err)
	defer session.Disconnect()
	require.True(t, session.IsReady())
}

func TestConnectWithRetryGivesUpWhenContextExpires(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ConnectWithRetry(ctx, "127.0.0.1:1", 1, []byte(testKey), 0,
		WithConnectTimeout(10*time.Millisecond))
	require.Error(t, err)
}
