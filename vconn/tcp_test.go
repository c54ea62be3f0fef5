package vconn

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/switchcore/rconn/ofp"
)

func waitFor(t *testing.T, fn func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestTCPVconn_ConnectThenSendAndRecv(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer listener.Close() //nolint:errcheck

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		assert.NoError(t, err)
		accepted <- conn
	}()

	be := NewBackend(listener.Addr(), nil)
	c := NewTCP(be, nil)
	defer c.Close() //nolint:errcheck

	waitFor(t, func() bool { return c.Connect() != ErrWouldBlock })
	assert.NoError(t, c.Connect())

	server := <-accepted
	defer server.Close() //nolint:errcheck

	msg, err := ofp.NewHello(1)
	assert.NoError(t, err)
	assert.NoError(t, c.Send(msg))

	buf := make([]byte, ofp.HeaderLen)
	waitFor(t, func() bool {
		server.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		n, _ := server.Read(buf)
		return n == ofp.HeaderLen
	})

	_, err = server.Write(msg.Data)
	assert.NoError(t, err)

	waitFor(t, func() bool {
		_, err := c.Recv()
		return err == nil
	})
}

func TestTCPVconn_ConnectToClosedPortFails(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	addr := listener.Addr()
	assert.NoError(t, listener.Close())

	be := NewBackend(addr, nil)
	c := NewTCP(be, nil)
	defer c.Close() //nolint:errcheck

	waitFor(t, func() bool {
		err := c.Connect()
		return err != ErrWouldBlock
	})
	assert.Error(t, c.Connect())
}

func TestTCPVconn_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	assert.NoError(t, err)
	defer listener.Close() //nolint:errcheck

	be := NewBackend(listener.Addr(), nil)
	c := NewTCP(be, nil)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
