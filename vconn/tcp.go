package vconn

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/switchcore/rconn/ofp"
)

// sendQueueCap bounds the internal outbound channel a TCPVconn drains on
// its own writer goroutine; Send reports ErrWouldBlock once it's full.
// Adapted from the teacher's queueSize constant in tcp_conn.go.
const sendQueueCap = 1000

type dialState int

const (
	dialNotStarted dialState = iota
	dialInProgress
	dialSucceeded
	dialFailed
)

// TCPVconn is the concrete TCP (optionally TLS) realization of Vconn.
// Go's net.Dialer and net.Conn are blocking by nature, so non-blocking
// semantics are synthesized with small dedicated goroutines: one drives
// the dial, one drives reads, one drives writes, each reporting back
// through a channel rather than letting rconn's single goroutine block.
// This is the direct descendant of the teacher's manager/HandleInbound/
// HandleOutbound split in internal/net/tcp_conn.go, reshaped so the
// *caller* (rconn, via Send/Recv/WaitSend/WaitRecv) never blocks, instead
// of the teacher's model where the caller blocks on channel sends.
type TCPVconn struct {
	be        *Backend
	logger    *zap.Logger
	logFields []zap.Field

	mu       sync.Mutex
	state    dialState
	dialErr  error
	conn     net.Conn
	rw       *bufio.ReadWriter
	closed   bool
	localIP  net.IP
	remoteIP net.IP
	remotePort uint16

	dialStart sync.Once
	dialDone  chan struct{}

	sendCh    chan ofp.Message
	sendReady chan struct{}
	sendErrMu sync.Mutex
	sendErr   error

	recvMu    sync.Mutex
	recvQueue []ofp.Message
	recvErr   error
	recvReady chan struct{}

	done chan struct{}
}

var _ Vconn = (*TCPVconn)(nil)

// Open implements the package-level Opener contract: parse name, build an
// unconnected TCPVconn. Equivalent to spec.md's open(name).
func Open(name string) (Vconn, error) {
	be, err := ParseBackend(name)
	if err != nil {
		return nil, err
	}
	return NewTCP(be, nil), nil
}

// NewTCP constructs an unconnected TCPVconn for be. A nil logger installs
// a no-op logger, matching the teacher's fallback in tcp_conn_pool.go.
func NewTCP(be *Backend, logger *zap.Logger) *TCPVconn {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TCPVconn{
		be:     be,
		logger: logger,
		logFields: []zap.Field{
			zap.String("conn_id", uuid.NewString()),
			zap.String("backend", be.String()),
		},
		dialDone:  make(chan struct{}),
		sendCh:    make(chan ofp.Message, sendQueueCap),
		sendReady: make(chan struct{}, 1),
		recvReady: make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (c *TCPVconn) Connect() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state == dialNotStarted {
		c.state = dialInProgress
		c.mu.Unlock()
		c.dialStart.Do(func() { go c.runDial() })
		return ErrWouldBlock
	}
	c.mu.Unlock()

	select {
	case <-c.dialDone:
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == dialSucceeded {
			return nil
		}
		return c.dialErr
	default:
		return ErrWouldBlock
	}
}

func (c *TCPVconn) runDial() {
	conn, err := dial(context.Background(), c.be.addr, c.be.tlsConfig)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		close(c.dialDone)
		return
	}
	if err != nil {
		c.logger.Warn("dial failed", append(c.logFields, zap.Error(err))...)
		c.dialErr = err
		c.state = dialFailed
		c.mu.Unlock()
		close(c.dialDone)
		return
	}

	c.conn = conn
	c.rw = bufio.NewReadWriter(bufio.NewReader(conn), bufio.NewWriter(conn))
	if a, ok := conn.LocalAddr().(*net.TCPAddr); ok {
		c.localIP = a.IP
	}
	if a, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		c.remoteIP = a.IP
		c.remotePort = uint16(a.Port)
	}
	c.state = dialSucceeded
	c.mu.Unlock()

	c.logger.Debug("connection established", c.logFields...)
	close(c.dialDone)

	go c.readLoop()
	go c.writeLoop()
	c.notify(c.sendReady)
}

func (c *TCPVconn) notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// readLoop blocks on the socket so that Recv itself never has to. It
// parses each message's header to learn the frame length, reads the
// body, and appends the decoded Message to recvQueue for Recv to drain.
func (c *TCPVconn) readLoop() {
	header := make([]byte, ofp.HeaderLen)
	for {
		if _, err := io.ReadFull(c.rw.Reader, header); err != nil {
			c.failRecv(err)
			return
		}
		hdr, err := ofp.DecodeHeader(header)
		if err != nil {
			c.failRecv(err)
			return
		}
		bodyLen := int(hdr.Length) - ofp.HeaderLen
		if bodyLen < 0 {
			c.failRecv(fmt.Errorf("vconn: header length %d shorter than header", hdr.Length))
			return
		}
		buf := make([]byte, ofp.HeaderLen+bodyLen)
		copy(buf, header)
		if bodyLen > 0 {
			if _, err := io.ReadFull(c.rw.Reader, buf[ofp.HeaderLen:]); err != nil {
				c.failRecv(err)
				return
			}
		}

		c.recvMu.Lock()
		c.recvQueue = append(c.recvQueue, ofp.Message{Data: buf})
		c.recvMu.Unlock()
		c.notify(c.recvReady)
	}
}

func (c *TCPVconn) failRecv(err error) {
	c.recvMu.Lock()
	if c.recvErr == nil {
		c.recvErr = err
	}
	c.recvMu.Unlock()
	c.notify(c.recvReady)
}

// writeLoop drains sendCh onto the socket so that Send itself never has
// to block on a full TCP write buffer.
func (c *TCPVconn) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg, ok := <-c.sendCh:
			if !ok {
				return
			}
			if err := c.writeOne(msg); err != nil {
				c.sendErrMu.Lock()
				if c.sendErr == nil {
					c.sendErr = err
				}
				c.sendErrMu.Unlock()
				return
			}
			c.notify(c.sendReady)
		}
	}
}

func (c *TCPVconn) writeOne(msg ofp.Message) error {
	if _, err := c.rw.Writer.Write(msg.Data); err != nil {
		return err
	}
	return c.rw.Writer.Flush()
}

func (c *TCPVconn) Send(msg ofp.Message) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	c.sendErrMu.Lock()
	err := c.sendErr
	c.sendErrMu.Unlock()
	if err != nil {
		return err
	}

	select {
	case c.sendCh <- msg:
		return nil
	default:
		return ErrWouldBlock
	}
}

func (c *TCPVconn) Recv() (ofp.Message, error) {
	c.recvMu.Lock()
	defer c.recvMu.Unlock()

	if len(c.recvQueue) > 0 {
		msg := c.recvQueue[0]
		c.recvQueue = c.recvQueue[1:]
		return msg, nil
	}
	if c.recvErr != nil {
		if errors.Is(c.recvErr, io.EOF) {
			return ofp.Message{}, fmt.Errorf("vconn: %w: %w", ErrPeerClosed, io.EOF)
		}
		return ofp.Message{}, c.recvErr
	}
	return ofp.Message{}, ErrWouldBlock
}

func (c *TCPVconn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.mu.Unlock()

	close(c.done)
	close(c.sendCh)

	var closeErr error
	if conn != nil {
		closeErr = conn.Close()
	}
	c.logger.Info("connection closed", c.logFields...)
	return closeErr
}

func (c *TCPVconn) WaitSend() <-chan struct{} { return c.sendReady }
func (c *TCPVconn) WaitRecv() <-chan struct{} { return c.recvReady }

func (c *TCPVconn) LocalIP() net.IP {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.localIP
}

func (c *TCPVconn) RemoteIP() net.IP {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remoteIP
}

func (c *TCPVconn) RemotePort() uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remotePort
}
