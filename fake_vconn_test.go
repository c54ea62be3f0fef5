package rconn

import (
	"net"

	"github.com/switchcore/rconn/ofp"
	"github.com/switchcore/rconn/vconn"
)

// fakeVconn is a hand-rolled test double rather than a testify/mock.Mock
// (as internal/monitor's fakeVconn is): the rconn scenarios in spec.md §8
// need precise, stateful sequencing of Connect/Send/Recv results across
// many ticks, which a queue-driven fake expresses more directly than a
// call-expectation mock.
type fakeVconn struct {
	connectQueue []error // popped on each Connect call; last value repeats once drained
	sendQueue    []error
	recvQueue    []fakeRecvResult

	sent []ofp.Message // every message a Send call accepted, in order

	closeCalls int
	closeErr   error

	local  net.IP
	remote net.IP
	port   uint16
}

type fakeRecvResult struct {
	msg ofp.Message
	err error
}

func newFakeVconn() *fakeVconn {
	return &fakeVconn{remote: net.ParseIP("10.0.0.1"), port: 6633}
}

func (f *fakeVconn) Connect() error {
	return popOrRepeat(&f.connectQueue)
}

func (f *fakeVconn) Send(msg ofp.Message) error {
	err := popOrRepeat(&f.sendQueue)
	if err == nil {
		f.sent = append(f.sent, msg)
	}
	return err
}

func (f *fakeVconn) Recv() (ofp.Message, error) {
	if len(f.recvQueue) == 0 {
		return ofp.Message{}, vconn.ErrWouldBlock
	}
	r := f.recvQueue[0]
	f.recvQueue = f.recvQueue[1:]
	return r.msg, r.err
}

func (f *fakeVconn) Close() error {
	f.closeCalls++
	return f.closeErr
}

func (f *fakeVconn) WaitSend() <-chan struct{} { return nil }
func (f *fakeVconn) WaitRecv() <-chan struct{} { return nil }
func (f *fakeVconn) LocalIP() net.IP           { return f.local }
func (f *fakeVconn) RemoteIP() net.IP          { return f.remote }
func (f *fakeVconn) RemotePort() uint16        { return f.port }

var _ vconn.Vconn = (*fakeVconn)(nil)

// popOrRepeat pops the head of *q and returns it, or returns the last
// element forever once the queue is drained (nil if it was never set).
func popOrRepeat(q *[]error) error {
	if len(*q) == 0 {
		return nil
	}
	if len(*q) == 1 {
		return (*q)[0]
	}
	head := (*q)[0]
	*q = (*q)[1:]
	return head
}

// fakeOpener returns a vconn.Opener that always hands out the same
// *fakeVconn, whatever name it is opened with.
func fakeOpener(v *fakeVconn) vconn.Opener {
	return func(name string) (vconn.Vconn, error) {
		return v, nil
	}
}
