package monitor

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/switchcore/rconn/ofp"
	"github.com/switchcore/rconn/vconn"
)

type fakeVconn struct {
	mock.Mock
}

func (f *fakeVconn) Connect() error                { return f.Called().Error(0) }
func (f *fakeVconn) Send(msg ofp.Message) error     { return f.Called(msg).Error(0) }
func (f *fakeVconn) Recv() (ofp.Message, error)     { panic("not used in these tests") }
func (f *fakeVconn) Close() error                   { return f.Called().Error(0) }
func (f *fakeVconn) WaitSend() <-chan struct{}      { return nil }
func (f *fakeVconn) WaitRecv() <-chan struct{}      { return nil }
func (f *fakeVconn) LocalIP() net.IP                { return nil }
func (f *fakeVconn) RemoteIP() net.IP               { return nil }
func (f *fakeVconn) RemotePort() uint16             { return 0 }

func helloMsg(t *testing.T) ofp.Message {
	t.Helper()
	msg, err := ofp.NewHello(1)
	assert.NoError(t, err)
	return msg
}

func TestSet_AddRejectsOverCapacity(t *testing.T) {
	s := New()
	for i := 0; i < MaxMonitors; i++ {
		fv := &fakeVconn{}
		assert.NoError(t, s.Add(fv))
	}
	assert.Equal(t, MaxMonitors, s.Len())

	overflow := &fakeVconn{}
	overflow.On("Close").Return(nil)
	err := s.Add(overflow)
	assert.ErrorIs(t, err, ErrFull)
	overflow.AssertCalled(t, "Close")
}

func TestSet_FanoutRetainsBusyMonitor(t *testing.T) {
	s := New()
	busy := &fakeVconn{}
	busy.On("Send", mock.Anything).Return(vconn.ErrWouldBlock)
	assert.NoError(t, s.Add(busy))

	s.Fanout(helloMsg(t), func(m ofp.Message) ofp.Message { return m })
	assert.Equal(t, 1, s.Len())
}

func TestSet_FanoutRemovesFailedMonitor(t *testing.T) {
	s := New()
	good := &fakeVconn{}
	good.On("Send", mock.Anything).Return(nil)
	bad := &fakeVconn{}
	bad.On("Send", mock.Anything).Return(errors.New("boom"))
	bad.On("Close").Return(nil)

	assert.NoError(t, s.Add(good))
	assert.NoError(t, s.Add(bad))

	s.Fanout(helloMsg(t), func(m ofp.Message) ofp.Message { return m })

	assert.Equal(t, 1, s.Len())
	bad.AssertCalled(t, "Close")
}

func TestSet_CloseAllCombinesErrors(t *testing.T) {
	s := New()
	a := &fakeVconn{}
	a.On("Close").Return(errors.New("a failed"))
	b := &fakeVconn{}
	b.On("Close").Return(errors.New("b failed"))
	assert.NoError(t, s.Add(a))
	assert.NoError(t, s.Add(b))

	err := s.CloseAll()
	assert.Error(t, err)
	assert.Equal(t, 0, s.Len())
}
