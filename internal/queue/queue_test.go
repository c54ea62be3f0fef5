package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/switchcore/rconn/internal/counter"
	"github.com/switchcore/rconn/ofp"
)

func TestQueue_PushBackPopFrontOrder(t *testing.T) {
	q := New()
	assert.True(t, q.Empty())

	for i := 0; i < 3; i++ {
		env := q.Acquire()
		env.Msg, _ = ofp.NewHello(uint32(i))
		q.PushBack(env)
	}

	assert.Equal(t, 3, q.Len())

	for i := 0; i < 3; i++ {
		env := q.PopFront()
		hdr, err := ofp.DecodeHeader(env.Msg.Data)
		assert.NoError(t, err)
		assert.Equal(t, uint32(i), hdr.Xid)
		q.Release(env)
	}

	assert.True(t, q.Empty())
	assert.Nil(t, q.PopFront())
}

func TestQueue_ReleasedEnvelopeIsReset(t *testing.T) {
	q := New()
	env := q.Acquire()
	env.Msg, _ = ofp.NewHello(1)
	env.Counter = counter.New()
	q.Release(env)

	reused := q.Acquire()
	assert.Equal(t, ofp.Message{}, reused.Msg)
	assert.Nil(t, reused.Counter)
}
