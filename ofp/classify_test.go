package ofp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmissionEvidencing_NonAdmittingTypesBelowThreshold(t *testing.T) {
	for _, ty := range []Type{
		TypeHello, TypeError, TypeEchoRequest, TypeEchoReply, TypeVendor,
		TypeFeaturesRequest, TypeFeaturesReply, TypeGetConfigRequest,
		TypeGetConfigReply, TypeSetConfig,
	} {
		assert.False(t, IsAdmissionEvidencing(ty), "type %d should not be admission-evidencing", ty)
	}
}

func TestIsAdmissionEvidencing_DataPlaneTypeIsEvidencing(t *testing.T) {
	assert.True(t, IsAdmissionEvidencing(TypePacketIn))
}

func TestIsAdmissionEvidencing_AnyTypeAtOrAboveThresholdIsEvidencing(t *testing.T) {
	assert.True(t, IsAdmissionEvidencing(MinAdmittingType))
	assert.True(t, IsAdmissionEvidencing(Type(200)))
}

func TestClassify_ShortMessageIsNotOK(t *testing.T) {
	_, _, ok := Classify(Message{Data: []byte{1, 2}})
	assert.False(t, ok)
}

func TestClassify_RoundTripsThroughEncodedMessage(t *testing.T) {
	msg, err := NewHello(42)
	assert.NoError(t, err)

	ty, evidencing, ok := Classify(msg)
	assert.True(t, ok)
	assert.Equal(t, TypeHello, ty)
	assert.False(t, evidencing)
}

func TestNewEchoReply_CopiesXidAndPayload(t *testing.T) {
	req, err := NewEchoRequest(7, []byte("ping"))
	assert.NoError(t, err)

	reply, err := NewEchoReply(req)
	assert.NoError(t, err)

	hdr, err := DecodeHeader(reply.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeEchoReply, hdr.Type)
	assert.Equal(t, uint32(7), hdr.Xid)
	assert.Equal(t, []byte("ping"), reply.Data[HeaderLen:])
}

func TestMessage_CloneIsIndependent(t *testing.T) {
	msg, err := NewHello(1)
	assert.NoError(t, err)

	clone := msg.Clone()
	clone.Data[0] = 0xFF

	assert.NotEqual(t, msg.Data[0], clone.Data[0])
}

func TestNewFeaturesRequest_AndReply(t *testing.T) {
	req, err := NewFeaturesRequest(3)
	assert.NoError(t, err)
	hdr, err := DecodeHeader(req.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeFeaturesRequest, hdr.Type)
	assert.Equal(t, uint32(3), hdr.Xid)

	reply, err := NewFeaturesReply(3, []byte("dpid+ports"))
	assert.NoError(t, err)
	hdr, err = DecodeHeader(reply.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeFeaturesReply, hdr.Type)
	assert.Equal(t, []byte("dpid+ports"), reply.Data[HeaderLen:])
}

func TestNewGetConfigRequest_AndReply(t *testing.T) {
	req, err := NewGetConfigRequest(9)
	assert.NoError(t, err)
	hdr, err := DecodeHeader(req.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeGetConfigRequest, hdr.Type)

	reply, err := NewGetConfigReply(9, []byte("flags+miss-len"))
	assert.NoError(t, err)
	hdr, err = DecodeHeader(reply.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeGetConfigReply, hdr.Type)
	assert.Equal(t, []byte("flags+miss-len"), reply.Data[HeaderLen:])
}

func TestNewSetConfig(t *testing.T) {
	msg, err := NewSetConfig(11, []byte("flags+miss-len"))
	assert.NoError(t, err)
	hdr, err := DecodeHeader(msg.Data)
	assert.NoError(t, err)
	assert.Equal(t, TypeSetConfig, hdr.Type)
	assert.Equal(t, uint32(11), hdr.Xid)
}
