package ofp

import "encoding/binary"

// ErrorType and ErrorCode are the two 16-bit fields that follow an ERROR
// message's header; rconn does not interpret them, but a caller building
// messages with this package needs to be able to construct one.
type ErrorType uint16
type ErrorCode uint16

// NewError builds an ERROR message. reqData, if non-nil, is the offending
// request truncated to the bytes the peer expects echoed back; it is
// copied verbatim into the body after the type/code fields.
func NewError(xid uint32, errType ErrorType, code ErrorCode, reqData []byte) (Message, error) {
	body := make([]byte, 4+len(reqData))
	binary.BigEndian.PutUint16(body[0:2], uint16(errType))
	binary.BigEndian.PutUint16(body[2:4], uint16(code))
	copy(body[4:], reqData)
	return NewMessage(Header{Version: 1, Type: TypeError, Xid: xid}, body)
}
