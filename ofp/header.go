// Package ofp implements the small slice of the OpenFlow wire format that
// the connection supervisor needs to inspect: the fixed 8-byte header and
// the message-type classification used by the admission heuristic. It is
// not a full OpenFlow codec — parsing or interpreting payload bodies is
// explicitly out of scope (spec.md §1, Non-goals).
package ofp

import (
	"encoding/binary"
	"fmt"
)

// HeaderLen is the size in bytes of the OpenFlow message header.
const HeaderLen = 8

// Type is the OpenFlow message type, the second byte of every header.
type Type uint8

// The message types the admission heuristic needs to recognize by name.
// Values below MinAdmittingType are candidates for "non-admission-evidencing"
// classification (see Classify); everything at or above it always counts
// as evidence of admission, per spec.md §9's literal bitmask rule.
const (
	TypeHello             Type = 0
	TypeError             Type = 1
	TypeEchoRequest       Type = 2
	TypeEchoReply         Type = 3
	TypeVendor            Type = 4
	TypeFeaturesRequest   Type = 5
	TypeFeaturesReply     Type = 6
	TypeGetConfigRequest  Type = 7
	TypeGetConfigReply    Type = 8
	TypeSetConfig         Type = 9
	// TypePacketIn and beyond are ordinary data-plane/control messages;
	// they are not named individually here because every type >= 32 (and
	// every named type above that isn't in the non-admitting set) is
	// admission-evidencing regardless of its specific value.
	TypePacketIn Type = 10
)

// MinAdmittingType is the first opcode value that is unconditionally
// admission-evidencing, independent of bitmask membership. spec.md §9:
// "values of opcode >= 32 always count as admitting."
const MinAdmittingType Type = 32

// Header is the fixed OpenFlow message header.
type Header struct {
	Version uint8
	Type    Type
	Length  uint16
	Xid     uint32
}

// Encode writes the header in wire order into buf, which must be at least
// HeaderLen bytes.
func (h Header) Encode(buf []byte) error {
	if len(buf) < HeaderLen {
		return fmt.Errorf("ofp: Encode: buffer too small (%d < %d)", len(buf), HeaderLen)
	}
	buf[0] = h.Version
	buf[1] = uint8(h.Type)
	binary.BigEndian.PutUint16(buf[2:4], h.Length)
	binary.BigEndian.PutUint32(buf[4:8], h.Xid)
	return nil
}

// DecodeHeader parses the first HeaderLen bytes of buf as an OpenFlow
// header. It does not validate Length against len(buf); the wire codec
// that would frame a full message is out of scope here.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderLen {
		return Header{}, fmt.Errorf("ofp: DecodeHeader: short buffer (%d < %d)", len(buf), HeaderLen)
	}
	return Header{
		Version: buf[0],
		Type:    Type(buf[1]),
		Length:  binary.BigEndian.Uint16(buf[2:4]),
		Xid:     binary.BigEndian.Uint32(buf[4:8]),
	}, nil
}

// Message is a single OpenFlow message as rconn sees it: an opaque byte
// slice with an inspectable header. rconn never interprets the body.
type Message struct {
	Data []byte
}

// NewMessage builds a Message whose header is hdr and whose body is body;
// body may be nil. hdr.Length is ignored: NewMessage sets it to the total
// encoded length (header plus body).
func NewMessage(hdr Header, body []byte) (Message, error) {
	buf := make([]byte, HeaderLen+len(body))
	hdr.Length = uint16(len(buf))
	if err := hdr.Encode(buf); err != nil {
		return Message{}, err
	}
	copy(buf[HeaderLen:], body)
	return Message{Data: buf}, nil
}

// TypeOf returns the message's type byte, or an error if the message is
// shorter than a header.
func (m Message) TypeOf() (Type, error) {
	if len(m.Data) < HeaderLen {
		return 0, fmt.Errorf("ofp: message shorter than header (%d bytes)", len(m.Data))
	}
	return Type(m.Data[1]), nil
}

// Clone returns a deep copy of m, used when fanning a message out to
// monitors so that a slow or misbehaving monitor can never observe (or
// corrupt) the buffer still in flight to the real transport.
func (m Message) Clone() Message {
	cp := make([]byte, len(m.Data))
	copy(cp, m.Data)
	return Message{Data: cp}
}
