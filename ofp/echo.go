package ofp

// NewEchoRequest builds the inactivity-probe message the ACTIVE state
// enqueues on timeout (spec.md §4.1). payload is echoed back verbatim by a
// conformant peer inside its ECHO_REPLY; it may be nil.
func NewEchoRequest(xid uint32, payload []byte) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeEchoRequest, Xid: xid}, payload)
}

// NewEchoReply builds the reply to an inbound ECHO_REQUEST, copying its
// xid and payload back as the protocol requires.
func NewEchoReply(req Message) (Message, error) {
	hdr, err := DecodeHeader(req.Data)
	if err != nil {
		return Message{}, err
	}
	var body []byte
	if len(req.Data) > HeaderLen {
		body = req.Data[HeaderLen:]
	}
	return NewMessage(Header{Version: hdr.Version, Type: TypeEchoReply, Xid: hdr.Xid}, body)
}
