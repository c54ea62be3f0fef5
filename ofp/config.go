package ofp

// NewGetConfigRequest and NewSetConfig round out the handshake messages
// spec.md's non-admitting set names. rconn classifies these; it never
// constructs or interprets them on its own.
func NewGetConfigRequest(xid uint32) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeGetConfigRequest, Xid: xid}, nil)
}

func NewGetConfigReply(xid uint32, body []byte) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeGetConfigReply, Xid: xid}, body)
}

func NewSetConfig(xid uint32, body []byte) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeSetConfig, Xid: xid}, body)
}
