package ofp

// NewFeaturesRequest builds a FEATURES_REQUEST, the message a controller
// sends right after a switch is admitted to learn its datapath id and
// port list. rconn never sends this itself; it is a helper for callers.
func NewFeaturesRequest(xid uint32) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeFeaturesRequest, Xid: xid}, nil)
}

// NewFeaturesReply builds a FEATURES_REPLY carrying an already-serialized
// body (datapath id, capabilities, port list); rconn does not know how to
// build that body itself since it never parses payloads.
func NewFeaturesReply(xid uint32, body []byte) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeFeaturesReply, Xid: xid}, body)
}
