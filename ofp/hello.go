package ofp

// NewHello builds a bare HELLO message (no body), the first message a
// reliable connection exchanges once the transport comes up. rconn itself
// never sends one automatically — version negotiation is explicitly out
// of scope (spec.md §1) — but callers building on top of rconn need a
// constructor for it.
func NewHello(xid uint32) (Message, error) {
	return NewMessage(Header{Version: 1, Type: TypeHello, Xid: xid}, nil)
}
