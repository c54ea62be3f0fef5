package rconn

import "github.com/switchcore/rconn/ofp"

// buildEchoRequest constructs the inactivity probe ACTIVE enqueues on
// timeout, tagged with a fresh xid so a later ECHO_REPLY could in
// principle be correlated by a caller building on top of rconn.
func (c *Connection) buildEchoRequest() (ofp.Message, error) {
	return ofp.NewEchoRequest(c.nextXid(), nil)
}
