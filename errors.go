package rconn

import "errors"

// ErrNotConnected is returned by Send when state is not ACTIVE or IDLE.
// spec.md §7's "not-connected".
var ErrNotConnected = errors.New("rconn: not connected")

// ErrRetryLater is returned by SendWithLimit when the caller's counter has
// already reached its cap. spec.md §7's "retry-later".
var ErrRetryLater = errors.New("rconn: retry later, counter at limit")

// ErrConnectTimeout is the synthetic error passed to the disconnect
// primitive when CONNECTING's timeout fires while the transport is still
// reporting retryable-busy. Never surfaced to callers; it only appears in
// the disconnect log (connectingRun sets the backoff_deadline sentinel
// itself, before passing this error on).
var ErrConnectTimeout = errors.New("rconn: connect timed out")

// ErrProbeTimeout is the synthetic error passed to disconnect when an
// IDLE probe goes unanswered.
var ErrProbeTimeout = errors.New("rconn: inactivity probe timed out")

// errReconnectRequested is passed to disconnect by Reconnect.
var errReconnectRequested = errors.New("rconn: reconnect requested")
