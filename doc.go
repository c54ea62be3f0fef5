// Package rconn implements a reliable connection supervisor: a long-lived
// logical session to a remote OpenFlow peer (switch or controller) layered
// over a lower-level, possibly-failing transport (package vconn). It
// reconnects after failures with exponential backoff, detects silent
// peers with inactivity probes, buffers outbound messages in a send
// queue, mirrors traffic to passive monitors, and exposes status
// telemetry callers can poll.
//
// A Connection is single-threaded and cooperative: exactly one goroutine
// should own it at a time, driving it by calling Run, RunWait, RecvWait,
// Send, Recv, and the status accessors. There is no internal
// synchronization, and none is needed as long as that ownership
// discipline holds — see package manager for running several Connections
// side by side, each on its own goroutine.
package rconn
