package vconn

import (
	"crypto/tls"
	"fmt"
	"net"
	"strings"
)

// Backend names a TCP (optionally TLS) peer address. Adapted from the
// teacher's internal/net.Backend; the numConns field is dropped because
// rconn's vconn is a single logical connection, not a pool sized per
// backend — monitor fan-out and connection pooling across many backends
// live elsewhere (package manager).
type Backend struct {
	addr      net.Addr
	tlsConfig *tls.Config
}

// NewBackend wraps addr (and an optional tlsConfig) as a dial target.
func NewBackend(addr net.Addr, tlsConfig *tls.Config) *Backend {
	return &Backend{addr: addr, tlsConfig: tlsConfig}
}

func (b *Backend) String() string {
	if b == nil {
		return "<nil-backend>"
	}
	return b.addr.String()
}

// ParseBackend turns a "tcp:host:port" style name (spec.md's address
// format) into a Backend. "tls:host:port" dials with a zero-value
// *tls.Config (standard certificate verification) unless ParseBackendTLS
// supplies another.
func ParseBackend(name string) (*Backend, error) {
	return ParseBackendTLS(name, nil)
}

// ParseBackendTLS is ParseBackend with an explicit *tls.Config, used when
// the "tls:" scheme needs settings other than the zero-value default
// (custom roots, client certificates, a server name). The config is
// ignored for the "tcp:" scheme.
func ParseBackendTLS(name string, tlsConfig *tls.Config) (*Backend, error) {
	scheme, hostport, found := strings.Cut(name, ":")
	if !found {
		return nil, fmt.Errorf("vconn: malformed name %q, want scheme:host:port", name)
	}

	switch scheme {
	case "tcp":
		tlsConfig = nil
	case "tls", "ssl":
		if tlsConfig == nil {
			tlsConfig = &tls.Config{}
		}
	default:
		return nil, fmt.Errorf("vconn: unsupported scheme %q in name %q", scheme, name)
	}

	addr, err := net.ResolveTCPAddr("tcp", hostport)
	if err != nil {
		return nil, fmt.Errorf("vconn: resolving %q: %w", hostport, err)
	}

	return NewBackend(addr, tlsConfig), nil
}
