// Package transport establishes the single TCP connection a run relays
// over.  It resolves endpoints into candidate addresses, dials them in
// order as a client, or binds the first one and accepts exactly one
// peer as a server.  What happens over the connection is the relay
// package's job.
package transport

import (
	"context"
	"net"
)

// Dialer opens one outbound stream to a concrete address.  The
// connector calls it once per candidate; tests substitute fakes to
// script per-candidate outcomes.
type Dialer interface {
	Dial(ctx context.Context, network, address string) (net.Conn, error)
}
