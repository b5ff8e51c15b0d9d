package transport

import (
	"context"
	"net"
	"time"
)

// TCPDialer establishes plain TCP connections to one candidate address.
type TCPDialer struct {
	Timeout time.Duration // per-attempt timeout, 0 = none
}

// Dial connects to address over TCP.  network is "tcp4" or "tcp6" so
// the socket matches the candidate's family.  On failure the net
// package has already closed the partially-opened socket.
func (d *TCPDialer) Dial(ctx context.Context, network, address string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: d.Timeout}
	return dialer.DialContext(ctx, network, address)
}
