package core

import (
	"context"
	"net"

	"dtcp/internal/transport"
)

// ListenMode binds the endpoint and accepts exactly one peer: the
// server role.
type ListenMode struct {
	Listener *transport.Listener
	Endpoint transport.Endpoint
}

// Establish blocks until one client has connected.
func (m *ListenMode) Establish(ctx context.Context) (net.Conn, error) {
	return m.Listener.ListenAndAccept(ctx, m.Endpoint)
}
