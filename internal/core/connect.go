package core

import (
	"context"
	"net"

	"dtcp/internal/transport"
)

// ConnectMode dials the endpoint with multi-address fallback: the
// client role.
type ConnectMode struct {
	Connector *transport.Connector
	Endpoint  transport.Endpoint
}

// Establish returns the first candidate connection that succeeds.
func (m *ConnectMode) Establish(ctx context.Context) (net.Conn, error) {
	return m.Connector.Connect(ctx, m.Endpoint)
}
