// Package core is the orchestration layer.  It composes the transport
// and relay packages into one complete run and provides a builder that
// selects the connection mode from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  session  →  relay  →  core  →  cmd (CLI)
package core

import (
	"context"
	"net"
)

// Mode obtains the single connection of a run, either by dialing
// (client) or by accepting one peer (server).
type Mode interface {
	Establish(ctx context.Context) (net.Conn, error)
}
