// Package session represents the single connection lifecycle of a run,
// binding the network connection with its I/O endpoints.
//
// Sessions decouple the relay from concrete I/O sources: the relay
// doesn't need to know whether it's reading from os.Stdin or a test
// buffer, it just uses the session's Stdin/Stdout.
package session

import (
	"io"
	"net"

	"dtcp/internal/metrics"
	"dtcp/util"
)

// Session encapsulates the runtime context for one connection.
type Session struct {
	Conn    net.Conn
	Stdin   io.Reader
	Stdout  io.Writer
	Logger  *util.Logger
	Metrics *metrics.Collector // may be nil
}

// New creates a Session bound to the given connection and I/O pair.
func New(conn net.Conn, stdin io.Reader, stdout io.Writer, logger *util.Logger, m *metrics.Collector) *Session {
	return &Session{
		Conn:    conn,
		Stdin:   stdin,
		Stdout:  stdout,
		Logger:  logger,
		Metrics: m,
	}
}
