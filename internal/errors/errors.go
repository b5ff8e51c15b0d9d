// Package errors provides domain-specific error types for dtcp.
//
// These types carry structured context (operation, address, attempts)
// that lets callers tell fatal setup failures apart from the per-candidate
// failures the connector skips over, and gives better diagnostics than
// plain string wrapping.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNoAddresses = errors.New("no addresses found")
	ErrSocket      = errors.New("failed to obtain socket")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a single network operation.
type NetworkError struct {
	Op   string // operation: "socket", "bind", "listen", "accept", "dial"
	Addr string // network address involved
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ResolutionError reports a host that could not be turned into any
// candidate address.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to look up host %q: %v", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// Attempt records one failed connect to a candidate address.
type Attempt struct {
	Addr string
	Err  error
}

// ConnectError is returned once every candidate address has been tried
// and none accepted the connection.
type ConnectError struct {
	Endpoint string
	Attempts []Attempt
}

func (e *ConnectError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "failed to connect to %s after %d attempt(s)", e.Endpoint, len(e.Attempts))
	for _, a := range e.Attempts {
		fmt.Fprintf(&b, "\n  %s: %v", a.Addr, a.Err)
	}
	return b.String()
}

// Unwrap exposes every attempt's error to [errors.Is] and [errors.As].
func (e *ConnectError) Unwrap() []error {
	out := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		out = append(out, a.Err)
	}
	return out
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{Op: op, Addr: addr, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsSocketFailure reports whether err came from the socket(2) call
// itself rather than from connecting an already-created socket.  The
// net package reports those as *os.SyscallError{Syscall: "socket"}.
func IsSocketFailure(err error) bool {
	if errors.Is(err, ErrSocket) {
		return true
	}
	var se *os.SyscallError
	return errors.As(err, &se) && se.Syscall == "socket"
}

// IsHarmless returns true for errors that are expected during shutdown:
// the peer closed its side or we closed the connection ourselves.
func IsHarmless(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) {
		return true
	}
	// net.OpError wrapping "use of closed network connection"
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, net.ErrClosed)
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use dtcp/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
