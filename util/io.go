package util

import (
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultBufSize is the standard buffer size for network I/O (32 KiB).
const DefaultBufSize = 32 * 1024

// Flusher is implemented by buffered sinks such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// WriteFlush writes p to w and flushes w when it buffers, so output
// appears as soon as it arrives.
func WriteFlush(w io.Writer, p []byte) (int, error) {
	n, err := w.Write(p)
	if err != nil {
		return n, err
	}
	if f, ok := w.(Flusher); ok {
		return n, f.Flush()
	}
	return n, nil
}

// IsTerminal reports whether r is an interactive terminal.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
