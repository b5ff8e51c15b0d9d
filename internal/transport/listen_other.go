//go:build !linux

package transport

import (
	"context"
	"net"

	dterrors "dtcp/internal/errors"
)

// bindAndListen falls back to the net package, which binds and listens
// in one step with the platform's default backlog.
func bindAndListen(ctx context.Context, cand Candidate, _ int, bound func()) (net.Listener, error) {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, cand.Network(), cand.String())
	if err != nil {
		return nil, dterrors.Wrap("listen", cand.String(), err)
	}
	bound()
	return ln, nil
}
