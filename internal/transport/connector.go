package transport

import (
	"context"
	"fmt"
	"net"

	dterrors "dtcp/internal/errors"
	"dtcp/internal/metrics"
	"dtcp/util"
)

// Connector dials an endpoint as a client, trying each resolved
// candidate in order until one accepts.
type Connector struct {
	Resolver *Resolver
	Dialer   Dialer
	Logger   *util.Logger
	Metrics  *metrics.Collector // may be nil
}

// Connect resolves ep and returns the first candidate connection that
// succeeds.  A failed candidate is logged and skipped.  A failure to
// create the socket at all aborts immediately.  Once every candidate
// has failed the result is *errors.ConnectError with one Attempt per
// candidate.
func (c *Connector) Connect(ctx context.Context, ep Endpoint) (net.Conn, error) {
	candidates, err := c.Resolver.Resolve(ctx, ep)
	if err != nil {
		return nil, err
	}

	log := c.Logger.With("connector")
	failed := &dterrors.ConnectError{Endpoint: ep.String()}

	for _, cand := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		log.Info("trying %s...", cand.IP())
		log.Info("connecting to server: %s...", cand)
		c.Metrics.ConnectAttempt()

		conn, err := c.Dialer.Dial(ctx, cand.Network(), cand.String())
		if err == nil {
			log.Info("connected to %s", conn.RemoteAddr())
			return conn, nil
		}

		if dterrors.IsSocketFailure(err) {
			log.Error("failed to obtain socket: %v", err)
			return nil, dterrors.Wrap("socket", cand.String(), fmt.Errorf("%w: %w", dterrors.ErrSocket, err))
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn("failed to connect to %s: %v", cand, err)
		failed.Attempts = append(failed.Attempts, dterrors.Attempt{Addr: cand.String(), Err: err})
	}

	log.Error("failed to connect to %s", ep)
	return nil, failed
}
