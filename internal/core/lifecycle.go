package core

import (
	"context"
	"errors"
	"io"
	"os"

	"dtcp/internal/metrics"
	"dtcp/internal/relay"
	"dtcp/internal/session"
	"dtcp/util"
)

// Controller owns the one connection of a run from establishment to
// close.
type Controller struct {
	Mode    Mode
	Logger  *util.Logger
	Metrics *metrics.Collector // may be nil

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (c *Controller) stdin() io.Reader {
	if c.Stdin != nil {
		return c.Stdin
	}
	return os.Stdin
}

func (c *Controller) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}

// Run establishes the connection, relays until ctx is done, then shuts
// down: the outbound loop is cancelled and the connection closed, which
// ends the inbound loop.  Run waits for the inbound loop but not for
// the outbound one, whose stdin read may never return.
//
// ctx is the stop flag; main cancels it on SIGINT/SIGTERM.  An
// interrupt before the connection exists is a clean stop, not an error.
func (c *Controller) Run(ctx context.Context) error {
	log := c.Logger.With("main")
	log.Info("starting...")

	conn, err := c.Mode.Establish(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, context.Canceled) {
			log.Info("stopping...")
			return nil
		}
		return err
	}
	c.Metrics.ConnectionOpened()

	stdin := c.stdin()
	if util.IsTerminal(stdin) {
		log.Info("type lines to send, Ctrl-C to quit")
	}

	outCtx, cancelOut := context.WithCancel(ctx)
	defer cancelOut()

	sess := session.New(conn, stdin, c.stdout(), c.Logger, c.Metrics)
	r := relay.Start(outCtx, sess)

	<-ctx.Done()
	log.Info("stopping...")

	cancelOut()
	conn.Close()
	c.Metrics.ConnectionClosed()
	<-r.InboundDone()

	log.Verbose("session summary:\n%s", c.Metrics.JSON())
	return nil
}
