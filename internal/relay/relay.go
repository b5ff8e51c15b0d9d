// Package relay runs the two forwarding loops of a session: stdin lines
// to the connection (outbound) and connection bytes to stdout
// (inbound).  The loops are independent; neither one ending stops the
// other.
//
// Cancellation differs per direction.  The outbound loop checks its
// context before every read, so a read already blocked on stdin is not
// interrupted.  The inbound loop has no check at all; it ends when the
// connection is closed underneath it.
package relay

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"

	dterrors "dtcp/internal/errors"
	"dtcp/internal/session"
	"dtcp/util"
)

// Relay is a running pair of forwarding loops bound to one session.
type Relay struct {
	sess         *session.Session
	outboundDone chan struct{}
	inboundDone  chan struct{}
}

// Start launches both loops and returns immediately.  ctx cancels the
// outbound loop only.
func Start(ctx context.Context, sess *session.Session) *Relay {
	r := &Relay{
		sess:         sess,
		outboundDone: make(chan struct{}),
		inboundDone:  make(chan struct{}),
	}

	go func() {
		defer close(r.outboundDone)
		Outbound(ctx, sess)
	}()
	go func() {
		defer close(r.inboundDone)
		Inbound(sess)
	}()
	return r
}

// OutboundDone is closed when the stdin → connection loop has ended.
func (r *Relay) OutboundDone() <-chan struct{} { return r.outboundDone }

// InboundDone is closed when the connection → stdout loop has ended.
func (r *Relay) InboundDone() <-chan struct{} { return r.inboundDone }

// Outbound forwards stdin to the connection one line at a time until
// ctx is cancelled or stdin is exhausted.  A line ends at '\n' or at
// end of input; its bytes are sent unchanged.
//
// A failed or short write is logged and counted, then the loop moves on
// to the next line.
func Outbound(ctx context.Context, sess *session.Session) {
	log := sess.Logger.With("send")
	in := bufio.NewReader(sess.Stdin)

	for {
		if ctx.Err() != nil {
			log.Debug("cancelled")
			return
		}

		line, rerr := in.ReadBytes('\n')
		if len(line) > 0 {
			send(sess, log, line)
		}

		if rerr != nil {
			if !errors.Is(rerr, io.EOF) {
				log.Error("failed to read input: %v", rerr)
			}
			log.Verbose("input closed")
			closeWrite(sess.Conn)
			return
		}
	}
}

func send(sess *session.Session, log *util.Logger, line []byte) {
	n, err := sess.Conn.Write(line)
	sess.Metrics.BytesSent(int64(n))

	switch {
	case err != nil:
		log.Error("failed to send: %v", err)
		sess.Metrics.SendFailed(err.Error())
	case n != len(line):
		log.Error("failed to send: wrote %d of %d bytes", n, len(line))
		sess.Metrics.SendFailed("short write")
	default:
		sess.Metrics.LineSent()
	}
}

// closeWrite half-closes TCP connections so the peer sees EOF while
// our read side stays open.
func closeWrite(conn net.Conn) {
	if cw, ok := conn.(interface{ CloseWrite() error }); ok {
		cw.CloseWrite() //nolint:errcheck
	}
}

// Inbound copies connection bytes to stdout verbatim, one fixed-size
// chunk at a time, flushing after each chunk.  It ends on EOF or on any
// read error, including the local close used for shutdown.
func Inbound(sess *session.Session) {
	log := sess.Logger.With("recv")
	buf := util.GetBuf()
	defer util.PutBuf(buf)

	for {
		n, err := sess.Conn.Read(*buf)
		if n > 0 {
			sess.Metrics.BytesReceived(int64(n))
			if _, werr := util.WriteFlush(sess.Stdout, (*buf)[:n]); werr != nil {
				log.Error("failed to write output: %v", werr)
			}
		}
		if err != nil {
			if dterrors.IsHarmless(err) {
				log.Verbose("connection closed")
			} else {
				log.Debug("read: %v", err)
			}
			return
		}
	}
}
