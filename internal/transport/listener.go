package transport

import (
	"context"
	"fmt"
	"net"
	"sync"

	"dtcp/config"
	dterrors "dtcp/internal/errors"
	"dtcp/util"
)

// ListenerState tracks server-side progress.  Transitions only move
// forward: Unbound → Bound → Listening → Accepted.
type ListenerState int

const (
	Unbound ListenerState = iota
	Bound
	Listening
	Accepted
)

func (s ListenerState) String() string {
	switch s {
	case Unbound:
		return "unbound"
	case Bound:
		return "bound"
	case Listening:
		return "listening"
	case Accepted:
		return "accepted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Listener binds the first candidate of an endpoint and accepts exactly
// one peer.
type Listener struct {
	Resolver *Resolver
	Backlog  int // listen backlog, defaults to config.DefaultBacklog
	Logger   *util.Logger

	mu    sync.Mutex
	state ListenerState
	addr  net.Addr
	ready chan struct{}
}

// NewListener returns an Unbound listener.
func NewListener(r *Resolver, logger *util.Logger) *Listener {
	return &Listener{
		Resolver: r,
		Backlog:  config.DefaultBacklog,
		Logger:   logger,
		ready:    make(chan struct{}),
	}
}

// State returns the current position in the state machine.
func (l *Listener) State() ListenerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Addr returns the bound address once the listener is Listening.
func (l *Listener) Addr() net.Addr {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addr
}

// Ready is closed once the socket is listening.
func (l *Listener) Ready() <-chan struct{} { return l.ready }

func (l *Listener) setState(s ListenerState) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// ListenAndAccept binds the first resolved address of ep, listens, and
// blocks until one client connects.  There is no accept timeout; a
// cancelled ctx closes the listening socket and returns ctx.Err().
// The listening socket is closed after the accept so no second client
// is ever taken.
func (l *Listener) ListenAndAccept(ctx context.Context, ep Endpoint) (net.Conn, error) {
	if l.State() != Unbound {
		return nil, fmt.Errorf("listener already used (%s)", l.State())
	}

	candidates, err := l.Resolver.Resolve(ctx, ep)
	if err != nil {
		return nil, err
	}
	cand := candidates[0]
	log := l.Logger.With("listener")

	backlog := l.Backlog
	if backlog <= 0 {
		backlog = config.DefaultBacklog
	}

	ln, err := bindAndListen(ctx, cand, backlog, func() {
		l.setState(Bound)
		log.Verbose("bound %s", cand)
	})
	if err != nil {
		log.Error("%v", err)
		return nil, err
	}

	l.mu.Lock()
	l.state = Listening
	l.addr = ln.Addr()
	l.mu.Unlock()
	close(l.ready)
	log.Info("listening on %s (backlog %d)", ln.Addr(), backlog)

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			ln.Close()
		case <-stop:
		}
	}()

	conn, err := ln.Accept()
	ln.Close()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Error("failed to accept: %v", err)
		return nil, dterrors.Wrap("accept", cand.String(), err)
	}

	l.setState(Accepted)
	log.Info("accepted connection from %s", conn.RemoteAddr())
	return conn, nil
}
