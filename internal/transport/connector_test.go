package transport

import (
	"context"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	dterrors "dtcp/internal/errors"
	"dtcp/internal/metrics"
	"dtcp/util"
)

// scriptedDialer fails every address listed in fail and succeeds for
// the rest, recording the order of attempts.
type scriptedDialer struct {
	fail     map[string]error
	attempts []string
	networks []string
	opened   []net.Conn
}

func (d *scriptedDialer) Dial(_ context.Context, network, address string) (net.Conn, error) {
	d.attempts = append(d.attempts, address)
	d.networks = append(d.networks, network)
	if err, ok := d.fail[address]; ok {
		return nil, err
	}
	client, server := net.Pipe()
	d.opened = append(d.opened, client, server)
	return client, nil
}

func (d *scriptedDialer) close() {
	for _, c := range d.opened {
		c.Close()
	}
}

func refused() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
}

func newTestConnector(d Dialer, addrs ...string) *Connector {
	return &Connector{
		Resolver: &Resolver{Lookup: staticLookup(addrs...), Logger: util.NewLogger(0)},
		Dialer:   d,
		Logger:   util.NewLogger(0),
		Metrics:  metrics.New(),
	}
}

// TestConnector_FallsBackInOrder: attempts 1..N-1 fail, N succeeds.
func TestConnector_FallsBackInOrder(t *testing.T) {
	d := &scriptedDialer{fail: map[string]error{
		"[2001:db8::1]:2333": refused(),
		"192.0.2.1:2333":     refused(),
	}}
	defer d.close()

	c := newTestConnector(d, "2001:db8::1", "192.0.2.1", "192.0.2.2", "192.0.2.3")
	conn, err := c.Connect(context.Background(), Endpoint{Host: "relay.example", Port: 2333})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if conn == nil {
		t.Fatal("expected a connection")
	}

	want := []string{"[2001:db8::1]:2333", "192.0.2.1:2333", "192.0.2.2:2333"}
	if fmt.Sprint(d.attempts) != fmt.Sprint(want) {
		t.Errorf("attempts = %v, want %v", d.attempts, want)
	}
	if fmt.Sprint(d.networks) != "[tcp6 tcp4 tcp4]" {
		t.Errorf("networks = %v", d.networks)
	}
	if got := c.Metrics.ConnectAttempts(); got != 3 {
		t.Errorf("metrics attempts = %d, want 3", got)
	}
}

// TestConnector_AllFail: N candidates, N failures, one Attempt each.
func TestConnector_AllFail(t *testing.T) {
	addrs := []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"}
	d := &scriptedDialer{fail: map[string]error{}}
	for _, a := range addrs {
		key := a + ":2333"
		d.fail[key] = refused()
	}

	c := newTestConnector(d, addrs...)
	_, err := c.Connect(context.Background(), Endpoint{Host: "relay.example", Port: 2333})

	var ce *dterrors.ConnectError
	if !dterrors.As(err, &ce) {
		t.Fatalf("expected ConnectError, got %T: %v", err, err)
	}
	if len(ce.Attempts) != 3 || len(d.attempts) != 3 {
		t.Fatalf("attempts = %d (dialer saw %d), want 3", len(ce.Attempts), len(d.attempts))
	}
	for i, a := range ce.Attempts {
		if a.Addr != d.attempts[i] {
			t.Errorf("attempt %d = %s, dialer saw %s", i, a.Addr, d.attempts[i])
		}
	}
	if !dterrors.Is(err, syscall.ECONNREFUSED) {
		t.Error("ConnectError should unwrap to the attempt errors")
	}
}

// TestConnector_SocketFailureIsFatal: failing to create a socket stops
// the iteration at once.
func TestConnector_SocketFailureIsFatal(t *testing.T) {
	emfile := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("socket", syscall.EMFILE)}
	d := &scriptedDialer{fail: map[string]error{"192.0.2.1:2333": emfile}}
	defer d.close()

	c := newTestConnector(d, "192.0.2.1", "192.0.2.2")
	_, err := c.Connect(context.Background(), Endpoint{Host: "relay.example", Port: 2333})

	var ne *dterrors.NetworkError
	if !dterrors.As(err, &ne) || ne.Op != "socket" {
		t.Fatalf("expected socket NetworkError, got %T: %v", err, err)
	}
	if !dterrors.Is(err, dterrors.ErrSocket) || !dterrors.Is(err, syscall.EMFILE) {
		t.Errorf("error should wrap ErrSocket and EMFILE: %v", err)
	}
	if len(d.attempts) != 1 {
		t.Errorf("attempts = %v, want exactly the first candidate", d.attempts)
	}
}

func TestConnector_ResolutionFailure(t *testing.T) {
	d := &scriptedDialer{}
	c := newTestConnector(d) // lookup yields nothing

	_, err := c.Connect(context.Background(), Endpoint{Host: "nowhere.invalid", Port: 2333})
	var re *dterrors.ResolutionError
	if !dterrors.As(err, &re) {
		t.Fatalf("expected ResolutionError, got %T: %v", err, err)
	}
	if len(d.attempts) != 0 {
		t.Errorf("no dial expected, got %v", d.attempts)
	}
}

func TestConnector_Cancelled(t *testing.T) {
	d := &scriptedDialer{}
	c := newTestConnector(d, "192.0.2.1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Connect(ctx, Endpoint{Host: "relay.example", Port: 2333})
	if !dterrors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(d.attempts) != 0 {
		t.Errorf("no dial expected after cancel, got %v", d.attempts)
	}
}

// TestConnector_RealTCP dials a loopback listener through TCPDialer.
func TestConnector_RealTCP(t *testing.T) {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
	}()

	c := &Connector{
		Resolver: NewResolver(util.NewLogger(0)),
		Dialer:   &TCPDialer{Timeout: 2 * time.Second},
		Logger:   util.NewLogger(0),
	}
	port := ln.Addr().(*net.TCPAddr).Port
	conn, err := c.Connect(context.Background(), Endpoint{Host: "127.0.0.1", Port: port})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	conn.Close()
}
