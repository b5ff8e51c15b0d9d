//go:build linux

package transport

import (
	"context"
	"fmt"
	"net"
	"os"

	"golang.org/x/sys/unix"

	dterrors "dtcp/internal/errors"
)

// bindAndListen builds the listening socket by hand so the backlog is
// exactly what was asked for; net.Listen always uses somaxconn.
func bindAndListen(_ context.Context, cand Candidate, backlog int, bound func()) (net.Listener, error) {
	addr := cand.String()
	family, sa := sockaddr(cand)

	fd, err := unix.Socket(family, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return nil, dterrors.Wrap("socket", addr,
			fmt.Errorf("%w: %w", dterrors.ErrSocket, os.NewSyscallError("socket", err)))
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, dterrors.Wrap("setsockopt", addr, os.NewSyscallError("setsockopt", err))
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, dterrors.Wrap("bind", addr, os.NewSyscallError("bind", err))
	}
	bound()

	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return nil, dterrors.Wrap("listen", addr, os.NewSyscallError("listen", err))
	}

	// FileListener dups the descriptor; f owns the original.
	f := os.NewFile(uintptr(fd), "tcp:"+addr)
	defer f.Close()

	ln, err := net.FileListener(f)
	if err != nil {
		return nil, dterrors.Wrap("listen", addr, err)
	}
	return ln, nil
}

func sockaddr(cand Candidate) (int, unix.Sockaddr) {
	ip := cand.Addr.Addr()
	port := int(cand.Addr.Port())

	if ip.Is4() {
		return unix.AF_INET, &unix.SockaddrInet4{Port: port, Addr: ip.As4()}
	}

	sa := &unix.SockaddrInet6{Port: port, Addr: ip.As16()}
	if zone := ip.Zone(); zone != "" {
		if ifi, err := net.InterfaceByName(zone); err == nil {
			sa.ZoneId = uint32(ifi.Index)
		}
	}
	return unix.AF_INET6, sa
}
