package transport

import (
	"net"
	"net/netip"

	"dtcp/util"
)

// Endpoint is the user-specified host/port a run resolves or binds.
// Host may be a name or a literal address.
type Endpoint struct {
	Host string
	Port int
}

func (e Endpoint) String() string { return util.FormatAddr(e.Host, e.Port) }

// Family is the address family of a resolved candidate.
type Family int

const (
	IPv4 Family = 4
	IPv6 Family = 6
)

func (f Family) String() string {
	if f == IPv4 {
		return "IPv4"
	}
	return "IPv6"
}

// Candidate is one concrete TCP address an Endpoint resolved to.
type Candidate struct {
	Addr netip.AddrPort
}

// NewCandidate pairs a resolved IP with the endpoint port.  IPv4-mapped
// IPv6 addresses are unmapped so they dial as IPv4.
func NewCandidate(ip netip.Addr, port int) Candidate {
	return Candidate{Addr: netip.AddrPortFrom(ip.Unmap(), uint16(port))}
}

// Family reports whether the candidate is IPv4 or IPv6.
func (c Candidate) Family() Family {
	if c.Addr.Addr().Is4() {
		return IPv4
	}
	return IPv6
}

// Network returns the dial/listen network matching the family.
func (c Candidate) Network() string {
	if c.Family() == IPv4 {
		return "tcp4"
	}
	return "tcp6"
}

// IP renders the address without the port, e.g. "::1".
func (c Candidate) IP() string { return c.Addr.Addr().String() }

// String renders "ip:port", bracketing IPv6.
func (c Candidate) String() string { return c.Addr.String() }

// TCPAddr converts the candidate for use with the net package.
func (c Candidate) TCPAddr() *net.TCPAddr { return net.TCPAddrFromAddrPort(c.Addr) }
