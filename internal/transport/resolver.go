package transport

import (
	"context"
	"net"
	"net/netip"

	dterrors "dtcp/internal/errors"
	"dtcp/util"
)

// LookupFunc resolves host to IP addresses.  It matches
// (*net.Resolver).LookupNetIP.
type LookupFunc func(ctx context.Context, network, host string) ([]netip.Addr, error)

// Resolver turns an Endpoint into ordered candidate addresses using
// system name resolution.  Both families are accepted and the
// resolver's order is kept.
type Resolver struct {
	Lookup LookupFunc
	Logger *util.Logger
}

// NewResolver returns a Resolver backed by net.DefaultResolver.
func NewResolver(logger *util.Logger) *Resolver {
	return &Resolver{Lookup: net.DefaultResolver.LookupNetIP, Logger: logger}
}

// Resolve looks up ep.Host and pairs every result with ep.Port.  An
// error or an empty result is reported as *errors.ResolutionError.
func (r *Resolver) Resolve(ctx context.Context, ep Endpoint) ([]Candidate, error) {
	log := r.Logger.With("resolver")
	log.Info("looking up host: %s...", ep.Host)

	lookup := r.Lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupNetIP
	}

	ips, err := lookup(ctx, "ip", ep.Host)
	if err == nil && len(ips) == 0 {
		err = dterrors.ErrNoAddresses
	}
	if err != nil {
		log.Error("failed to look up host %s: %v", ep.Host, err)
		return nil, &dterrors.ResolutionError{Host: ep.Host, Err: err}
	}

	out := make([]Candidate, 0, len(ips))
	for _, ip := range ips {
		out = append(out, NewCandidate(ip, ep.Port))
	}
	log.Info("looked up %s: %d address(es)", ep.Host, len(out))
	for i, c := range out {
		log.Verbose("  #%d %s (%s)", i+1, c.IP(), c.Family())
	}
	return out, nil
}
