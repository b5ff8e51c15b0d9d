package core

import (
	"fmt"

	"dtcp/config"
	"dtcp/internal/metrics"
	"dtcp/internal/transport"
	"dtcp/util"
)

// Build constructs the Mode for cfg.Role.  m may be nil.
func Build(cfg *config.Config, logger *util.Logger, m *metrics.Collector) (Mode, error) {
	ep := transport.Endpoint{Host: cfg.Host, Port: cfg.Port}
	resolver := transport.NewResolver(logger)

	switch cfg.Role {
	case config.RoleClient:
		return &ConnectMode{
			Connector: &transport.Connector{
				Resolver: resolver,
				Dialer:   &transport.TCPDialer{Timeout: cfg.Timeout},
				Logger:   logger,
				Metrics:  m,
			},
			Endpoint: ep,
		}, nil
	case config.RoleServer:
		return &ListenMode{
			Listener: transport.NewListener(resolver, logger),
			Endpoint: ep,
		}, nil
	default:
		return nil, fmt.Errorf("unknown role %v", cfg.Role)
	}
}
