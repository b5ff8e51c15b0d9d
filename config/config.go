// Package config defines the runtime configuration for dtcp and provides
// helpers for parsing roles and ports.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	dterrors "dtcp/internal/errors"
)

// Role selects how the single connection is established.
type Role int

const (
	RoleClient Role = iota // dial the endpoint
	RoleServer             // bind the endpoint and accept one peer
)

func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleServer:
		return "server"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole accepts "client"/"c" or "server"/"s", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "c":
		return RoleClient, nil
	case "server", "s":
		return RoleServer, nil
	default:
		return RoleClient, fmt.Errorf("unknown role %q (want client or server)", s)
	}
}

// Config holds every tuneable for a single dtcp run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Role    Role
	Host    string
	Port    int
	Timeout time.Duration // per-candidate connect timeout, 0 = none

	// ── Output ───────────────────────────────────────────────────────
	Verbose int

	// ── Sources ──────────────────────────────────────────────────────
	ProfilePath string // --config: optional YAML profile
}

// Default returns a Config populated with the documented defaults.
func Default() *Config {
	return &Config{
		Role:    RoleClient,
		Host:    DefaultHost,
		Port:    DefaultPort,
		Verbose: DefaultVerbosity,
	}
}

// ── Port helpers ─────────────────────────────────────────────────────

// ParsePort accepts a decimal port in 1-65535 or a TCP service name
// such as "http".
func ParsePort(spec string) (int, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, fmt.Errorf("port is empty")
	}

	if port, err := strconv.Atoi(spec); err == nil {
		if port < 1 || port > 65535 {
			return 0, fmt.Errorf("port %d out of range 1-65535", port)
		}
		return port, nil
	}

	port, err := net.LookupPort("tcp", spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	return port, nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Role != RoleClient && c.Role != RoleServer {
		return &dterrors.ConfigError{
			Field:   "role",
			Value:   int(c.Role),
			Message: "unknown role",
			Hint:    "use -c for client or -s for server",
		}
	}
	if strings.TrimSpace(c.Host) == "" {
		return &dterrors.ConfigError{
			Field:   "host",
			Message: "must not be empty",
			Hint:    "pass -h <host>, e.g. -h " + DefaultHost,
		}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &dterrors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 1-65535",
			Hint:    "use a port between 1 and 65535",
		}
	}
	if c.Timeout < 0 {
		return &dterrors.ConfigError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must not be negative",
		}
	}
	return nil
}
