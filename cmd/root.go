// Package cmd wires up the CLI flags and dispatches to the relay core.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"dtcp/config"
	"dtcp/internal/core"
	dterrors "dtcp/internal/errors"
	"dtcp/internal/metrics"
	"dtcp/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X dtcp/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// UsageError reports a malformed command line.  Usage has already been
// printed when it is returned.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

type action int

const (
	actionRun action = iota
	actionHelp
	actionVersion
)

// invocation is a parsed command line.
type invocation struct {
	action action
	cfg    *config.Config
	quiet  bool
}

// Execute parses args (without the program name) and runs one relay
// session until ctx is cancelled.
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	inv, err := parseArgs(args)
	if err != nil {
		if dterrors.As(err, new(*UsageError)) {
			printUsage(stderr)
		}
		return err
	}

	switch inv.action {
	case actionHelp:
		printUsage(stderr)
		return nil
	case actionVersion:
		fmt.Fprintf(stdout, "dtcp %s\n", version)
		return nil
	}

	cfg := inv.cfg
	if inv.quiet {
		cfg.Verbose = 0
	}

	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(stderr)
	logger.Debug("config: role=%s host=%s port=%d timeout=%s", cfg.Role, cfg.Host, cfg.Port, cfg.Timeout)

	m := metrics.New()
	mode, err := core.Build(cfg, logger, m)
	if err != nil {
		return err
	}

	ctrl := &core.Controller{Mode: mode, Logger: logger, Metrics: m}
	return ctrl.Run(ctx)
}

// parseArgs turns the command line into an invocation.  Precedence,
// highest first: explicit flags, the --config profile, defaults.
func parseArgs(args []string) (*invocation, error) {
	if len(args) == 1 && args[0] == "--help" {
		return &invocation{action: actionHelp}, nil
	}
	if len(args) > config.MaxArgs {
		return nil, usageErrorf("too many arguments (%d, at most %d)", len(args), config.MaxArgs)
	}

	fs := newFlagSet()
	f := newFlags()
	f.register(fs)

	if err := fs.Parse(args); err != nil {
		if dterrors.Is(err, flag.ErrHelp) {
			return nil, usageErrorf("--help must be the only argument")
		}
		return nil, &UsageError{Err: err}
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, usageErrorf("unexpected argument %q", rest[0])
	}
	if f.version {
		return &invocation{action: actionVersion}, nil
	}

	cfg := config.Default()
	if f.profilePath != "" {
		p, err := config.LoadProfile(f.profilePath)
		if err != nil {
			return nil, err
		}
		if err := p.Apply(cfg); err != nil {
			return nil, err
		}
		cfg.ProfilePath = f.profilePath
	}

	if fs.Changed("client") || fs.Changed("server") {
		cfg.Role = f.role
	}
	if fs.Changed("host") {
		cfg.Host = f.host
	}
	if fs.Changed("port") {
		n, err := config.ParsePort(f.port)
		if err != nil {
			return nil, &UsageError{Err: fmt.Errorf("port: %w", err)}
		}
		cfg.Port = n
	}
	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(f.timeoutSec) * time.Second
	}
	if fs.Changed("verbose") {
		cfg.Verbose += f.verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, &UsageError{Err: err}
	}
	return &invocation{action: actionRun, cfg: cfg, quiet: f.quiet}, nil
}

// newFlagSet returns a silent flag set; errors and usage are reported
// by run.
func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("dtcp", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	return fs
}

// flags holds the raw flag values before they are merged into a Config.
type flags struct {
	role        config.Role
	host        string
	port        string
	timeoutSec  int
	verbose     int
	quiet       bool
	profilePath string
	version     bool
}

func newFlags() *flags {
	return &flags{role: config.RoleClient}
}

func (f *flags) register(fs *flag.FlagSet) {
	// ── role ─────────────────────────────────────────────────────
	roleVar(fs, &f.role, config.RoleClient, "client", "c", "Run as client (default)")
	roleVar(fs, &f.role, config.RoleServer, "server", "s", "Run as server, accept one client")

	// ── endpoint ─────────────────────────────────────────────────
	fs.StringVarP(&f.host, "host", "h", config.DefaultHost, "Endpoint host")
	fs.StringVarP(&f.port, "port", "p", strconv.Itoa(config.DefaultPort), "Endpoint port or service name")
	fs.IntVarP(&f.timeoutSec, "timeout", "w", 0, "Per-address connect timeout in seconds")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&f.verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "Only log errors")

	// ── misc ─────────────────────────────────────────────────────
	fs.StringVar(&f.profilePath, "config", "", "YAML profile with default settings")
	fs.BoolVar(&f.version, "version", false, "Print version and exit")
}

// ── helpers ──────────────────────────────────────────────────────────

// roleFlag is a boolean-style flag that selects a role.  Two of them
// share one destination, so whichever appears last on the command line
// wins.
type roleFlag struct {
	dst  *config.Role
	role config.Role
}

func roleVar(fs *flag.FlagSet, dst *config.Role, role config.Role, name, short, usage string) {
	f := fs.VarPF(&roleFlag{dst: dst, role: role}, name, short, usage)
	f.NoOptDefVal = "true"
}

func (f *roleFlag) String() string {
	if f == nil || f.dst == nil {
		return "false"
	}
	return strconv.FormatBool(*f.dst == f.role)
}

func (f *roleFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*f.dst = f.role
	}
	return nil
}

func (f *roleFlag) Type() string     { return "bool" }
func (f *roleFlag) IsBoolFlag() bool { return true }

func printUsage(w io.Writer) {
	fs := newFlagSet()
	newFlags().register(fs)

	fmt.Fprintf(w, `dtcp - Duplex TCP Relay v%s

Relays stdin lines to a TCP peer and the peer's bytes to stdout.

Usage:
  dtcp [-c] [-h <host>] [-p <port>]          Connect to a server
  dtcp -s [-h <host>] [-p <port>]            Accept one client
  dtcp --help                                Show this help

Options:
%s
Examples:
  dtcp -s -p 9000                            Serve on 127.0.0.1:9000
  dtcp -h example.com -p 9000                Connect to example.com:9000
  echo "hello" | dtcp -p 9000                Send one line
`, version, fs.FlagUsages())
}
