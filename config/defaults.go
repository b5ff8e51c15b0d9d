package config

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and profile loading.

const (
	// DefaultHost is the endpoint host used when -h is not given.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the endpoint port used when -p is not given.
	DefaultPort = 2333

	// DefaultBacklog is the listen backlog in server mode.  Only one
	// peer is ever served per run.
	DefaultBacklog = 1

	// DefaultVerbosity shows progress messages but not verbose detail.
	DefaultVerbosity = 1

	// MaxArgs is the largest accepted argument count, excluding the
	// program name.
	MaxArgs = 6
)
