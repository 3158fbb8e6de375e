// Package config defines the runtime configuration for pcrchat and the
// on-disk store for the server endpoint.
package config

import (
	"fmt"
	"strings"
	"time"

	"pcrchat/internal/errors"
	"pcrchat/util"
)

// Endpoint identifies the chat server.
type Endpoint struct {
	Host string
	Port int
}

// String returns "host:port".
func (e Endpoint) String() string { return util.FormatAddr(e.Host, e.Port) }

// Record returns the single-line form kept in the store: "host,port".
func (e Endpoint) Record() string { return fmt.Sprintf("%s,%d", e.Host, e.Port) }

// Config holds every tuneable for a pcrchat run.
type Config struct {
	// ── Identity ─────────────────────────────────────────────────────
	Alias string // prompted for when empty

	// ── Connection ───────────────────────────────────────────────────
	StorePath       string
	Host            string // overrides the stored host when set
	Port            int    // overrides the stored port when >= 0
	Timeout         time.Duration
	ConnectAttempts int

	// ── Display ──────────────────────────────────────────────────────
	TypeDelay  time.Duration
	Typewriter bool
	Plain      bool // line mode even on a terminal

	// ── Output ───────────────────────────────────────────────────────
	LogFile string // "-" logs to stderr
	Verbose int
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		StorePath:       DefaultStorePath,
		Port:            -1,
		Timeout:         DefaultConnTimeout,
		ConnectAttempts: DefaultConnectAttempts,
		TypeDelay:       DefaultTypeDelay,
		Typewriter:      true,
		LogFile:         DefaultLogFile,
		Verbose:         DefaultVerbosity,
	}
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
// Host and port syntax are checked by the caller with the connector's
// validators before they are saved.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Alias, "\r\n") {
		return &errors.ConfigError{
			Field:   "alias",
			Value:   c.Alias,
			Message: "must be a single line",
		}
	}
	if c.StorePath == "" {
		return &errors.ConfigError{
			Field:   "config",
			Message: "endpoint file path is empty",
			Hint:    "the default is " + DefaultStorePath,
		}
	}
	if c.Timeout <= 0 {
		return &errors.ConfigError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "must be positive",
			Hint:    "the connect timeout defaults to 2s",
		}
	}
	if c.ConnectAttempts < 1 {
		return &errors.ConfigError{
			Field:   "retries",
			Value:   c.ConnectAttempts - 1,
			Message: "cannot be negative",
		}
	}
	if c.TypeDelay < 0 {
		return &errors.ConfigError{
			Field:   "type-delay",
			Value:   c.TypeDelay,
			Message: "cannot be negative",
			Hint:    "use --no-typewriter to print whole lines",
		}
	}
	if c.Port > 65535 {
		return &errors.ConfigError{
			Field:   "port",
			Value:   c.Port,
			Message: "out of range 0-65535",
			Hint:    "Max port number is 65535",
		}
	}
	return nil
}
