package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, the endpoint file, and environment variable
// loading.

const (
	// DefaultHost and DefaultPort make up the endpoint written on first run.
	DefaultHost = "127.0.0.1"
	DefaultPort = 5050

	// DefaultStorePath is the endpoint record, a dotfile in the working
	// directory.
	DefaultStorePath = ".pcr_ip_port.txt"

	// DefaultLogFile receives the rotated client log.
	DefaultLogFile = ".client.log"

	// DefaultConnTimeout bounds the TCP connect phase only.
	DefaultConnTimeout = 2 * time.Second

	// DefaultTypeDelay is the pause between characters of an incoming
	// chat line.
	DefaultTypeDelay = 70 * time.Millisecond

	// DefaultConnectAttempts is the number of dials per connect; 1
	// means no retry.
	DefaultConnectAttempts = 1

	// DefaultMaxRetryBackoff caps the delay between connect attempts.
	DefaultMaxRetryBackoff = 10 * time.Second

	// DefaultVerbosity logs at info level.
	DefaultVerbosity = 1
)

// DefaultEndpoint returns the endpoint used when no record exists.
func DefaultEndpoint() Endpoint {
	return Endpoint{Host: DefaultHost, Port: DefaultPort}
}
