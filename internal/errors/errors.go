// Package errors provides domain-specific error types for pcrchat.
//
// Connect-time, write-time and receive-time failures each have a
// sentinel so the presentation layer can pick the right status line
// with errors.Is, while NetworkError carries the operation and address
// for the log.
package errors

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	// connect-time
	ErrConnectTimeout     = errors.New("connect timed out")
	ErrConnectionRefused  = errors.New("connection refused")
	ErrNetworkUnreachable = errors.New("network unreachable")

	// write-time, recoverable
	ErrSendFailed = errors.New("send failed")

	// receive-time, terminal for the session
	ErrPeerDisconnected  = errors.New("disconnected from the server")
	ErrConnectionAborted = errors.New("connection aborted")
	ErrMalformedRead     = errors.New("malformed data from the server")

	ErrSessionClosed = errors.New("session is closed")
	ErrNotConnected  = errors.New("not connected")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op        string // operation: "dial", "write", "read"
	Addr      string // network address involved
	Err       error  // underlying error
	Retryable bool   // whether the caller should retry
}

func (e *NetworkError) Error() string {
	s := fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
	if e.Retryable {
		s += " (retryable)"
	}
	return s
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError, automatically detecting retryability
// from the underlying error.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:        op,
		Addr:      addr,
		Err:       err,
		Retryable: classifyRetryable(err),
	}
}

// ── Classification helpers ───────────────────────────────────────────

// IsRefused reports whether err means the peer host answered but
// nothing was listening on the port.
func IsRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, ErrConnectionRefused)
}

// IsAborted reports whether err is a connection abort or reset seen
// on an established socket.
func IsAborted(err error) bool {
	return errors.Is(err, syscall.ECONNABORTED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, ErrConnectionAborted)
}

// IsBrokenPipe reports whether a write failed because the peer is gone.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET)
}

// IsTimeout reports whether err is a deadline or timeout condition.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, ErrConnectTimeout) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsRetryable reports whether err is worth retrying.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Retryable
	}
	return classifyRetryable(err)
}

// classifyRetryable inspects standard library error types.  A refused
// or timed-out dial is retryable: the server may simply not be up yet.
func classifyRetryable(err error) bool {
	if err == nil {
		return false
	}
	if IsRefused(err) || IsTimeout(err) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Temporary() //nolint:staticcheck // Temporary is deprecated but still useful
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Temporary() //nolint:staticcheck
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use pcrchat/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
