package errors

import (
	"fmt"
	"io"
	"net"
	"os"
	"syscall"
	"testing"
)

func TestNetworkError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  NetworkError
		want string
	}{
		{
			name: "retryable",
			err:  NetworkError{Op: "dial", Addr: "127.0.0.1:5050", Err: io.EOF, Retryable: true},
			want: "dial 127.0.0.1:5050: EOF (retryable)",
		},
		{
			name: "non-retryable",
			err:  NetworkError{Op: "write", Addr: "10.0.0.2:5050", Err: fmt.Errorf("broken pipe")},
			want: "write 10.0.0.2:5050: broken pipe",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNetworkError_Unwrap(t *testing.T) {
	err := &NetworkError{Op: "read", Addr: "x", Err: io.EOF}
	if !Is(err, io.EOF) {
		t.Error("should unwrap to io.EOF")
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "port",
				Value:   99999,
				Message: "out of range 0-65535",
				Hint:    "Max port number is 65535",
			},
			want: "config: --port=99999: out of range 0-65535\n  hint: Max port number is 65535",
		},
		{
			name: "missing value no hint",
			err: ConfigError{
				Field:   "timeout",
				Message: "must be positive",
			},
			want: "config: --timeout: must be positive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	inner := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	err := Wrap("dial", "127.0.0.1:5050", inner)

	if err.Op != "dial" || err.Addr != "127.0.0.1:5050" {
		t.Errorf("wrong fields: Op=%q Addr=%q", err.Op, err.Addr)
	}
	if !Is(err, inner) {
		t.Error("should unwrap to inner error")
	}
	if !err.Retryable {
		t.Error("refused dial should be retryable")
	}
}

func TestIsRefused(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"errno", syscall.ECONNREFUSED, true},
		{"op error", &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, true},
		{"sentinel", fmt.Errorf("x: %w", ErrConnectionRefused), true},
		{"unreachable", syscall.ENETUNREACH, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRefused(tt.err); got != tt.want {
				t.Errorf("IsRefused() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsAborted(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"aborted", &net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNABORTED)}, true},
		{"reset", syscall.ECONNRESET, true},
		{"eof", io.EOF, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsAborted(tt.err); got != tt.want {
				t.Errorf("IsAborted() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(os.ErrDeadlineExceeded) {
		t.Error("deadline exceeded should be a timeout")
	}
	if !IsTimeout(fmt.Errorf("dial: %w", ErrConnectTimeout)) {
		t.Error("wrapped ErrConnectTimeout should be a timeout")
	}
	if IsTimeout(io.EOF) || IsTimeout(nil) {
		t.Error("EOF and nil are not timeouts")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"retryable network", &NetworkError{Op: "dial", Addr: "x", Err: io.EOF, Retryable: true}, true},
		{"non-retryable network", &NetworkError{Op: "dial", Addr: "x", Err: io.EOF, Retryable: false}, false},
		{"plain error", fmt.Errorf("boom"), false},
		{"timeout", os.ErrDeadlineExceeded, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{
		ErrConnectTimeout, ErrConnectionRefused, ErrNetworkUnreachable,
		ErrSendFailed, ErrPeerDisconnected, ErrConnectionAborted,
		ErrMalformedRead, ErrSessionClosed, ErrNotConnected,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
