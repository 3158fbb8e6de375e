package util

import (
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
)

func TestFormatAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"127.0.0.1", 5050, "127.0.0.1:5050"},
		{"::1", 443, "[::1]:443"},
	}
	for _, tt := range tests {
		if got := FormatAddr(tt.host, tt.port); got != tt.want {
			t.Errorf("FormatAddr(%q,%d) = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestIsClosed(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	go func() {
		if c, err := ln.Accept(); err == nil {
			defer c.Close()
			io.Copy(io.Discard, c) //nolint:errcheck
		}
	}()

	conn, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	_, readErr := conn.Read(make([]byte, 1))

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"read after close", readErr, true},
		{"wrapped ErrClosed", fmt.Errorf("x: %w", net.ErrClosed), true},
		{"eof", io.EOF, false},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsClosed(tt.err); got != tt.want {
				t.Errorf("IsClosed(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestBufPool_RoundTrip(t *testing.T) {
	buf := GetBuf()
	if buf == nil {
		t.Fatal("GetBuf returned nil")
	}
	if len(*buf) != ReadBufSize {
		t.Errorf("buffer size = %d, want %d", len(*buf), ReadBufSize)
	}
	PutBuf(buf)
	PutBuf(nil)
}
