package core

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"pcrchat/config"
	"pcrchat/internal/client"
	"pcrchat/util"
)

// syncBuffer is a bytes.Buffer safe for one writer and one poller.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timeout waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

// TestLineMode_EndToEnd runs a full chat against a loopback server:
// alias handshake, inbound chat, outbound chat and the leave notice.
func TestLineMode_EndToEnd(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		if c, err := ln.Accept(); err == nil {
			accepted <- c
		}
	}()

	cfg := config.New()
	cfg.StorePath = t.TempDir() + "/" + config.DefaultStorePath
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	cfg.Alias = "bob"
	cfg.Plain = true
	cfg.Typewriter = false

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	stdin, input := io.Pipe()
	defer input.Close()
	out := &syncBuffer{}
	lm := mode.(*LineMode)
	lm.Stdin, lm.Stdout = stdin, out

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	runErr := make(chan error, 1)
	go func() { runErr <- lm.Run(ctx) }()

	var server net.Conn
	select {
	case server = <-accepted:
	case <-time.After(3 * time.Second):
		t.Fatal("no connection")
	}
	defer server.Close()
	server.SetReadDeadline(time.Now().Add(5 * time.Second))

	io.WriteString(server, "ALIAS")
	buf := make([]byte, 3)
	if _, err := io.ReadFull(server, buf); err != nil || string(buf) != "bob" {
		t.Fatalf("alias reply = %q, %v", buf, err)
	}

	io.WriteString(server, "alice: hi\n")
	waitFor(t, "chat line on stdout", func() bool { return strings.Contains(out.String(), "alice: hi\n") })
	if !strings.Contains(out.String(), client.StatusConnected) {
		t.Errorf("stdout missing connect status: %q", out.String())
	}

	io.WriteString(input, "hello\n")
	line := make([]byte, len("bob: hello\n"))
	if _, err := io.ReadFull(server, line); err != nil || string(line) != "bob: hello\n" {
		t.Fatalf("server got %q, %v", line, err)
	}

	io.WriteString(input, "/quit\n")
	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after /quit")
	}

	rest, _ := io.ReadAll(server)
	if string(rest) != "bob has left the chat...\n" {
		t.Errorf("leave notice = %q", rest)
	}
}

// freePort returns a loopback port with no listener behind it.
func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	return ln.Addr().(*net.TCPAddr).Port
}

// TestLineMode_AliasFromStdin verifies the alias prompt and that a
// refused connect is reported rather than returned.
func TestLineMode_AliasFromStdin(t *testing.T) {
	cfg := config.New()
	cfg.StorePath = t.TempDir() + "/" + config.DefaultStorePath
	cfg.Port = freePort(t)
	cfg.Plain = true

	mode, err := Build(cfg, util.NewLogger(0))
	if err != nil {
		t.Fatal(err)
	}
	out := &syncBuffer{}
	lm := mode.(*LineMode)
	lm.Stdin, lm.Stdout = strings.NewReader("carol\n"), out

	if err := lm.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "Enter your alias:") || !strings.Contains(got, client.StatusCheckServer) {
		t.Errorf("stdout = %q", got)
	}
}
