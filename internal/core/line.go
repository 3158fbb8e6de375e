package core

import (
	"context"
	"fmt"
	"io"
	"os"

	"pcrchat/internal/console"
)

// LineMode reads chat lines from stdin and prints events to stdout,
// for pipes and dumb terminals.
type LineMode struct {
	Components

	// Stdin/Stdout default to os.Stdin/os.Stdout when nil.
	// Override in tests for deterministic I/O.
	Stdin  io.Reader
	Stdout io.Writer
}

func (m *LineMode) stdin() io.Reader {
	if m.Stdin != nil {
		return m.Stdin
	}
	return os.Stdin
}

func (m *LineMode) stdout() io.Writer {
	if m.Stdout != nil {
		return m.Stdout
	}
	return os.Stdout
}

// Run prompts for an alias when none is configured, then chats until
// /quit, end of input or ctx is cancelled.
func (m *LineMode) Run(ctx context.Context) error {
	defer m.Connector.Close()

	con := console.New(m.stdin(), m.stdout(), m.Logger)

	alias := m.Alias
	if alias == "" {
		var err error
		if alias, err = con.PromptAlias(); err != nil {
			return fmt.Errorf("read alias: %w", err)
		}
	}

	m.Logger.Verbose("starting line mode as %q", alias)
	return con.Run(ctx, m.NewClient(alias, con))
}
