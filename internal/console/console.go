// Package console is the line-mode front end: it reads chat lines and
// slash commands from an input stream and prints session events as
// plain text.  It is used when stdout is not a terminal or --plain is
// given.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"pcrchat/config"
	"pcrchat/internal/client"
	"pcrchat/internal/errors"
	"pcrchat/util"
)

// Chat is the part of client.Client the console drives.
type Chat interface {
	Connect(ctx context.Context) error
	ChangeHost(ctx context.Context, host string) error
	ChangePort(ctx context.Context, port string) error
	Send(text string) error
	Close()
}

const help = `commands:
  /ip <ipv4>    change the server address and reconnect
  /port <n>     change the server port and reconnect
  /quit         leave the chat`

// Console implements client.Listener on top of a pair of streams.
type Console struct {
	sc     *bufio.Scanner
	out    io.Writer
	logger *util.Logger

	mu  sync.Mutex // serializes writes to out
	mid bool       // last chat chunk did not end a line
}

var _ client.Listener = (*Console)(nil)

// New returns a Console reading from in and printing to out.
func New(in io.Reader, out io.Writer, logger *util.Logger) *Console {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	c := &Console{out: out, logger: logger.Named("console")}
	if in != nil {
		c.sc = bufio.NewScanner(in)
	}
	return c
}

// PromptAlias asks for an alias until a non-empty line is entered.
func (c *Console) PromptAlias() (string, error) {
	for {
		c.status("Enter your alias:")
		if c.sc == nil || !c.sc.Scan() {
			if c.sc != nil && c.sc.Err() != nil {
				return "", c.sc.Err()
			}
			return "", io.ErrUnexpectedEOF
		}
		if alias := strings.TrimSpace(c.sc.Text()); alias != "" {
			return alias, nil
		}
	}
}

// Run connects, then feeds input lines to chat until /quit, end of
// input or ctx is cancelled.  The session is closed on return.
func (c *Console) Run(ctx context.Context, chat Chat) error {
	defer chat.Close()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := chat.Connect(ctx); err != nil {
		return err
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		if c.sc == nil {
			return
		}
		for c.sc.Scan() {
			select {
			case lines <- c.sc.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := c.sc.Err(); err != nil {
			c.logger.Warn("read input: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.logger.Verbose("interrupted")
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := c.handle(ctx, chat, line); quit {
				return nil
			}
		}
	}
}

// handle processes one input line and reports whether to quit.
func (c *Console) handle(ctx context.Context, chat Chat, line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		if err := chat.Send(line); err != nil {
			c.logger.Warn("send: %v", err)
			c.status(client.StatusText(err))
		}
		return false
	}

	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/ip":
		c.report(chat.ChangeHost(ctx, arg))
	case "/port":
		c.report(chat.ChangePort(ctx, arg))
	default:
		c.status(help)
	}
	return false
}

func (c *Console) report(err error) {
	if err == nil {
		return
	}
	var cfgErr *errors.ConfigError
	if errors.As(err, &cfgErr) {
		c.status(cfgErr.Message)
		return
	}
	c.status(err.Error())
}

// ── client.Listener ──────────────────────────────────────────────────

func (c *Console) OnConnected(ep config.Endpoint) {
	c.status(fmt.Sprintf("ip: %s  port: %d\n%s", ep.Host, ep.Port, client.StatusConnected))
}

func (c *Console) OnConnectFailed(reason error, ep config.Endpoint) {
	c.status(fmt.Sprintf("ip: %s  port: %d\n%s", ep.Host, ep.Port, client.StatusText(reason)))
}

func (c *Console) OnRosterUpdate(text string) {
	c.status("[" + strings.TrimSpace(text) + "]")
}

func (c *Console) OnChatAppend(chunk string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, chunk) //nolint:errcheck
	c.mid = !strings.HasSuffix(chunk, "\n")
}

func (c *Console) OnDisconnected(reason error) {
	c.status(client.StatusText(reason))
}

// status prints a line of its own, ending any partial chat line first.
func (c *Console) status(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mid {
		io.WriteString(c.out, "\n") //nolint:errcheck
		c.mid = false
	}
	fmt.Fprintf(c.out, "%s\n", text)
}
