// Package cmd wires up the CLI flags and dispatches to a chat mode.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"pcrchat/config"
	"pcrchat/internal/core"
	"pcrchat/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X pcrchat/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// isTerminal is replaced in tests.
var isTerminal = func() bool { //nolint:gochecknoglobals
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Execute parses args and runs pcrchat.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("pcrchat", flag.ContinueOnError)

	// ── identity ─────────────────────────────────────────────────
	fs.StringVarP(&cfg.Alias, "alias", "a", cfg.Alias, "Chat alias (prompted for when empty)")

	// ── connection ───────────────────────────────────────────────
	fs.StringVar(&cfg.Host, "host", cfg.Host, "Server IPv4 address; saved to the endpoint file")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Server port; saved to the endpoint file")
	fs.StringVar(&cfg.StorePath, "config", cfg.StorePath, "Endpoint file")

	timeoutSec := int(cfg.Timeout / time.Second)
	fs.IntVarP(&timeoutSec, "timeout", "w", timeoutSec, "Connect timeout in seconds")

	retries := cfg.ConnectAttempts - 1
	fs.IntVar(&retries, "retries", retries, "Extra connect attempts with backoff")

	// ── display ──────────────────────────────────────────────────
	typeDelayMs := int(cfg.TypeDelay / time.Millisecond)
	fs.IntVar(&typeDelayMs, "type-delay", typeDelayMs, "Milliseconds between characters of incoming chat")

	var noTypewriter bool
	fs.BoolVar(&noTypewriter, "no-typewriter", !cfg.Typewriter, "Print incoming chat a line at a time")
	fs.BoolVar(&cfg.Plain, "plain", cfg.Plain, "Line mode even on a terminal")

	// ── output ───────────────────────────────────────────────────
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, `Log file ("-" for stderr)`)
	baseVerbose := cfg.Verbose
	var verbosity int
	fs.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("pcrchat %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q (use --help for usage)", fs.Arg(0))
	}

	cfg.Verbose = baseVerbose + verbosity
	cfg.Timeout = time.Duration(timeoutSec) * time.Second
	cfg.ConnectAttempts = retries + 1
	cfg.TypeDelay = time.Duration(typeDelayMs) * time.Millisecond
	cfg.Typewriter = !noTypewriter
	if !isTerminal() {
		cfg.Plain = true
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger, closer := buildLogger(cfg)
	defer closer.Close()
	logger.Info("[START]: program started by the user...")

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// buildLogger logs to the rotating file, or to stderr for "-".  The
// full-screen UI owns the terminal, so stderr is only safe in line
// mode.
func buildLogger(cfg *config.Config) (*util.Logger, io.Closer) {
	if cfg.LogFile == "-" {
		return util.NewLogger(cfg.Verbose), nopCloser{}
	}
	return util.NewFileLogger(cfg.Verbose, cfg.LogFile)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `pcrchat – terminal chat client v%s

Connects to a chat server over TCP.  The server address is kept in
the endpoint file (default %s) and can be changed at runtime
with F2/F3 in the terminal UI or /ip and /port in line mode.

Usage:
  pcrchat [options]

Options:
`, version, config.DefaultStorePath)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  PCR_ALIAS, PCR_CONFIG, PCR_HOST, PCR_PORT, PCR_TIMEOUT, PCR_RETRIES,
  PCR_TYPE_DELAY_MS, PCR_NO_TYPEWRITER, PCR_PLAIN, PCR_LOG_FILE, PCR_VERBOSE

Examples:
  pcrchat -a bob                              Chat as bob
  pcrchat --host 192.168.1.20 -p 5050         Save a new server and chat
  echo "hello" | pcrchat -a bot               Send one line and leave
`)
}
