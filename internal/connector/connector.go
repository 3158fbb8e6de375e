// Package connector opens the chat connection and classifies the
// outcome as connected, refused or unreachable.
package connector

import (
	"context"
	"fmt"
	"time"

	"pcrchat/config"
	"pcrchat/internal/errors"
	"pcrchat/internal/metrics"
	"pcrchat/internal/retry"
	"pcrchat/internal/transport"
	"pcrchat/util"
)

// Connector dials chat endpoints.
type Connector struct {
	Dialer transport.Dialer

	// Store re-resolves the displayed endpoint when the network is
	// unreachable.  Optional.
	Store *config.Store

	// Attempts is the number of dials per Connect; values below 2
	// disable retrying.
	Attempts int
	MaxDelay time.Duration

	Logger  *util.Logger
	Metrics *metrics.Collector
}

// New returns a Connector dialing plain TCP with the given connect
// timeout.
func New(timeout time.Duration, store *config.Store, logger *util.Logger, m *metrics.Collector) *Connector {
	return &Connector{
		Dialer:   &transport.TCPDialer{Timeout: timeout},
		Store:    store,
		Attempts: config.DefaultConnectAttempts,
		MaxDelay: config.DefaultMaxRetryBackoff,
		Logger:   logger,
		Metrics:  m,
	}
}

// Connect dials ep and classifies the result.  It never returns a
// Go error: failures are carried in the Outcome.  Only refused and
// timed-out dials are retried.
func (c *Connector) Connect(ctx context.Context, ep config.Endpoint) Outcome {
	var out Outcome

	b := retry.New(max(c.Attempts, 1), c.MaxDelay)
	b.OnRetry = func(attempt int, err error, wait time.Duration) {
		c.Logger.Warn("connect attempt %d to %s failed: %v; retrying in %s",
			attempt, ep, err, wait.Truncate(time.Millisecond))
	}
	_ = b.Do(ctx, func(_ int) error {
		out = c.dial(ctx, ep)
		if out.OK() {
			return nil
		}
		if ctx.Err() != nil || !errors.IsRetryable(out.Err) {
			return retry.Permanent(out.Err)
		}
		return out.Err
	})

	if !out.OK() {
		c.Metrics.ConnectFailed()
		c.Metrics.RecordError(out.Err.Error())
	}
	return out
}

func (c *Connector) dial(ctx context.Context, ep config.Endpoint) Outcome {
	addr := ep.String()
	c.Logger.Info("trying to connect to the server at %s...", addr)

	conn, err := c.Dialer.Dial(ctx, "tcp", addr)
	if err == nil {
		c.Logger.Info("connected to %s", addr)
		return Outcome{State: Connected, Conn: conn, Endpoint: ep}
	}

	nerr := errors.Wrap("dial", addr, err)
	if errors.IsRefused(err) {
		c.Logger.Warn("could not connect to the server!")
		c.Logger.Error("verify that the server is running and ip/port are correct! (%v)", err)
		return Outcome{
			State:    Refused,
			Endpoint: ep,
			Err:      fmt.Errorf("%w: %w", errors.ErrConnectionRefused, nerr),
		}
	}

	cause := errors.ErrNetworkUnreachable
	if errors.IsTimeout(err) {
		cause = errors.ErrConnectTimeout
	}
	c.Logger.Warn("could not connect to the server!")
	c.Logger.Error("are you connected to the internet? (%v)", err)
	return Outcome{
		State:    Unreachable,
		Endpoint: c.fallback(ep),
		Err:      fmt.Errorf("%w: %w", cause, nerr),
	}
}

// fallback returns the stored endpoint for display, or ep when there
// is no store or it cannot be read.
func (c *Connector) fallback(ep config.Endpoint) config.Endpoint {
	if c.Store == nil {
		return ep
	}
	stored, err := c.Store.Load()
	if err != nil {
		c.Logger.Warn("reload endpoint: %v", err)
		return ep
	}
	return stored
}

// Close releases the dialer.
func (c *Connector) Close() error { return c.Dialer.Close() }
