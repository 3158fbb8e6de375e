// Package client ties the connector and the session together for the
// presentation layer: it owns the single live session, forwards its
// events to a Listener, paces chat text, and reconnects when the user
// changes the server address.
package client

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"pcrchat/config"
	"pcrchat/internal/connector"
	"pcrchat/internal/errors"
	"pcrchat/internal/metrics"
	"pcrchat/internal/session"
	"pcrchat/util"
)

// Options configures a Client.  Store, Connector and Listener are
// required.
type Options struct {
	Alias     string
	Store     *config.Store
	Connector *connector.Connector
	Listener  Listener
	Pacer     Pacer // defaults to Bulk
	Logger    *util.Logger
	Metrics   *metrics.Collector
}

// Client holds at most one session at a time.  Connect, ChangeHost,
// ChangePort and Close are serialized; a new session is only started
// after the previous one and its event pump have fully stopped.
type Client struct {
	alias     string
	store     *config.Store
	connector *connector.Connector
	listener  Listener
	pacer     Pacer
	root      *util.Logger
	logger    *util.Logger
	metrics   *metrics.Collector

	opMu sync.Mutex // lifecycle operations

	mu         sync.RWMutex
	sess       *session.Session
	cancelPump context.CancelFunc
	pumpDone   chan struct{}
}

// New returns a Client; nothing is dialed until Connect.
func New(opts Options) *Client {
	pacer := opts.Pacer
	if pacer == nil {
		pacer = Bulk{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Client{
		alias:     opts.Alias,
		store:     opts.Store,
		connector: opts.Connector,
		listener:  opts.Listener,
		pacer:     pacer,
		root:      logger,
		logger:    logger.Named("client"),
		metrics:   opts.Metrics,
	}
}

// Connect loads the stored endpoint and connects to it, replacing any
// existing session.  The outcome is reported to the Listener; the
// returned error is non-nil only when the endpoint store is unusable.
func (c *Client) Connect(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.teardown()
	ep, err := c.store.Load()
	if err != nil {
		return err
	}
	c.connect(ctx, ep)
	return nil
}

// ChangeHost validates and stores a new server address, then
// reconnects with the same alias.
func (c *Client) ChangeHost(ctx context.Context, host string) error {
	if !connector.ValidateIP(host) {
		return &errors.ConfigError{
			Field:   "host",
			Value:   host,
			Message: "Please enter a valid ipv4 address",
		}
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()

	ep, err := c.store.SetHost(host)
	if err != nil {
		return err
	}
	c.logger.Info("ipv4 address has been changed to %s", host)
	c.reconnect(ctx, ep)
	return nil
}

// ChangePort validates and stores a new server port, then reconnects
// with the same alias.
func (c *Client) ChangePort(ctx context.Context, text string) error {
	if !connector.ValidatePort(text) {
		msg := "Port must be numbers!"
		if text != "" && strings.Trim(text, "0123456789") == "" {
			msg = "Max port number is 65535"
		}
		return &errors.ConfigError{Field: "port", Value: text, Message: msg}
	}
	port, _ := strconv.Atoi(text)

	c.opMu.Lock()
	defer c.opMu.Unlock()

	ep, err := c.store.SetPort(port)
	if err != nil {
		return err
	}
	c.logger.Info("port number has been changed to %d", port)
	c.reconnect(ctx, ep)
	return nil
}

// Send trims text and sends it as a chat line.
func (c *Client) Send(text string) error {
	c.mu.RLock()
	sess := c.sess
	c.mu.RUnlock()

	if sess == nil {
		return errors.ErrNotConnected
	}
	return sess.Send(strings.TrimSpace(text))
}

// Close ends the current session, if any.  It is safe to call more
// than once.
func (c *Client) Close() {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.teardown()
	c.logger.Verbose("metrics: %s", c.metrics.JSON())
}

func (c *Client) reconnect(ctx context.Context, ep config.Endpoint) {
	c.metrics.Reconnect()
	c.teardown()
	c.connect(ctx, ep)
}

// connect must be called with opMu held and no live session.
func (c *Client) connect(ctx context.Context, ep config.Endpoint) {
	out := c.connector.Connect(ctx, ep)

	if !out.OK() {
		c.listener.OnConnectFailed(out.Err, out.Endpoint)
		return
	}

	sess := session.Start(out.Conn, c.alias, session.Options{
		Logger:  c.root,
		Metrics: c.metrics,
	})
	pumpCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.sess = sess
	c.cancelPump = cancel
	c.pumpDone = done
	c.mu.Unlock()

	c.listener.OnConnected(out.Endpoint)
	go c.pump(pumpCtx, sess, done)
}

// teardown closes the session and waits for its pump and receive loop
// to exit.
func (c *Client) teardown() {
	c.mu.Lock()
	sess, cancel, done := c.sess, c.cancelPump, c.pumpDone
	c.sess, c.cancelPump, c.pumpDone = nil, nil, nil
	c.mu.Unlock()

	if sess == nil {
		return
	}
	sess.Close() //nolint:errcheck // socket close errors are not actionable
	cancel()
	<-done
	sess.Wait()
	c.logger.Debug("session %s torn down", sess.ID)
}

func (c *Client) pump(ctx context.Context, sess *session.Session, done chan struct{}) {
	defer close(done)

	for ev := range sess.Events() {
		if ctx.Err() != nil {
			return
		}
		switch ev.Kind {
		case session.RosterUpdate:
			c.listener.OnRosterUpdate(ev.Text)
		case session.ChatLine:
			if err := c.pacer.Pace(ctx, ev.Text, c.listener.OnChatAppend); err != nil {
				return
			}
		case session.Disconnected:
			c.listener.OnDisconnected(ev.Err)
		}
	}
}
