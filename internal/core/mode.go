// Package core is the orchestration layer.  It composes the endpoint
// store, the connector and the chat client into a runnable front end
// and provides a builder that selects the right one from a Config.
//
// Architecture layers (bottom → top):
//
//	transport  →  connector  →  session  →  client  →  ui | console  →  core  →  cmd (CLI)
package core

import (
	"context"

	"pcrchat/config"
	"pcrchat/internal/client"
	"pcrchat/internal/connector"
	"pcrchat/internal/metrics"
	"pcrchat/util"
)

// Mode represents a complete front end of pcrchat (full-screen or
// line).  Each mode owns its lifecycle from the first connect to the
// final leave notice.
type Mode interface {
	Run(ctx context.Context) error
}

// Components are the pieces every mode wires into its client.
type Components struct {
	Alias     string
	Store     *config.Store
	Connector *connector.Connector
	Pacer     client.Pacer
	Logger    *util.Logger
	Metrics   *metrics.Collector
}

// NewClient builds a client for alias reporting to l.
func (c *Components) NewClient(alias string, l client.Listener) *client.Client {
	return client.New(client.Options{
		Alias:     alias,
		Store:     c.Store,
		Connector: c.Connector,
		Listener:  l,
		Pacer:     c.Pacer,
		Logger:    c.Logger,
		Metrics:   c.Metrics,
	})
}
