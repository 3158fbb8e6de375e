package core

import (
	"context"

	"pcrchat/internal/client"
	"pcrchat/internal/ui"
)

// ChatMode runs the full-screen terminal UI.
type ChatMode struct {
	Components

	// App defaults to a new ui.App on the real terminal.
	App *ui.App
}

// Run blocks until the user quits or ctx is cancelled.
func (m *ChatMode) Run(ctx context.Context) error {
	defer m.Connector.Close()

	app := m.App
	if app == nil {
		app = ui.New(m.Logger)
	}
	m.Logger.Verbose("starting terminal UI")
	return app.Run(ctx, m.Alias, func(alias string, l client.Listener) ui.Chat {
		return m.NewClient(alias, l)
	})
}
