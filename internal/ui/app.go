// Package ui is the full-screen terminal front end built on tview.
//
// All widget access happens on the tview event loop.  Listener
// callbacks arrive on client goroutines and hop onto the loop with
// QueueUpdateDraw; anything that may block on the network (connect,
// reconnect, close) runs on its own goroutine so the loop stays free
// to drain those updates.
package ui

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pcrchat/internal/client"
	"pcrchat/util"
)

// Colors
var (
	ColorBg        = tcell.NewRGBColor(0, 0, 128)
	ColorFg        = tcell.NewRGBColor(192, 192, 192)
	ColorBorder    = tcell.NewRGBColor(0, 255, 255)
	ColorTitle     = tcell.NewRGBColor(255, 255, 255)
	ColorHighlight = tcell.NewRGBColor(0, 255, 255)
	ColorBar       = tcell.NewRGBColor(0, 128, 128)
	ColorOnline    = tcell.NewRGBColor(0, 160, 0)
	ColorOffline   = tcell.NewRGBColor(200, 0, 0)
	ColorRoster    = tcell.NewRGBColor(255, 77, 4)
)

// Chat is the part of client.Client the UI drives.
type Chat interface {
	Connect(ctx context.Context) error
	ChangeHost(ctx context.Context, host string) error
	ChangePort(ctx context.Context, port string) error
	Send(text string) error
	Close()
}

// NewChatFunc builds the chat client once the alias is known.  The
// App passes itself as the Listener.
type NewChatFunc func(alias string, l client.Listener) Chat

// App is the main application
type App struct {
	app    *tview.Application
	pages  *tview.Pages
	logger *util.Logger

	header     *tview.TextView
	rosterView *tview.TextView
	chatView   *tview.TextView
	input      *tview.InputField

	ctx     context.Context
	newChat NewChatFunc

	mu   sync.Mutex
	chat Chat
	err  error

	quitOnce sync.Once
}

var _ client.Listener = (*App)(nil)

// New creates a new application instance.
func New(logger *util.Logger) *App {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &App{
		app:    tview.NewApplication(),
		pages:  tview.NewPages(),
		logger: logger.Named("ui"),
	}
}

// SetScreen replaces the terminal screen; used with a simulation
// screen in tests.
func (a *App) SetScreen(s tcell.Screen) { a.app.SetScreen(s) }

// Run shows the chat screen, asking for an alias first when alias is
// empty, and blocks until the user quits or ctx is cancelled.  The
// returned error is the fatal startup error from Connect, if any.
func (a *App) Run(ctx context.Context, alias string, newChat NewChatFunc) error {
	a.ctx = ctx
	a.newChat = newChat

	background := tview.NewBox()
	background.SetBackgroundColor(tcell.NewRGBColor(64, 64, 64))
	a.pages.AddPage("background", background, true, true)

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC {
			a.quit()
			return nil
		}
		return event
	})

	if alias == "" {
		a.showAliasDialog()
	} else {
		a.start(alias)
	}

	go func() {
		<-ctx.Done()
		a.quit()
	}()

	if err := a.app.SetRoot(a.pages, true).EnableMouse(false).Run(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// start builds the client for alias, shows the main screen and
// connects in the background.
func (a *App) start(alias string) {
	chat := a.newChat(alias, a)
	a.mu.Lock()
	a.chat = chat
	a.mu.Unlock()

	a.showMainScreen(alias)

	go func() {
		if err := chat.Connect(a.ctx); err != nil {
			a.logger.Error("connect: %v", err)
			a.mu.Lock()
			a.err = err
			a.mu.Unlock()
			a.quit()
		}
	}()
}

// quit closes the session and stops the application.  Close waits for
// the client's event pump, which may itself be waiting on the event
// loop, so it runs off the loop; Stop is queued so that a quit issued
// before the loop starts still takes effect.
func (a *App) quit() {
	a.quitOnce.Do(func() {
		go func() {
			a.mu.Lock()
			chat := a.chat
			a.mu.Unlock()
			if chat != nil {
				chat.Close()
			}
			a.logger.Info("program closed by the user...")
			a.app.QueueUpdate(a.app.Stop)
		}()
	})
}

func (a *App) currentChat() Chat {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.chat
}
