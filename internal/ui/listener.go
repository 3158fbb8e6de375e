package ui

import (
	"fmt"
	"strings"

	"pcrchat/config"
	"pcrchat/internal/client"
)

func (a *App) OnConnected(ep config.Endpoint) {
	a.app.QueueUpdateDraw(func() {
		a.setEndpoint(ep, true)
		a.appendStatus(client.StatusConnected)
	})
}

func (a *App) OnConnectFailed(reason error, ep config.Endpoint) {
	a.app.QueueUpdateDraw(func() {
		a.setEndpoint(ep, false)
		a.rosterView.SetText("")
		a.appendStatus(strings.ReplaceAll(client.StatusText(reason), "\n", "\n\t"))
	})
}

func (a *App) OnRosterUpdate(text string) {
	a.app.QueueUpdateDraw(func() {
		a.rosterView.SetText(strings.TrimSpace(text))
	})
}

func (a *App) OnChatAppend(chunk string) {
	a.app.QueueUpdateDraw(func() {
		fmt.Fprint(a.chatView, chunk)
		a.chatView.ScrollToEnd()
	})
}

func (a *App) OnDisconnected(reason error) {
	a.app.QueueUpdateDraw(func() {
		a.header.SetBackgroundColor(ColorOffline)
		a.rosterView.SetText("")
		a.appendStatus(client.StatusText(reason))
	})
}
