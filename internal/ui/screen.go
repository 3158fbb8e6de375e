package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pcrchat/config"
	"pcrchat/internal/client"
)

const keyHelp = " Enter:Send | F2:IPv4 | F3:Port | F10/Esc:Quit "

func (a *App) showMainScreen(alias string) {
	a.pages.RemovePage("alias")
	a.pages.RemovePage("background")

	a.pages.AddPage("main", a.createMainPage(alias), true, true)
	a.app.SetFocus(a.input)
}

func (a *App) createMainPage(alias string) tview.Primitive {
	a.header = tview.NewTextView()
	a.header.SetBackgroundColor(ColorOffline)
	a.header.SetTextColor(ColorTitle)
	a.header.SetTextAlign(tview.AlignCenter)
	a.header.SetText(" connecting... ")

	a.rosterView = tview.NewTextView()
	a.rosterView.SetBorder(true)
	a.rosterView.SetBorderColor(ColorBorder)
	a.rosterView.SetBackgroundColor(ColorBg)
	a.rosterView.SetTitle(" Online ")
	a.rosterView.SetTitleColor(ColorTitle)
	a.rosterView.SetTextColor(ColorRoster)

	a.chatView = tview.NewTextView()
	a.chatView.SetBorder(true)
	a.chatView.SetBorderColor(ColorBorder)
	a.chatView.SetBackgroundColor(ColorBg)
	a.chatView.SetTitle(fmt.Sprintf(" Chat [%s] ", alias))
	a.chatView.SetTitleColor(ColorTitle)
	a.chatView.SetTextColor(ColorFg)
	a.chatView.SetScrollable(true)
	a.chatView.SetWrap(true)

	a.input = tview.NewInputField()
	a.input.SetLabel("> ")
	a.input.SetFieldWidth(0)
	a.input.SetBackgroundColor(ColorBg)
	a.input.SetFieldBackgroundColor(tcell.NewRGBColor(0, 0, 64))
	a.input.SetFieldTextColor(ColorFg)
	a.input.SetLabelColor(ColorHighlight)
	a.input.SetBorder(true)
	a.input.SetBorderColor(ColorBorder)
	a.input.SetTitle(" Message ")
	a.input.SetTitleColor(ColorTitle)
	a.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := a.input.GetText()
		if text == "" {
			return
		}
		a.input.SetText("")
		a.send(text)
	})

	statusBar := tview.NewTextView()
	statusBar.SetBackgroundColor(ColorBar)
	statusBar.SetTextColor(ColorTitle)
	statusBar.SetTextAlign(tview.AlignCenter)
	statusBar.SetText(keyHelp)

	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.rosterView, 3, 0, false).
		AddItem(a.chatView, 0, 1, false).
		AddItem(a.input, 3, 0, true).
		AddItem(statusBar, 1, 0, false)
	mainFlex.SetBackgroundColor(ColorBg)

	mainFlex.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF2:
			a.showHostDialog()
			return nil
		case tcell.KeyF3:
			a.showPortDialog()
			return nil
		case tcell.KeyF10, tcell.KeyEsc:
			a.quit()
			return nil
		}
		return event
	})

	return mainFlex
}

// send runs on the event loop; a socket write does not wait on it.
func (a *App) send(text string) {
	chat := a.currentChat()
	if chat == nil {
		return
	}
	if err := chat.Send(text); err != nil {
		a.logger.Error("send: %v", err)
		a.appendStatus(client.StatusText(err))
	}
}

// setEndpoint updates the header; must run on the event loop.
func (a *App) setEndpoint(ep config.Endpoint, online bool) {
	color := ColorOffline
	if online {
		color = ColorOnline
	}
	a.header.SetBackgroundColor(color)
	a.header.SetText(fmt.Sprintf(" ip: %s    port: %d ", ep.Host, ep.Port))
}

// appendStatus writes a status line into the chat view; must run on
// the event loop.
func (a *App) appendStatus(text string) {
	fmt.Fprintf(a.chatView, "\n\t%s\n", text)
	a.chatView.ScrollToEnd()
}
