package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pcrchat/internal/errors"
)

// inputDialog is a one-field form with a status line for validation
// messages.
type inputDialog struct {
	form   *tview.Form
	field  *tview.InputField
	status *tview.TextView
}

func (a *App) newInputDialog(title, label, action string, submit func(d *inputDialog)) *inputDialog {
	d := &inputDialog{}

	d.form = tview.NewForm()
	d.form.SetBackgroundColor(ColorBg)
	d.form.SetFieldBackgroundColor(tcell.NewRGBColor(0, 0, 64))
	d.form.SetFieldTextColor(ColorFg)
	d.form.SetLabelColor(ColorHighlight)
	d.form.SetButtonBackgroundColor(ColorBar)
	d.form.SetButtonTextColor(ColorTitle)
	d.form.SetBorder(true)
	d.form.SetBorderColor(ColorBorder)
	d.form.SetTitle(title)
	d.form.SetTitleColor(ColorTitle)

	d.status = tview.NewTextView()
	d.status.SetBackgroundColor(ColorBg)
	d.status.SetTextColor(tcell.ColorRed)
	d.status.SetTextAlign(tview.AlignCenter)

	d.field = tview.NewInputField()
	d.field.SetLabel(label)
	d.field.SetFieldWidth(24)

	d.form.AddFormItem(d.field)
	d.form.AddButton(action, func() { submit(d) })
	return d
}

func (a *App) showDialog(name string, d *inputDialog, width int) {
	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(d.form, width, 0, true).
			AddItem(nil, 0, 1, false), 7, 0, true).
		AddItem(tview.NewFlex().
			AddItem(nil, 0, 1, false).
			AddItem(d.status, width, 0, false).
			AddItem(nil, 0, 1, false), 1, 0, false).
		AddItem(nil, 0, 1, false)
	flex.SetBackgroundColor(ColorBg)

	a.pages.AddPage(name, flex, true, true)
	a.app.SetFocus(d.form)
}

func (a *App) closeDialog(name string) {
	a.pages.RemovePage(name)
	if a.input != nil {
		a.app.SetFocus(a.input)
	}
}

func (a *App) showAliasDialog() {
	d := a.newInputDialog(" pcrchat ", "Alias: ", "Join", func(d *inputDialog) {
		alias := strings.TrimSpace(d.field.GetText())
		if alias == "" {
			d.status.SetText("Please enter an alias")
			return
		}
		a.start(alias)
	})
	d.form.AddButton("Quit", a.quit)
	d.form.SetCancelFunc(a.quit)
	a.showDialog("alias", d, 44)
}

func (a *App) showHostDialog() {
	d := a.newInputDialog(" Server IPv4 ", "IPv4: ", "Set", func(d *inputDialog) {
		host := strings.TrimSpace(d.field.GetText())
		a.changeEndpoint(d, "dialog", func(chat Chat) error {
			return chat.ChangeHost(a.ctx, host)
		})
	})
	d.form.AddButton("Cancel", func() { a.closeDialog("dialog") })
	d.form.SetCancelFunc(func() { a.closeDialog("dialog") })
	a.showDialog("dialog", d, 44)
}

func (a *App) showPortDialog() {
	d := a.newInputDialog(" Server port ", "Port: ", "Set", func(d *inputDialog) {
		port := strings.TrimSpace(d.field.GetText())
		a.changeEndpoint(d, "dialog", func(chat Chat) error {
			return chat.ChangePort(a.ctx, port)
		})
	})
	d.form.AddButton("Cancel", func() { a.closeDialog("dialog") })
	d.form.SetCancelFunc(func() { a.closeDialog("dialog") })
	a.showDialog("dialog", d, 44)
}

// changeEndpoint runs change off the event loop: a reconnect tears the
// session down, which waits for callbacks queued on the loop.
func (a *App) changeEndpoint(d *inputDialog, page string, change func(Chat) error) {
	chat := a.currentChat()
	if chat == nil {
		return
	}
	d.status.SetText("connecting...")
	go func() {
		err := change(chat)
		a.app.QueueUpdateDraw(func() {
			if err == nil {
				a.closeDialog(page)
				return
			}
			var cfgErr *errors.ConfigError
			if errors.As(err, &cfgErr) {
				d.status.SetText(cfgErr.Message)
			} else {
				a.logger.Error("change endpoint: %v", err)
				d.status.SetText(err.Error())
			}
		})
	}()
}
