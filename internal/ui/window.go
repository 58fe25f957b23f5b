package ui

import (
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// ShowWidgetWindow displays the widget face in a fixed, small-family sized window.
// It implements a singleton pattern: if the window is already open, it requests focus.
func (app *WidgetApp) ShowWidgetWindow() {
	if app.widgetWindow != nil {
		app.widgetWindow.Show()
		app.widgetWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinWidget))
	app.widgetWindow = w

	w.SetContent(app.view.Object())
	w.Resize(fyne.NewSize(config.SmallWidgetSide, config.SmallWidgetSide))
	w.SetFixedSize(true)

	if app.Tray != nil {
		// Keep running in the tray when the window is closed.
		w.SetCloseIntercept(func() { w.Hide() })
	} else {
		w.SetOnClosed(func() { app.widgetWindow = nil })
	}

	w.Show()
}

// RequestFullScreen switches the widget window to full screen, the stand-by
// placement, unless the descriptor disfavors it.
func (app *WidgetApp) RequestFullScreen() bool {
	if !app.Descriptor.Supports(engine.PlacementStandBy) {
		slog.Info(config.MsgFullScreenDeny,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyReason, string(engine.PlacementStandBy))
		return false
	}
	if app.widgetWindow != nil {
		app.widgetWindow.SetFullScreen(true)
	}
	return true
}
