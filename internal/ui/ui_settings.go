package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// settingsWidgets are the editable controls read back by saveSettings.
type settingsWidgets struct {
	langSelect      *widget.Select
	checkFunFont    *widget.Check
	checkBackground *widget.Check
	entryPort       *widget.Entry
}

// ShowSettingsWindow opens the preferences window, or focuses it when already open.
func (app *WidgetApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		slog.Debug("Focusing open settings window", config.LogKeyComponent, config.CompUISet)
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info("Showing settings window", config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.settingsWindow = w

	sw := app.buildSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemLang.HintText = app.GetMsg(config.TKeyHelpLanguage)

	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)

	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemPort))

	// --- Appearance ---
	appearanceCard := widget.NewCard(app.GetMsg(config.TKeyLblAppearance), "",
		container.NewVBox(sw.checkFunFont, sw.checkBackground))

	// --- Actions ---
	saveAction := func() {
		if err := sw.entryPort.Validate(); err != nil {
			dialog.ShowError(err, w)
			return
		}
		app.saveSettings(sw)
		w.Close()
	}

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), fynetheme.DocumentSaveIcon(), saveAction)
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), fynetheme.CancelIcon(), func() { w.Close() })

	// --- Footer ---
	footerLabel := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		appearanceCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// buildSettingsWidgets creates the form controls pre-filled from preferences.
func (app *WidgetApp) buildSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.checkFunFont = widget.NewCheck(app.GetMsg(config.TKeyLblFunFont), nil)
	sw.checkFunFont.Checked = app.Preferences.Bool(config.PrefFunFont)

	sw.checkBackground = widget.NewCheck(app.GetMsg(config.TKeyLblBackground), nil)
	sw.checkBackground.Checked = app.renderContext().ShowsBackground

	sw.entryPort = widget.NewEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	return sw
}

// validatePort requires a number in the TCP port range.
func (app *WidgetApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings persists the form. The preference listener wakes the scheduler,
// which reloads the timeline with the new configuration.
func (app *WidgetApp) saveSettings(sw *settingsWidgets) {
	slog.Info("Widget preferences saved", config.LogKeyComponent, config.CompUISet)

	app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	app.Preferences.SetBool(config.PrefFunFont, sw.checkFunFont.Checked)
	app.Preferences.SetBool(config.PrefShowBackground, sw.checkBackground.Checked)

	// The feed server binds at startup; a new port applies on next launch.
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
}
