package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/locale"
	"github.com/tartampluch/monthly-widget/internal/server"
	"github.com/tartampluch/monthly-widget/internal/term"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

// WidgetApp hosts the monthly widget: it plays the role of the platform's
// widget host (window, tray, scheduler) around the timeline provider.
type WidgetApp struct {
	App         fyne.App
	Preferences fyne.Preferences
	Catalog     *locale.Catalog
	Ctx         context.Context

	Server     *server.FeedServer
	Provider   engine.TimelineProvider
	Themes     *theme.Table
	Clock      engine.Clock // Injected clock for testability
	Descriptor engine.Descriptor

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem     *fyne.MenuItem
	TrayShowItem       *fyne.MenuItem
	TrayFunFontItem    *fyne.MenuItem
	TrayBackgroundItem *fyne.MenuItem
	TraySettingsItem   *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	// Widget window state (UI goroutine only).
	widgetWindow   fyne.Window
	settingsWindow fyne.Window
	view           *DayView

	// Last presented entry, read by the tray and settings.
	shownMut sync.RWMutex
	shown    presentation
}

// NewWidgetApp constructs the host and wires dependencies.
func NewWidgetApp(a fyne.App, ctx context.Context, srv *server.FeedServer, provider engine.TimelineProvider, themes *theme.Table) *WidgetApp {
	return &WidgetApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Provider:           provider,
		Themes:             themes,
		Clock:              engine.RealClock{}, // Default to real clock in production
		Descriptor:         engine.MonthlyDescriptor(),
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		view:               NewDayView(),
	}
}

// Run launches the feed server, the scheduler and the main UI loop.
func (app *WidgetApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	// Paint the placeholder synchronously before the first timeline arrives.
	if p, err := app.present(app.Provider.Placeholder()); err == nil {
		app.apply(p)
	}

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupport, config.LogKeyComponent, config.CompUI)
	}

	app.ShowWidgetWindow()

	go app.scheduler()
	app.App.Run()
}

// SetupI18n loads the translation catalog for the preferred language.
func (app *WidgetApp) SetupI18n() {
	app.Catalog = locale.NewCatalog(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))
	if len(app.Catalog.Languages) > 0 {
		app.SupportedLanguages = app.Catalog.Languages
	}
}

// UpdateLocalizer applies the language preference to the catalog.
func (app *WidgetApp) UpdateLocalizer() {
	app.Catalog.SetLanguage(app.Preferences.String(config.PrefLanguage))
}

// GetMsg translates a key, falling back to the key itself.
func (app *WidgetApp) GetMsg(key string) string {
	return app.Catalog.Msg(key)
}

// watchPreferences wakes the scheduler whenever a preference changes.
func (app *WidgetApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.MsgPrefsChanged:
		default:
		}
	})
}

// loadConfiguration maps preferences to the host configuration of the provider.
func (app *WidgetApp) loadConfiguration() engine.Configuration {
	return engine.Configuration{FunFont: app.Preferences.Bool(config.PrefFunFont)}
}

// renderContext maps preferences to the explicit render context.
func (app *WidgetApp) renderContext() term.RenderContext {
	return term.RenderContext{
		ShowsBackground: app.Preferences.BoolWithFallback(config.PrefShowBackground, config.DefaultShowBackground),
	}
}

// setupTrayMenu constructs the system tray menu.
func (app *WidgetApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, func() {
		app.ShowWidgetWindow()
	})

	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), func() {
		app.ShowWidgetWindow()
	})

	app.TrayFunFontItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuFunFont), func() {
		app.togglePreference(config.PrefFunFont, false)
	})

	app.TrayBackgroundItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuBackground), func() {
		app.togglePreference(config.PrefShowBackground, config.DefaultShowBackground)
	})

	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), func() {
		app.ShowSettingsWindow()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		app.TrayShowItem,
		fyne.NewMenuItemSeparator(),
		app.TrayFunFontItem,
		app.TrayBackgroundItem,
		fyne.NewMenuItemSeparator(),
		app.TraySettingsItem,
	)
	app.syncTrayChecks()

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
		app.updateTray(app.currentPresentation())
	}
}

// togglePreference flips a boolean preference; the change listener then
// wakes the scheduler which reloads the timeline.
func (app *WidgetApp) togglePreference(key string, fallback bool) {
	app.Preferences.SetBool(key, !app.Preferences.BoolWithFallback(key, fallback))
	app.syncTrayChecks()
	if app.Menu != nil {
		app.Menu.Refresh()
	}
}

func (app *WidgetApp) syncTrayChecks() {
	if app.TrayFunFontItem == nil || app.TrayBackgroundItem == nil {
		return
	}
	app.TrayFunFontItem.Checked = app.Preferences.Bool(config.PrefFunFont)
	app.TrayBackgroundItem.Checked = app.renderContext().ShowsBackground
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *WidgetApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TrayFunFontItem.Label = app.GetMsg(config.TKeyMenuFunFont)
	app.TrayBackgroundItem.Label = app.GetMsg(config.TKeyMenuBackground)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.syncTrayChecks()
	app.Menu.Refresh()
}

// updateTray shows the entry's summary and a month-colored icon.
func (app *WidgetApp) updateTray(p presentation) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}
	label := p.Summary
	if label == "" {
		label = config.FallbackTrayLabel
	}
	app.TrayStatusItem.Label = label
	app.Menu.Refresh()

	if app.Tray != nil && p.Day != "" {
		app.Tray.SetSystemTrayIcon(trayIcon(p))
	}
}

func (app *WidgetApp) currentPresentation() presentation {
	app.shownMut.RLock()
	defer app.shownMut.RUnlock()
	return app.shown
}
