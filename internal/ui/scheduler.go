package ui

import (
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

// presentation is everything the views need to draw one entry.
type presentation struct {
	Entry   engine.DayEntry
	Theme   theme.Config
	Weekday string
	Day     string
	Summary string
}

// present resolves the entry's month theme and localized labels.
func (app *WidgetApp) present(e engine.DayEntry) (presentation, error) {
	cfg, err := app.Themes.ResolveEntry(e)
	if err != nil {
		return presentation{}, fmt.Errorf("%s: %w", config.ErrThemeResolve, err)
	}
	return presentation{
		Entry:   e,
		Theme:   cfg,
		Weekday: app.Catalog.Weekday(e.Date),
		Day:     engine.DayDisplay(e.Date),
		Summary: app.Catalog.Summary(cfg.Emoji, e.Date),
	}, nil
}

// apply paints p on every surface. UI goroutine only.
func (app *WidgetApp) apply(p presentation) {
	app.shownMut.Lock()
	app.shown = p
	app.shownMut.Unlock()

	app.view.Apply(p, app.renderContext())
	app.updateTray(p)
}

// scheduler plays the host's role: it asks the provider for a timeline, shows
// each entry when its date is reached and reloads once the timeline is spent.
func (app *WidgetApp) scheduler() {
	log := slog.With(config.LogKeyComponent, config.CompScheduler)
	log.Info(config.MsgSchedulerStart)

	tl, p, wait := app.step(engine.Timeline{}, app.Clock.Now())
	app.show(p)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgSchedulerStop)
			return

		case <-app.configChan:
			// Configuration changed: drop the timeline so step reloads it.
			log.Info(config.MsgSchedulerReload, config.LogKeyReason, config.MsgPrefsChanged)
			tl = engine.Timeline{}

		case <-timer.C:
		}

		tl, p, wait = app.step(tl, app.Clock.Now())
		app.show(p)
		timer.Reset(wait)
	}
}

// step advances the schedule to now. It reloads tl when no entry lies after
// now (at-end policy) or when the clock went back before its first entry,
// then picks the entry to display and computes the next wake-up.
func (app *WidgetApp) step(tl engine.Timeline, now time.Time) (engine.Timeline, *presentation, time.Duration) {
	_, pending := tl.NextChange(now)
	if !pending || now.Before(tl.Entries[0].Date) {
		tl = app.reload()
	}

	var shown *presentation
	if e, ok := tl.Current(now); ok {
		p, err := app.present(e)
		if err != nil {
			slog.Error(config.ErrThemeResolve,
				config.LogKeyComponent, config.CompScheduler,
				config.LogKeyDate, e.Date.Format(config.DateFormatFullDash),
				config.LogKeyError, err)
		} else {
			shown = &p
			slog.Debug(config.MsgEntryShown,
				config.LogKeyComponent, config.CompScheduler,
				config.LogKeyDate, e.Date.Format(config.DateFormatFullDash),
				config.LogKeyFunFont, e.DisplayMode)
		}
	}

	wait := config.SchedulerRetry
	if next, ok := tl.NextChange(now); ok {
		wait = next.Sub(now)
		slog.Debug(config.MsgNextChange,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyNext, next)
	}
	if wait > config.MaxSchedulerWait {
		wait = config.MaxSchedulerWait
	}
	return tl, shown, wait
}

// show hands p to the UI goroutine.
func (app *WidgetApp) show(p *presentation) {
	if p == nil {
		return
	}
	v := *p
	fyne.Do(func() { app.apply(v) })
}

// reload requests a fresh timeline for the current preferences and republishes the feed.
func (app *WidgetApp) reload() engine.Timeline {
	app.UpdateLocalizer()
	cfg := app.loadConfiguration()

	tl := app.Provider.Timeline(app.Ctx, cfg)
	slog.Info(config.MsgSchedulerReload,
		config.LogKeyComponent, config.CompScheduler,
		config.LogKeyCount, len(tl.Entries),
		config.LogKeyFunFont, cfg.FunFont,
		config.LogKeyReloadAt, tl.ReloadAt())

	app.publish(tl)
	return tl
}

// publish encodes tl as an iCalendar feed and hands it to the server.
func (app *WidgetApp) publish(tl engine.Timeline) {
	if app.Server == nil {
		return
	}
	b := &engine.FeedBuilder{
		Clock:     app.Clock,
		Summarize: app.summarize,
		Color: func(e engine.DayEntry) string {
			cfg, err := app.Themes.ResolveEntry(e)
			if err != nil {
				return ""
			}
			return cfg.Background.Hex()
		},
	}

	data, err := b.Build(tl)
	if err != nil {
		slog.Error(config.ErrICalEncode,
			config.LogKeyComponent, config.CompScheduler,
			config.LogKeyError, err)
		return
	}
	app.Server.Publish(data)
}

// summarize returns the localized event title ("🎃 Friday 31"). An empty
// result lets the feed builder fall back to its own format.
func (app *WidgetApp) summarize(e engine.DayEntry) string {
	cfg, err := app.Themes.ResolveEntry(e)
	if err != nil {
		return ""
	}
	return app.Catalog.Summary(cfg.Emoji, e.Date)
}
