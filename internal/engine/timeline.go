package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// TimelineProvider is the callback surface a widget host drives.
// The host never calls these concurrently for the same widget.
type TimelineProvider interface {
	// Placeholder returns a fast, synchronous default entry.
	Placeholder() DayEntry
	// Snapshot returns a quick preview entry for the given configuration.
	Snapshot(cfg Configuration) DayEntry
	// Timeline generates the full sequence of entries and its refresh policy.
	Timeline(ctx context.Context, cfg Configuration) Timeline
}

// Clock supplies the current instant; tests substitute a fixed one.
type Clock interface {
	Now() time.Time
}

// RealClock reads the wall clock in the local time zone.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Provider generates daily timelines from an injected Clock.
type Provider struct {
	Clock Clock
}

// NewProvider returns a Provider reading the real wall clock.
func NewProvider() *Provider {
	return &Provider{Clock: RealClock{}}
}

// Placeholder returns an entry for the current instant, without truncation.
func (p *Provider) Placeholder() DayEntry {
	return DayEntry{Date: p.Clock.Now()}
}

// Snapshot returns an entry for the current instant honouring the font toggle.
func (p *Provider) Snapshot(cfg Configuration) DayEntry {
	return DayEntry{Date: p.Clock.Now(), DisplayMode: cfg.FunFont}
}

// Timeline returns today plus the following days, each at local midnight,
// with an at-end refresh policy. A cancelled context yields an empty timeline.
func (p *Provider) Timeline(ctx context.Context, cfg Configuration) Timeline {
	if ctx.Err() != nil {
		return Timeline{Policy: PolicyAtEnd}
	}

	start := time.Now()
	entries := Generate(p.Clock.Now(), cfg.FunFont)

	slog.DebugContext(ctx, config.MsgTimelineBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(entries),
		config.LogKeyFunFont, cfg.FunFont,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)

	return Timeline{Entries: entries, Policy: PolicyAtEnd}
}

// Generate builds config.TimelineLength entries one calendar day apart, starting
// at the beginning of now's day in now's location.
//
// Entries are strictly increasing. Should calendar arithmetic ever fail to move
// forward, generation stops and the entries built so far are returned.
func Generate(now time.Time, displayMode bool) []DayEntry {
	entries := make([]DayEntry, 0, config.TimelineLength)

	for offset := 0; offset < config.TimelineLength; offset++ {
		day := StartOfDay(now.AddDate(0, 0, offset))

		if n := len(entries); n > 0 && !day.After(entries[n-1].Date) {
			slog.Warn(config.MsgTimelineCut,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyDate, day.Format(config.DateFormatFullDash),
				config.LogKeyCount, n,
			)
			break
		}

		entries = append(entries, DayEntry{Date: day, DisplayMode: displayMode})
	}
	return entries
}

// StartOfDay truncates t to midnight of its calendar day in t's location.
// time.Truncate cannot be used here: it works on absolute time, not local days.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
