package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// FeedBuilder renders a timeline as an iCalendar document, one all-day event per entry.
type FeedBuilder struct {
	Clock Clock

	// Summarize allows the UI to inject the localized, themed event title.
	Summarize func(e DayEntry) string

	// Color optionally returns the entry's background color as #rrggbb.
	Color func(e DayEntry) string
}

// Build encodes tl. An empty timeline produces a minimal valid calendar.
func (b *FeedBuilder) Build(tl Timeline) ([]byte, error) {
	if len(tl.Entries) == 0 {
		var buf bytes.Buffer
		fmt.Fprint(&buf, config.StubVCalendar)
		return buf.Bytes(), nil
	}

	now := b.Clock.Now()

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986: advertise the at-end policy as a refresh interval.
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(feedRefresh(now, tl.ReloadAt()))
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range tl.Entries {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, entryUID(e))
		event.Props.SetText(config.PropSummary, b.summary(e))
		event.Props.Set(dtStampProp)

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(e.Date)
		event.Props.Set(dtStartProp)

		dtEndProp := ical.NewProp(config.PropDTEnd)
		dtEndProp.SetDate(e.Date.AddDate(0, 0, 1))
		event.Props.Set(dtEndProp)

		if b.Color != nil {
			if c := b.Color(e); c != "" {
				event.Props.SetText(config.PropColor, c)
			}
		}

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(tl.Entries),
		config.LogKeySizeBytes, buf.Len(),
	)
	return buf.Bytes(), nil
}

func (b *FeedBuilder) summary(e DayEntry) string {
	if b.Summarize != nil {
		if s := b.Summarize(e); s != "" {
			return s
		}
	}
	return strings.TrimSpace(fmt.Sprintf(config.FallbackSummary, "", e.Date.Weekday(), DayDisplay(e.Date)))
}

// feedRefresh converts the reload instant into a duration, never below MinFeedRefresh.
func feedRefresh(now, reloadAt time.Time) time.Duration {
	d := reloadAt.Sub(now).Truncate(time.Minute)
	if d < config.MinFeedRefresh {
		return config.MinFeedRefresh
	}
	return d
}

// entryUID derives a stable identifier from the entry's calendar date.
func entryUID(e DayEntry) string {
	input := fmt.Sprintf(config.FormatHashInput, e.Date.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
