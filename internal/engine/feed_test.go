package engine

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func TestFeedBuilder_Build(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	tl := Timeline{Entries: Generate(now, false), Policy: PolicyAtEnd}

	b := &FeedBuilder{
		Clock: fixedClock(now),
		Summarize: func(e DayEntry) string {
			return fmt.Sprintf("* %s %s", e.Date.Weekday(), DayDisplay(e.Date))
		},
		Color: func(DayEntry) string { return "#ffb300" },
	}

	data, err := b.Build(tl)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err, "Feed must be a valid iCalendar document")

	events := cal.Events()
	require.Len(t, events, config.TimelineLength)

	first := events[0]
	assert.Equal(t, "* Saturday 15", first.Props.Get(config.PropSummary).Value)
	assert.Equal(t, "20240615", first.Props.Get(config.PropDTStart).Value, "Entries are all-day DATE values")
	assert.Equal(t, "20240616", first.Props.Get(config.PropDTEnd).Value)
	assert.Equal(t, "#ffb300", first.Props.Get(config.PropColor).Value)

	uids := map[string]bool{}
	for _, e := range events {
		uids[e.Props.Get(config.PropUID).Value] = true
	}
	assert.Len(t, uids, config.TimelineLength, "Each day must have its own UID")

	refresh := cal.Props.Get(config.PropRefresh)
	require.NotNil(t, refresh)
}

func TestFeedBuilder_StableUIDs(t *testing.T) {
	e := DayEntry{Date: time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)}
	fun := DayEntry{Date: e.Date, DisplayMode: true}

	assert.Equal(t, entryUID(e), entryUID(fun), "UID depends on the date only")
	assert.NotEqual(t, entryUID(e), entryUID(DayEntry{Date: e.Date.AddDate(0, 0, 1)}))
}

func TestFeedBuilder_FallbackSummary(t *testing.T) {
	b := &FeedBuilder{}
	e := DayEntry{Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)}

	assert.Equal(t, "Tuesday 31", b.summary(e))
}

func TestFeedBuilder_EmptyTimeline(t *testing.T) {
	b := &FeedBuilder{Clock: fixedClock(time.Now())}

	data, err := b.Build(Timeline{})

	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}

func TestFeedRefresh(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, 129*time.Hour+30*time.Minute, feedRefresh(now, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, config.MinFeedRefresh, feedRefresh(now, now.Add(time.Minute)), "Refresh interval has a floor")
	assert.Equal(t, config.MinFeedRefresh, feedRefresh(now, time.Time{}))
}
