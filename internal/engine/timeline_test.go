package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// -----------------------------------------------------------------------------
// Generate
// -----------------------------------------------------------------------------

func TestGenerate_MidJune(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

	entries := engine.Generate(now, false)

	require.Len(t, entries, config.TimelineLength)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), entries[0].Date, "First entry is today at midnight")
	assert.Equal(t, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), entries[6].Date, "Seventh entry is six days later")
}

// TestGenerate_Properties checks the shape of the timeline across awkward dates:
// month and year rollovers, leap days and DST transitions.
func TestGenerate_Properties(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		paris = time.FixedZone("CET", 3600)
	}

	tests := []struct {
		name string
		now  time.Time
	}{
		{"Year rollover", time.Date(2024, 12, 29, 23, 59, 59, 0, time.UTC)},
		{"Leap day", time.Date(2024, 2, 27, 8, 0, 0, 0, time.UTC)},
		{"Non-leap February", time.Date(2025, 2, 26, 8, 0, 0, 0, time.UTC)},
		{"Exactly midnight", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"Spring forward", time.Date(2025, 3, 28, 12, 0, 0, 0, paris)},
		{"Fall back", time.Date(2025, 10, 24, 23, 30, 0, 0, paris)},
		{"Fixed offset zone", time.Date(2025, 6, 1, 22, 0, 0, 0, time.FixedZone("UTC+14", 14*3600))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := engine.Generate(tt.now, true)
			require.Len(t, entries, config.TimelineLength)

			y, m, d := tt.now.Date()
			assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, tt.now.Location()), entries[0].Date)

			for i, e := range entries {
				assert.True(t, e.DisplayMode, "Display mode must be carried to every entry")
				assert.Equal(t, 0, e.Date.Hour(), "Entry %d must be at midnight", i)
				assert.Equal(t, 0, e.Date.Minute())
				assert.Equal(t, tt.now.Location(), e.Date.Location())

				if i == 0 {
					continue
				}
				prev := entries[i-1].Date
				assert.True(t, e.Date.After(prev), "Entries must be strictly increasing")
				assert.Equal(t, prev.AddDate(0, 0, 1).Day(), e.Date.Day(), "Entries must be one calendar day apart")
			}
		})
	}
}

func TestGenerate_DisplayModeDefaultsOff(t *testing.T) {
	entries := engine.Generate(time.Date(2025, 5, 5, 5, 5, 0, 0, time.UTC), false)
	for _, e := range entries {
		assert.False(t, e.DisplayMode)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2025, 7, 4, 23, 59, 59, 999, loc)

	got := engine.StartOfDay(in)

	assert.Equal(t, time.Date(2025, 7, 4, 0, 0, 0, 0, loc), got)
}

// -----------------------------------------------------------------------------
// Provider (host callbacks)
// -----------------------------------------------------------------------------

func TestProvider_Callbacks(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	p := &engine.Provider{Clock: MockClock{CurrentTime: now}}

	t.Run("Placeholder", func(t *testing.T) {
		e := p.Placeholder()
		assert.Equal(t, now, e.Date)
		assert.False(t, e.DisplayMode)
	})

	t.Run("Snapshot", func(t *testing.T) {
		e := p.Snapshot(engine.Configuration{FunFont: true})
		assert.Equal(t, now, e.Date)
		assert.True(t, e.DisplayMode)
	})

	t.Run("Timeline", func(t *testing.T) {
		tl := p.Timeline(context.Background(), engine.Configuration{FunFont: true})
		require.Len(t, tl.Entries, config.TimelineLength)
		assert.Equal(t, engine.PolicyAtEnd, tl.Policy)
		assert.True(t, tl.Entries[0].DisplayMode)
		assert.Equal(t, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), tl.ReloadAt())
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		tl := p.Timeline(ctx, engine.Configuration{})
		assert.Empty(t, tl.Entries)
		assert.Equal(t, engine.PolicyAtEnd, tl.Policy)
	})
}

func TestProvider_ImplementsTimelineProvider(t *testing.T) {
	var p engine.TimelineProvider = engine.NewProvider()
	assert.NotNil(t, p)
}
