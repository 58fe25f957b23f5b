package term

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

func juneEntry(fun bool) (engine.DayEntry, theme.Config) {
	e := engine.DayEntry{Date: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), DisplayMode: fun}
	cfg, err := theme.Builtin().ResolveEntry(e)
	if err != nil {
		panic(err)
	}
	return e, cfg
}

func newRenderer(p termenv.Profile) *Renderer {
	r := NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(p)
	return r
}

func TestRender_Layout(t *testing.T) {
	e, cfg := juneEntry(false)
	out := newRenderer(termenv.Ascii).Render(e, cfg, "Saturday", RenderContext{ShowsBackground: true})

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 6, "Header row plus five rows of digits")
	assert.Contains(t, lines[0], cfg.Emoji)
	assert.Contains(t, lines[0], "Saturday")

	digits := BigDigits("15")
	for i, row := range digits {
		assert.Contains(t, lines[i+1], row)
	}
}

func TestRender_BackgroundColors(t *testing.T) {
	e, cfg := juneEntry(false)
	r := newRenderer(termenv.TrueColor)

	withBg := r.Render(e, cfg, "Saturday", RenderContext{ShowsBackground: true})
	assert.Contains(t, withBg, "48;2;255;179;0", "June background is drawn")

	plain := r.Render(e, cfg, "Saturday", RenderContext{ShowsBackground: false})
	assert.NotContains(t, plain, "48;2;255;179;0", "No background without a container")
	assert.Contains(t, plain, "38;2;255;255;255", "Text falls back to white")
}

func TestRender_FontOverride(t *testing.T) {
	e, cfg := juneEntry(true)
	require.NotNil(t, cfg.Font)

	out := newRenderer(termenv.TrueColor).Render(e, cfg, "Saturday", RenderContext{ShowsBackground: true})
	assert.Contains(t, out, "Saturday")

	plainEntry, plainCfg := juneEntry(false)
	plain := newRenderer(termenv.TrueColor).Render(plainEntry, plainCfg, "Saturday", RenderContext{ShowsBackground: true})
	assert.NotEqual(t, plain, out, "The fun font changes the rendered styles")
}

func TestBigDigits(t *testing.T) {
	rows := BigDigits("7")
	require.Len(t, rows, 5)
	assert.Equal(t, "███", rows[0])
	assert.Equal(t, "  █", rows[4])

	rows = BigDigits("31")
	assert.Equal(t, "███  ██", rows[0])

	rows = BigDigits("x")
	for _, r := range rows {
		assert.Empty(t, r)
	}
}
