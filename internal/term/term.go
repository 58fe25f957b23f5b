// Package term renders a widget entry as a colored block for the terminal.
package term

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

// RenderContext carries what the host decided about the surrounding display.
type RenderContext struct {
	// ShowsBackground is false when the host draws no widget background.
	ShowsBackground bool
}

// Renderer draws entries with lipgloss styles bound to one output.
type Renderer struct {
	lg *lipgloss.Renderer
}

// NewRenderer detects the color capabilities of w.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{lg: lipgloss.NewRenderer(w)}
}

// SetColorProfile forces a color profile, e.g. termenv.TrueColor in tests.
func (r *Renderer) SetColorProfile(p termenv.Profile) {
	r.lg.SetColorProfile(p)
}

// blockWidth fits the widest big-digit day ("28") plus padding.
const blockWidth = 22

// Render lays out "emoji weekday" above the day of month drawn in big digits.
func (r *Renderer) Render(e engine.DayEntry, cfg theme.Config, weekday string, ctx RenderContext) string {
	cfg = cfg.ForContext(ctx.ShowsBackground)

	base := r.lg.NewStyle().Width(blockWidth).Padding(0, 1)
	if ctx.ShowsBackground {
		base = base.Background(hex(cfg.Background))
	}

	weekdayStyle := base.Foreground(hex(cfg.WeekdayText)).Bold(true)
	dayStyle := base.Foreground(hex(cfg.DayText)).Bold(true)
	if cfg.Font != nil {
		weekdayStyle = applyFont(weekdayStyle, cfg.Font)
		dayStyle = applyFont(dayStyle, cfg.Font)
	}

	rows := []string{weekdayStyle.Render(cfg.Emoji + " " + weekday)}
	for _, line := range BigDigits(engine.DayDisplay(e.Date)) {
		rows = append(rows, dayStyle.Render(line))
	}

	if ctx.ShowsBackground {
		// Second gradient stop as a footer band.
		rows = append(rows, base.Background(hex(cfg.GradientEnd())).Render(""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func applyFont(s lipgloss.Style, f *theme.Font) lipgloss.Style {
	switch f.Family {
	case theme.FamilyItalic:
		return s.Italic(true).Bold(false)
	case theme.FamilyBoldItalic:
		return s.Italic(true)
	default:
		// A terminal is already monospace; underline marks the switch.
		return s.Underline(true)
	}
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Hex())
}

// digitGlyphs are 3x5 block renderings of the decimal digits.
var digitGlyphs = [10][5]string{
	{"███", "█ █", "█ █", "█ █", "███"},
	{" ██", "  █", "  █", "  █", "  █"},
	{"███", "  █", "███", "█  ", "███"},
	{"███", "  █", "███", "  █", "███"},
	{"█ █", "█ █", "███", "  █", "  █"},
	{"███", "█  ", "███", "  █", "███"},
	{"███", "█  ", "███", "█ █", "███"},
	{"███", "  █", "  █", "  █", "  █"},
	{"███", "█ █", "███", "█ █", "███"},
	{"███", "█ █", "███", "  █", "███"},
}

// BigDigits renders a numeric string as five rows of block glyphs.
// Non-digit runes are skipped.
func BigDigits(s string) []string {
	var rows [5][]string
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		g := digitGlyphs[r-'0']
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	out := make([]string, len(rows))
	for i, parts := range rows {
		out[i] = strings.Join(parts, " ")
	}
	return out
}
