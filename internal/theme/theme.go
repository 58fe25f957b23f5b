// Package theme maps calendar months to the widget's visual configuration.
package theme

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// ErrMonthOutOfRange is returned when a month outside January..December is resolved.
// Months derived from valid dates never trigger it; seeing it means a caller bug.
var ErrMonthOutOfRange = errors.New(config.ErrMonthRange)

// Font families a month may use as its display font.
const (
	FamilyMonospace  = "monospace"
	FamilyItalic     = "italic"
	FamilyBoldItalic = "bold-italic"
)

var knownFamilies = map[string]bool{
	FamilyMonospace:  true,
	FamilyItalic:     true,
	FamilyBoldItalic: true,
}

// Font is a display font override: a family identifier and a point size.
type Font struct {
	Family string
	Size   float32
}

// Config is the visual configuration of one month.
type Config struct {
	Emoji       string
	Background  colorful.Color
	WeekdayText colorful.Color
	DayText     colorful.Color

	// Font is nil unless the displayed entry requested the fun font.
	Font *Font
}

// GradientEnd returns the second stop of the background gradient.
func (c Config) GradientEnd() colorful.Color {
	return c.Background.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, config.GradientBlend).Clamped()
}

// ForContext adapts the text colors to the host's render context: without a
// drawn background, both text colors fall back to plain white.
func (c Config) ForContext(showsBackground bool) Config {
	if showsBackground {
		return c
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	c.WeekdayText = white
	c.DayText = white
	return c
}

// Table is a total mapping from month to Config.
type Table struct {
	months [config.MonthsInYear]Config
}

// Resolve returns the configuration of month m, including its fun font.
func (t *Table) Resolve(m time.Month) (Config, error) {
	if m < time.January || m > time.December {
		return Config{}, fmt.Errorf("%w: %d", ErrMonthOutOfRange, int(m))
	}
	c := t.months[m-1]
	if c.Font != nil {
		f := *c.Font
		c.Font = &f
	}
	return c, nil
}

// ResolveEntry resolves the entry's month and keeps the font override only
// when the entry is in display mode.
func (t *Table) ResolveEntry(e engine.DayEntry) (Config, error) {
	c, err := t.Resolve(e.Date.Month())
	if err != nil {
		return Config{}, err
	}
	if !e.DisplayMode {
		c.Font = nil
	}
	return c, nil
}

// Builtin returns the default aesthetic table.
func Builtin() *Table {
	return &Table{months: [config.MonthsInYear]Config{
		month("⛄️", "#2e4a7d", "#cfe3ff", "#ffffff", FamilyMonospace, 72),
		month("💘", "#c2185b", "#ffd6e4", "#fff0f5", FamilyItalic, 76),
		month("☘️", "#2e7d32", "#c8f7c5", "#f1fff0", FamilyBoldItalic, 74),
		month("☔️", "#5c6bc0", "#e3e7ff", "#ffffff", FamilyItalic, 76),
		month("🌸", "#ec6f9b", "#5a1238", "#fff5f9", FamilyBoldItalic, 74),
		month("🌤️", "#ffb300", "#5d4037", "#fffde7", FamilyMonospace, 72),
		month("🏖️", "#0288d1", "#fff59d", "#ffffff", FamilyItalic, 76),
		month("🍉", "#ef5350", "#c8e6c9", "#fffafa", FamilyBoldItalic, 74),
		month("🍎", "#8d6e63", "#ffe0b2", "#fff8f0", FamilyMonospace, 72),
		month("🎃", "#e65100", "#1f1f1f", "#fff3e0", FamilyBoldItalic, 74),
		month("🦃", "#6d4c41", "#ffcc80", "#fff8e1", FamilyItalic, 76),
		month("🎄", "#1b5e20", "#ffcdd2", "#ffffff", FamilyMonospace, 72),
	}}
}

// month builds a table row from trusted literals.
func month(emoji, bg, weekday, day, family string, size float32) Config {
	return Config{
		Emoji:       emoji,
		Background:  mustHex(bg),
		WeekdayText: mustHex(weekday),
		DayText:     mustHex(day),
		Font:        &Font{Family: family, Size: size},
	}
}

// mustHex parses a built-in color literal.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("%s: %q", config.ErrThemeColor, s))
	}
	return c
}
