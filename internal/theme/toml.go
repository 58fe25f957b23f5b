package theme

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/monthly-widget/internal/config"
)

// tomlTable is the TOML-serializable representation of a Table.
type tomlTable struct {
	Months []tomlMonth `toml:"month"`
}

type tomlMonth struct {
	Number      int     `toml:"number"`
	Emoji       string  `toml:"emoji"`
	Background  string  `toml:"background"`
	WeekdayText string  `toml:"weekday_text"`
	DayText     string  `toml:"day_text"`
	FontFamily  string  `toml:"font_family"`
	FontSize    float32 `toml:"font_size"`
}

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadFile reads and validates a theme table from a TOML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemeRead, err)
	}
	t, err := LoadFromTOML(data)
	if err != nil {
		return nil, err
	}
	slog.Info(config.MsgThemeLoaded,
		config.LogKeyComponent, config.CompTheme,
		config.LogKeyFile, path,
	)
	return t, nil
}

// LoadFromTOML parses a theme table. Every month 1..12 must appear exactly once,
// so that a loaded table is total like the built-in one.
func LoadFromTOML(data []byte) (*Table, error) {
	var tt tomlTable
	if err := toml.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemeParse, err)
	}

	var (
		t    Table
		seen [config.MonthsInYear]bool
	)
	for _, m := range tt.Months {
		if m.Number < 1 || m.Number > config.MonthsInYear {
			return nil, fmt.Errorf("%w: %d", ErrMonthOutOfRange, m.Number)
		}
		if seen[m.Number-1] {
			return nil, fmt.Errorf("%s: %d", config.ErrThemeMonthDup, m.Number)
		}

		c, err := m.toConfig()
		if err != nil {
			return nil, fmt.Errorf("month %d: %w", m.Number, err)
		}
		t.months[m.Number-1] = c
		seen[m.Number-1] = true
	}

	var missing []string
	for i, ok := range seen {
		if !ok {
			missing = append(missing, fmt.Sprint(i+1))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s: %s", config.ErrThemeMonthMiss, strings.Join(missing, ","))
	}

	return &t, nil
}

func (m tomlMonth) toConfig() (Config, error) {
	if strings.TrimSpace(m.Emoji) == "" {
		return Config{}, errors.New(config.ErrThemeEmoji)
	}

	var colors [3]colorful.Color
	for i, s := range []string{m.Background, m.WeekdayText, m.DayText} {
		c, err := parseHex(s)
		if err != nil {
			return Config{}, err
		}
		colors[i] = c
	}

	// Display-mode entries always get a font override, so every month needs one.
	if m.FontFamily == "" {
		return Config{}, errors.New(config.ErrThemeFontMiss)
	}
	if !knownFamilies[m.FontFamily] {
		return Config{}, fmt.Errorf("%s: %q", config.ErrThemeFontFamily, m.FontFamily)
	}
	if m.FontSize <= 0 {
		return Config{}, fmt.Errorf("%s: %v", config.ErrThemeFontSize, m.FontSize)
	}

	return Config{
		Emoji:       m.Emoji,
		Background:  colors[0],
		WeekdayText: colors[1],
		DayText:     colors[2],
		Font:        &Font{Family: m.FontFamily, Size: m.FontSize},
	}, nil
}

func parseHex(s string) (colorful.Color, error) {
	if !hexColorRegex.MatchString(s) {
		return colorful.Color{}, fmt.Errorf("%s: %q", config.ErrThemeColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%s: %w", config.ErrThemeColor, err)
	}
	return c, nil
}

// SaveToTOML serializes a table, e.g. to bootstrap a custom theme file from Builtin().
func SaveToTOML(t *Table) ([]byte, error) {
	tt := tomlTable{Months: make([]tomlMonth, 0, config.MonthsInYear)}
	for i, c := range t.months {
		m := tomlMonth{
			Number:      i + 1,
			Emoji:       c.Emoji,
			Background:  c.Background.Hex(),
			WeekdayText: c.WeekdayText.Hex(),
			DayText:     c.DayText.Hex(),
		}
		if c.Font != nil {
			m.FontFamily = c.Font.Family
			m.FontSize = c.Font.Size
		}
		tt.Months = append(tt.Months, m)
	}

	var buf strings.Builder
	if err := toml.NewEncoder(&buf).Encode(tt); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrThemeEncode, err)
	}
	return []byte(buf.String()), nil
}
