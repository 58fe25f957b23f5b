package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/engine"
)

// monthsTOML builds a theme document covering the given months.
func monthsTOML(months ...int) string {
	var b strings.Builder
	for _, m := range months {
		fmt.Fprintf(&b, `
[[month]]
number = %d
emoji = "e%d"
font_family = "italic"
font_size = %d
background = "#1%02d0a0"
weekday_text = "#ffffff"
day_text = "#eeeeee"
`, m, m, 60+m, m)
	}
	return b.String()
}

func allMonths() []int {
	return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
}

func TestLoadFromTOML_Valid(t *testing.T) {
	table, err := LoadFromTOML([]byte(monthsTOML(allMonths()...)))
	require.NoError(t, err)

	c, err := table.Resolve(time.May)
	require.NoError(t, err)
	assert.Equal(t, "e5", c.Emoji)
	assert.Equal(t, "#1050a0", c.Background.Hex())
	require.NotNil(t, c.Font)
	assert.Equal(t, Font{Family: FamilyItalic, Size: 65}, *c.Font)
}

func TestLoadFromTOML_DisplayModeAlwaysHasFont(t *testing.T) {
	table, err := LoadFromTOML([]byte(monthsTOML(allMonths()...)))
	require.NoError(t, err)

	for m := time.January; m <= time.December; m++ {
		t.Run(m.String(), func(t *testing.T) {
			c, err := table.ResolveEntry(engine.DayEntry{
				Date:        time.Date(2024, m, 15, 0, 0, 0, 0, time.UTC),
				DisplayMode: true,
			})
			require.NoError(t, err)
			assert.NotNil(t, c.Font)
		})
	}
}

func TestLoadFromTOML_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"Missing month", monthsTOML(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11), "does not define every month: 12"},
		{"Duplicate month", monthsTOML(append(allMonths(), 3)...), "defines a month twice"},
		{"Month zero", monthsTOML(append(allMonths(), 0)...), "month out of range"},
		{"Month thirteen", monthsTOML(append(allMonths(), 13)...), "month out of range"},
		{"Syntax", "[[month]\nnumber = 1", "failed to parse theme file"},
		{
			"Bad color",
			strings.Replace(monthsTOML(allMonths()...), `background = "#1010a0"`, `background = "teal"`, 1),
			"invalid theme color",
		},
		{
			"Empty emoji",
			strings.Replace(monthsTOML(allMonths()...), `emoji = "e4"`, `emoji = " "`, 1),
			"emoji is empty",
		},
		{
			"Missing font",
			strings.Replace(monthsTOML(allMonths()...), "font_family = \"italic\"\nfont_size = 67\n", "", 1),
			"month 7: theme month has no font_family",
		},
		{
			"Unknown font",
			strings.Replace(monthsTOML(allMonths()...), "font_family = \"italic\"\nfont_size = 67", "font_family = \"comic\"\nfont_size = 67", 1),
			"unknown theme font family",
		},
		{
			"Zero font size",
			strings.Replace(monthsTOML(allMonths()...), "font_size = 67\n", "", 1),
			"font size must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromTOML([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromTOML_OutOfRangeIsTyped(t *testing.T) {
	_, err := LoadFromTOML([]byte(monthsTOML(append(allMonths(), 14)...)))
	assert.True(t, errors.Is(err, ErrMonthOutOfRange))
}

func TestSaveToTOML_Builtin(t *testing.T) {
	data, err := SaveToTOML(Builtin())
	require.NoError(t, err)

	loaded, err := LoadFromTOML(data)
	require.NoError(t, err, "The built-in table must be expressible as a theme file")

	for m := time.January; m <= time.December; m++ {
		want, _ := Builtin().Resolve(m)
		got, _ := loaded.Resolve(m)
		assert.Equal(t, want.Emoji, got.Emoji)
		assert.Equal(t, want.Background.Hex(), got.Background.Hex())
		assert.Equal(t, want.Font, got.Font)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte(monthsTOML(allMonths()...)), 0o600))

	table, err := LoadFile(path)
	require.NoError(t, err)
	c, _ := table.Resolve(time.December)
	assert.Equal(t, "e12", c.Emoji)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read theme file")
}
