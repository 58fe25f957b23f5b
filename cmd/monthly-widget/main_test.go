package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

// isolateCache keeps the log file out of the real user cache.
func isolateCache(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("LocalAppData", dir)
}

func TestRunMain_Version(t *testing.T) {
	var out bytes.Buffer
	code := runMain([]string{"-" + config.FlagVersion}, &out)

	assert.Equal(t, config.ExitCodeSuccess, code)
	assert.Contains(t, out.String(), config.AppName)
	assert.Contains(t, out.String(), runtime.GOOS)
}

func TestRunMain_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, config.ExitCodeError, runMain([]string{"-no-such-flag"}, &out))
}

func TestRunMain_DumpTheme(t *testing.T) {
	isolateCache(t)
	var out bytes.Buffer

	code := runMain([]string{"-" + config.FlagDumpTheme}, &out)
	require.Equal(t, config.ExitCodeSuccess, code)

	table, err := theme.LoadFromTOML(out.Bytes())
	require.NoError(t, err, "The dump must be a loadable theme file")
	got, err := table.Resolve(12)
	require.NoError(t, err)
	want, _ := theme.Builtin().Resolve(12)
	assert.Equal(t, want.Emoji, got.Emoji)
}

func TestRunMain_CustomThemeRoundTrip(t *testing.T) {
	isolateCache(t)

	data, err := theme.SaveToTOML(theme.Builtin())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "months.toml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var out bytes.Buffer
	code := runMain([]string{"-" + config.FlagTheme, path, "-" + config.FlagDumpTheme}, &out)

	require.Equal(t, config.ExitCodeSuccess, code)
	assert.Equal(t, string(data), out.String())
}

func TestRunMain_MissingThemeFile(t *testing.T) {
	isolateCache(t)
	var out bytes.Buffer

	code := runMain([]string{"-" + config.FlagTheme, filepath.Join(t.TempDir(), "absent.toml"), "-" + config.FlagPrint}, &out)

	assert.Equal(t, config.ExitCodeError, code)
	assert.Empty(t, out.String())
}

func TestRunMain_Print(t *testing.T) {
	isolateCache(t)
	var out bytes.Buffer

	code := runMain([]string{"-" + config.FlagPrint, "-" + config.FlagLang, "en"}, &out)

	require.Equal(t, config.ExitCodeSuccess, code)
	assert.NotEmpty(t, out.String())
	assert.NotContains(t, out.String(), config.MsgAppStarting, "Logs stay off stdout in terminal mode")
}

func TestSeedPreferences_Language(t *testing.T) {
	prefs := test.NewApp().Preferences()

	seedPreferences(prefs, options{})
	assert.Equal(t, "", prefs.String(config.PrefLanguage), "No flag keeps the saved choice")

	prefs.SetString(config.PrefLanguage, "en")
	seedPreferences(prefs, options{lang: "fr"})
	assert.Equal(t, "fr", prefs.String(config.PrefLanguage))
}

func TestLogStartupInfo_BuildDetails(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	logStartupInfo()

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	build, ok := record[config.LogKeyBuild].(map[string]any)
	require.True(t, ok, "Build details are grouped")
	assert.Equal(t, config.Version, build[config.LogKeyVersion])
	assert.Equal(t, config.Commit, build[config.LogKeyCommit])
	assert.Equal(t, config.Date, build[config.LogKeyBuildDate])
}
