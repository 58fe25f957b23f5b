package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"github.com/tartampluch/monthly-widget/internal/locale"
	"github.com/tartampluch/monthly-widget/internal/server"
	"github.com/tartampluch/monthly-widget/internal/term"
	"github.com/tartampluch/monthly-widget/internal/theme"
	"github.com/tartampluch/monthly-widget/internal/ui"
)

// options holds the parsed command line.
type options struct {
	debug        bool
	print        bool
	funFont      bool
	noBackground bool
	dumpTheme    bool
	themePath    string
	lang         string
}

// main defers to runMain so deferred closes run before os.Exit.
func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout))
}

// runMain parses args, sets up logging and dispatches to the selected mode.
// It returns the process exit code.
func runMain(args []string, stdout io.Writer) int {
	// -------------------------------------------------------------------------
	// 1. Flags
	// -------------------------------------------------------------------------
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	showVersion := fs.Bool(config.FlagVersion, false, config.FlagDescVersion)
	var opts options
	fs.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	fs.BoolVar(&opts.print, config.FlagPrint, false, config.FlagDescPrint)
	fs.BoolVar(&opts.funFont, config.FlagFunFont, false, config.FlagDescFunFont)
	fs.BoolVar(&opts.noBackground, config.FlagNoBackground, false, config.FlagDescNoBackground)
	fs.BoolVar(&opts.dumpTheme, config.FlagDumpTheme, false, config.FlagDescDumpTheme)
	fs.StringVar(&opts.themePath, config.FlagTheme, "", config.FlagDescTheme)
	fs.StringVar(&opts.lang, config.FlagLang, "", config.FlagDescLang)
	if err := fs.Parse(args); err != nil {
		return config.ExitCodeError
	}

	if *showVersion {
		printVersion(stdout)
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging
	// -------------------------------------------------------------------------
	// Terminal modes keep stdout for their own output.
	console := io.Writer(os.Stdout)
	if opts.print || opts.dumpTheme {
		console = os.Stderr
	}
	logCloser := setupLogging(opts.debug, console)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Signals
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Mode Dispatch
	// -------------------------------------------------------------------------
	themes, err := loadThemes(opts.themePath)
	if err == nil {
		switch {
		case opts.dumpTheme:
			err = dumpTheme(stdout, themes)
		case opts.print:
			err = printWidget(stdout, themes, opts)
		default:
			err = run(ctx, themes, opts)
		}
	}

	if err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run starts the desktop widget host and blocks until it quits.
func run(ctx context.Context, themes *theme.Table, opts options) error {
	a := app.NewWithID(config.AppID)
	a.Preferences().SetString(config.PrefLastRun, config.Version)
	seedPreferences(a.Preferences(), opts)

	port := a.Preferences().StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)

	gui := ui.NewWidgetApp(a, ctx, srv, engine.NewProvider(), themes)

	// A signal quits the fyne loop.
	go func() {
		<-ctx.Done()
		slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompMain)
		a.Quit()
	}()

	gui.Run()

	return nil
}

// seedPreferences stores command line choices that the widget host reads
// from its preferences.
func seedPreferences(prefs fyne.Preferences, opts options) {
	if opts.lang != "" {
		prefs.SetString(config.PrefLanguage, opts.lang)
	}
}

// loadThemes returns the built-in table, or the table defined in path.
func loadThemes(path string) (*theme.Table, error) {
	if path == "" {
		return theme.Builtin(), nil
	}
	return theme.LoadFile(path)
}

func dumpTheme(w io.Writer, themes *theme.Table) error {
	data, err := theme.SaveToTOML(themes)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// printWidget renders the snapshot entry in the terminal.
func printWidget(w io.Writer, themes *theme.Table, opts options) error {
	catalog := locale.NewCatalog(opts.lang)
	entry := engine.NewProvider().Snapshot(engine.Configuration{FunFont: opts.funFont})

	cfg, err := themes.ResolveEntry(entry)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrThemeResolve, err)
	}

	ctx := term.RenderContext{ShowsBackground: !opts.noBackground}
	slog.Debug(config.MsgEntryShown,
		config.LogKeyComponent, config.CompTerm,
		config.LogKeyDate, entry.Date.Format(config.DateFormatFullDash),
		config.LogKeyFunFont, entry.DisplayMode)
	_, err = fmt.Fprintln(w, term.NewRenderer(w).Render(entry, cfg, catalog.Weekday(entry.Date), ctx))
	return err
}

// printVersion outputs the build information.
func printVersion(w io.Writer) {
	_, _ = fmt.Fprintf(w, config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
}
