package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Monthly Widget"
	AppID             = "com.github.tartampluch.monthly-widget"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	IconFile          = "icon.svg"
)

// -----------------------------------------------------------------------------
// Widget Descriptor
// -----------------------------------------------------------------------------

const (
	WidgetKind        = "MonthlyWidget"
	WidgetDisplayName = "Monthly Style Widget"
	WidgetDescription = "The theme of the widget changes based on the month."

	// TimelineLength is the number of daily entries produced per timeline.
	TimelineLength = 7

	// SmallWidgetSide is the edge length (in fyne units) of the small family.
	SmallWidgetSide = 170
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagPrint        = "print"
	FlagFunFont      = "fun-font"
	FlagNoBackground = "no-background"
	FlagTheme        = "theme"
	FlagLang         = "lang"
	FlagDumpTheme    = "dump-theme"

	FlagDescVersion      = "Show application version and exit"
	FlagDescDebug        = "Enable debug logging to stdout"
	FlagDescPrint        = "Render today's widget in the terminal and exit"
	FlagDescFunFont      = "Use the month's fun font (with -print)"
	FlagDescNoBackground = "Render without the month background (with -print)"
	FlagDescTheme        = "Path to a TOML file defining the 12 month themes"
	FlagDescLang         = "UI language (ISO 639-1), saved as the widget preference"
	FlagDescDumpTheme    = "Print the active theme table as TOML and exit"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 420

	// Preference Keys
	PrefLanguage       = "language"
	PrefFunFont        = "fun_font"
	PrefShowBackground = "show_background"
	PrefServerPort     = "server_port"
	PrefLastRun        = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Widget View Layout
// -----------------------------------------------------------------------------

const (
	EmojiTextSize   = 24
	WeekdayTextSize = 18
	DayTextSize     = 80

	// TransitionDuration is the length of the background animation played
	// when the displayed date changes.
	TransitionDuration = 450 * time.Millisecond

	// GradientBlend is how far the second gradient stop moves toward white.
	GradientBlend = 0.25

	// Tray icon geometry (SVG user units).
	IconSide   = 64
	IconRadius = 14
	IconCell   = 6
)

// -----------------------------------------------------------------------------
// Scheduler
// -----------------------------------------------------------------------------

const (
	// SchedulerRetry is the wait used when a fresh timeline has no future change,
	// e.g. an empty timeline.
	SchedulerRetry = 1 * time.Minute

	// MaxSchedulerWait caps a single sleep so wall-clock or time zone changes
	// are noticed without waiting for the next midnight.
	MaxSchedulerWait = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle         = "win_title"
	TKeyWinWidget        = "win_widget_title"
	TKeyMenuShow         = "menu_show"
	TKeyMenuFunFont      = "menu_fun_font"
	TKeyMenuBackground   = "menu_background"
	TKeyMenuSettings     = "menu_settings"
	TKeyLblLanguage      = "lbl_language"
	TKeyHelpLanguage     = "help_language"
	TKeyLblFunFont       = "lbl_fun_font"
	TKeyLblBackground    = "lbl_show_background"
	TKeyLblPort          = "lbl_server_port"
	TKeyHelpPort         = "help_port"
	TKeyLblGeneral       = "lbl_general"
	TKeyLblAppearance    = "lbl_appearance"
	TKeyBtnSave          = "btn_save"
	TKeyBtnCancel        = "btn_cancel"
	TKeyLblFooter        = "lbl_footer"
	TKeyEvtSummary       = "event_summary" // Requires Emoji, Weekday, Day
	TKeyErrPortReq       = "err_port_required"
	TKeyErrPortNum       = "err_port_number"
	TKeyErrPortRange     = "err_port_range"
	TKeyWeekdayPrefix    = "weekday_"
	TKeyWeekdaySunday    = "weekday_sunday"
	TKeyWeekdayMonday    = "weekday_monday"
	TKeyWeekdayTuesday   = "weekday_tuesday"
	TKeyWeekdayWednesday = "weekday_wednesday"
	TKeyWeekdayThursday  = "weekday_thursday"
	TKeyWeekdayFriday    = "weekday_friday"
	TKeyWeekdaySaturday  = "weekday_saturday"
)

// -----------------------------------------------------------------------------
// Default Values
// -----------------------------------------------------------------------------

const (
	DefaultPort           = "18081"
	DefaultLanguage       = "en"
	DefaultShowBackground = true
	UIDSalt               = "monthly-widget-v1-" // Salt for deterministic UID generation
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Monthly Widget//Timeline//EN"
	ICalCalName = "Monthly Widget"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "monthlywidget"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTEnd      = "DTEND"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropColor      = "X-MONTHLY-COLOR"

	// MinFeedRefresh bounds the advertised refresh interval from below.
	MinFeedRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash = "2006-01-02"

	MinPort = 1
	MaxPort = 65535

	UIDHashLength   = 16
	FormatHashInput = "%s|%s"
	FormatUID       = "%s@%s"

	MonthsInYear = 12
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteRoot          = "/"
	AddrSeparator      = ":"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrTrayNotSupport  = "system tray not supported on this platform/driver"
	ErrMonthRange      = "month out of range"
	ErrThemeRead       = "failed to read theme file"
	ErrThemeParse      = "failed to parse theme file"
	ErrThemeMonthDup   = "theme file defines a month twice"
	ErrThemeMonthMiss  = "theme file does not define every month"
	ErrThemeColor      = "invalid theme color (expected #rrggbb)"
	ErrThemeEmoji      = "theme emoji is empty"
	ErrThemeFontFamily = "unknown theme font family"
	ErrThemeFontMiss   = "theme month has no font_family"
	ErrThemeFontSize   = "theme font size must be positive"
	ErrThemeResolve    = "failed to resolve theme for entry"
	ErrThemeEncode     = "failed to encode theme table"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Timeline initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary   = "%s %s %s"
	FallbackTrayLabel = "Monthly Widget"

	// StubVCalendar is the minimal valid iCalendar object used for an empty timeline.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Timeline feed updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgTimelineBuilt   = "Timeline generated"
	MsgTimelineCut     = "Calendar arithmetic did not advance, truncating timeline"
	MsgSchedulerStart  = "Scheduler started"
	MsgSchedulerStop   = "Scheduler stopping due to context cancellation"
	MsgSchedulerReload = "Reloading timeline"
	MsgEntryShown      = "Displaying timeline entry"
	MsgNextChange      = "Next timeline change scheduled"
	MsgPrefsChanged    = "Widget preferences changed"
	MsgThemeLoaded     = "Theme table loaded"
	MsgFeedBuilt       = "Timeline feed generated"
	MsgFullScreenDeny  = "Full screen is not a supported placement"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyCount     = "count"
	LogKeyDate      = "date"
	LogKeyFunFont   = "fun_font"
	LogKeyReloadAt  = "reload_at"
	LogKeyNext      = "next_change"
	LogKeyReason    = "reason"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild     = "build"
	LogKeyApp       = "app"
	LogKeyVersion   = "version"
	LogKeyCommit    = "commit"
	LogKeyBuildDate = "build_date"
	LogKeyGoVer     = "go_version"
	LogKeyEnv       = "env"
	LogKeyOS        = "os"
	LogKeyArch      = "arch"
	LogKeyPID       = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompTheme     = "theme"
	CompServer    = "server"
	CompScheduler = "scheduler"
	CompTerm      = "term"
	CompMain      = "main"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
)
