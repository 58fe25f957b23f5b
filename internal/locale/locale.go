// Package locale loads the embedded translations shared by every renderer.
package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/engine"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the translation bundle and the localizer of the active language.
// It is safe for concurrent use: the scheduler formats entries off the UI thread.
type Catalog struct {
	Bundle    *i18n.Bundle
	Languages []string

	mu        sync.RWMutex
	localizer *i18n.Localizer
	lang      string
}

// NewCatalog loads every embedded locale file and activates lang.
// Unreadable locale files are logged and skipped; the catalog stays usable
// and falls back to message keys and English weekday names.
func NewCatalog(lang string) *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{Bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		c.SetLanguage(lang)
		return c
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		c.Languages = append(c.Languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
	}

	c.SetLanguage(lang)
	return c
}

// SetLanguage switches the active language. An empty code selects the default.
func (c *Catalog) SetLanguage(lang string) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	l := i18n.NewLocalizer(c.Bundle, lang)

	c.mu.Lock()
	c.lang = lang
	c.localizer = l
	c.mu.Unlock()
}

// Language returns the active language code.
func (c *Catalog) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lang
}

// Msg translates key, returning the key itself when no translation exists.
func (c *Catalog) Msg(key string) string {
	return c.MsgWith(key, nil)
}

// MsgWith translates key with template data.
func (c *Catalog) MsgWith(key string, data map[string]interface{}) string {
	if c == nil {
		return key
	}
	c.mu.RLock()
	l := c.localizer
	c.mu.RUnlock()
	if l == nil {
		return key
	}
	msg, err := l.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// Weekday returns the wide, localized weekday name of t.
func (c *Catalog) Weekday(t time.Time) string {
	key := engine.WeekdayKey(t)
	if msg := c.Msg(key); msg != key {
		return msg
	}
	return t.Weekday().String()
}

// Summary returns the localized one-line title of an entry ("🎃 Friday 31").
func (c *Catalog) Summary(emoji string, t time.Time) string {
	data := map[string]interface{}{
		"Emoji":   emoji,
		"Weekday": c.Weekday(t),
		"Day":     engine.DayDisplay(t),
	}
	msg := c.MsgWith(config.TKeyEvtSummary, data)
	if msg == config.TKeyEvtSummary {
		msg = strings.TrimSpace(strings.Join([]string{emoji, c.Weekday(t), engine.DayDisplay(t)}, " "))
	}
	return msg
}
