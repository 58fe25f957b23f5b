package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/tartampluch/monthly-widget/internal/config"
)

// DayDisplay formats the numeric day of month without padding ("1", "31").
func DayDisplay(t time.Time) string {
	return strconv.Itoa(t.Day())
}

// WeekdayKey returns the translation key of the wide weekday name of t.
func WeekdayKey(t time.Time) string {
	return config.TKeyWeekdayPrefix + strings.ToLower(t.Weekday().String())
}
