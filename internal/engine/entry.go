package engine

import "time"

// DayEntry is one scheduled rendering of the widget.
// It is a plain value: created per timeline slot and never mutated.
type DayEntry struct {
	// Date is the day to display, truncated to local midnight for timeline entries.
	Date time.Time

	// DisplayMode is set when the user asked for the month's fun font.
	DisplayMode bool
}

// Configuration is the user-facing widget configuration handed over by the host.
type Configuration struct {
	// FunFont toggles the per-month display font.
	FunFont bool
}

// RefreshPolicy tells the host scheduler when to ask for a new timeline.
type RefreshPolicy int

const (
	// PolicyAtEnd requests a new timeline once the last entry's date has been reached.
	PolicyAtEnd RefreshPolicy = iota
)

func (p RefreshPolicy) String() string {
	switch p {
	case PolicyAtEnd:
		return "atEnd"
	default:
		return "unknown"
	}
}

// Timeline is an ordered sequence of entries plus the policy for reloading it.
type Timeline struct {
	Entries []DayEntry
	Policy  RefreshPolicy
}

// ReloadAt returns the instant at which the host should request a new timeline.
// An empty timeline is due immediately, reported as the zero time.
func (tl Timeline) ReloadAt() time.Time {
	if len(tl.Entries) == 0 {
		return time.Time{}
	}
	return tl.Entries[len(tl.Entries)-1].Date
}

// Current returns the entry to show at 'now': the latest entry whose date is not
// after 'now'. Before the first entry the first one is shown.
func (tl Timeline) Current(now time.Time) (DayEntry, bool) {
	if len(tl.Entries) == 0 {
		return DayEntry{}, false
	}
	current := tl.Entries[0]
	for _, e := range tl.Entries[1:] {
		if e.Date.After(now) {
			break
		}
		current = e
	}
	return current, true
}

// NextChange returns the next instant strictly after 'now' at which either a new
// entry becomes current or the timeline must be reloaded.
// The boolean is false when the timeline is already due for reload.
func (tl Timeline) NextChange(now time.Time) (time.Time, bool) {
	for _, e := range tl.Entries {
		if e.Date.After(now) {
			return e.Date, true
		}
	}
	return time.Time{}, false
}
