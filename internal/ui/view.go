package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/term"
	"github.com/tartampluch/monthly-widget/internal/theme"
)

// DayView is the small widget face: "emoji weekday" on top, the day of month below,
// over the month's gradient background.
type DayView struct {
	background *canvas.LinearGradient
	emoji      *canvas.Text
	weekday    *canvas.Text
	day        *canvas.Text

	content fyne.CanvasObject

	// shown is the date currently on screen; the background animates when it changes.
	shown    presentation
	animated *fyne.Animation
}

// NewDayView builds the widget face with empty labels.
func NewDayView() *DayView {
	v := &DayView{
		background: canvas.NewVerticalGradient(color.Transparent, color.Transparent),
		emoji:      canvas.NewText("", color.White),
		weekday:    canvas.NewText("", color.White),
		day:        canvas.NewText("", color.White),
	}
	v.emoji.TextSize = config.EmojiTextSize
	v.weekday.TextSize = config.WeekdayTextSize
	v.weekday.TextStyle = fyne.TextStyle{Bold: true}
	v.day.TextSize = config.DayTextSize
	v.day.TextStyle = fyne.TextStyle{Bold: true}

	header := container.NewHBox(v.emoji, v.weekday, layout.NewSpacer())
	v.content = container.NewStack(
		v.background,
		container.NewPadded(container.NewVBox(header, v.day, layout.NewSpacer())),
	)
	return v
}

// Object returns the canvas object to place in a window.
func (v *DayView) Object() fyne.CanvasObject {
	return v.content
}

// Apply draws p. Without a background the gradient is hidden and text turns white.
func (v *DayView) Apply(p presentation, ctx term.RenderContext) {
	cfg := p.Theme.ForContext(ctx.ShowsBackground)
	prev := v.shown
	v.shown = p

	v.emoji.Text = cfg.Emoji
	v.weekday.Text = p.Weekday
	v.weekday.Color = rgba(cfg.WeekdayText)
	v.day.Text = p.Day
	v.day.Color = rgba(cfg.DayText)

	v.weekday.TextStyle, v.day.TextStyle, v.day.TextSize = fontStyle(cfg.Font)

	if ctx.ShowsBackground {
		v.background.Show()
	} else {
		v.background.Hide()
	}

	start, end := rgba(cfg.Background), rgba(cfg.GradientEnd())
	if !prev.Entry.Date.IsZero() && !prev.Entry.Date.Equal(p.Entry.Date) && ctx.ShowsBackground {
		v.transition(rgba(prev.Theme.Background), start)
	}
	v.background.StartColor = start
	v.background.EndColor = end

	v.emoji.Refresh()
	v.weekday.Refresh()
	v.day.Refresh()
	v.background.Refresh()
}

// transition fades the top gradient stop from one month color to the next.
func (v *DayView) transition(from, to color.Color) {
	if v.animated != nil {
		v.animated.Stop()
	}
	v.animated = canvas.NewColorRGBAAnimation(from, to, config.TransitionDuration, func(c color.Color) {
		v.background.StartColor = c
		v.background.Refresh()
	})
	v.animated.Start()
}

// fontStyle maps a theme font to the weekday style, day style and day size.
func fontStyle(f *theme.Font) (fyne.TextStyle, fyne.TextStyle, float32) {
	bold := fyne.TextStyle{Bold: true}
	if f == nil {
		return bold, bold, config.DayTextSize
	}
	var s fyne.TextStyle
	switch f.Family {
	case theme.FamilyMonospace:
		s = fyne.TextStyle{Monospace: true}
	case theme.FamilyItalic:
		s = fyne.TextStyle{Italic: true}
	case theme.FamilyBoldItalic:
		s = fyne.TextStyle{Bold: true, Italic: true}
	default:
		s = bold
	}
	return s, s, f.Size
}

func rgba(c colorful.Color) color.Color {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
