package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/monthly-widget/internal/config"
	"github.com/tartampluch/monthly-widget/internal/term"
)

// trayIcon draws the day of month on the month's background as an SVG.
// Digits are filled cells of the block glyphs since the SVG rasterizer
// ignores <text> elements.
func trayIcon(p presentation) fyne.Resource {
	return fyne.NewStaticResource(config.IconFile, iconSVG(p))
}

func iconSVG(p presentation) []byte {
	rows := term.BigDigits(p.Day)

	cols := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > cols {
			cols = n
		}
	}
	offX := (config.IconSide - cols*config.IconCell) / 2
	offY := (config.IconSide - len(rows)*config.IconCell) / 2

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		config.IconSide, config.IconSide, config.IconSide, config.IconSide)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" rx="%d" fill="%s"/>`,
		config.IconSide, config.IconSide, config.IconRadius, p.Theme.Background.Hex())

	fill := p.Theme.DayText.Hex()
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == ' ' {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
				offX+x*config.IconCell, offY+y*config.IconCell, config.IconCell, config.IconCell, fill)
		}
	}
	b.WriteString(`</svg>`)
	return []byte(b.String())
}
