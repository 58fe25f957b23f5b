package engine

import "github.com/tartampluch/monthly-widget/internal/config"

// Family is a widget size class.
type Family string

// Placement is a context in which a host may show the widget.
type Placement string

const (
	FamilySmall Family = "systemSmall"

	PlacementHome    Placement = "home"
	PlacementStandBy Placement = "standBy"
)

// Descriptor holds the static declarations a host reads before showing the widget.
type Descriptor struct {
	Kind        string
	DisplayName string
	Description string
	Families    []Family
	Disfavored  []Placement
}

// MonthlyDescriptor describes the monthly widget: one small family,
// not offered in stand-by (full screen) placement.
func MonthlyDescriptor() Descriptor {
	return Descriptor{
		Kind:        config.WidgetKind,
		DisplayName: config.WidgetDisplayName,
		Description: config.WidgetDescription,
		Families:    []Family{FamilySmall},
		Disfavored:  []Placement{PlacementStandBy},
	}
}

// Supports reports whether the widget can be shown in the given placement.
func (d Descriptor) Supports(p Placement) bool {
	for _, x := range d.Disfavored {
		if x == p {
			return false
		}
	}
	return true
}
