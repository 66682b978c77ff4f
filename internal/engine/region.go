package engine

import "vgsales/internal/models"

// View names one of the two summary views.
type View string

const (
	ViewTitle View = "title"
	ViewGenre View = "genre"
)

type regionOption struct {
	label  string
	region models.Region
}

// Dropdown order of the region options. The genre view offers no global option.
var (
	titleRegions = []regionOption{
		{"Global Sales", models.RegionGlobal},
		{"North America Sales", models.RegionNA},
		{"Europe Sales", models.RegionEU},
		{"Japan Sales", models.RegionJP},
		{"Other Sales", models.RegionOther},
	}
	genreRegions = []regionOption{
		{"North America Sales", models.RegionNA},
		{"Europe Sales", models.RegionEU},
		{"Japan Sales", models.RegionJP},
		{"Other Sales", models.RegionOther},
	}
)

const defaultLabel = "North America Sales"

// ParseView maps a view name to a View.
func ParseView(s string) (View, bool) {
	switch View(s) {
	case ViewTitle, ViewGenre:
		return View(s), true
	}
	return "", false
}

// KeyColumn is the source header of the column a view is keyed by.
func (v View) KeyColumn() string {
	if v == ViewGenre {
		return ColGenre
	}
	return ColTitle
}

func optionsFor(view View) []regionOption {
	switch view {
	case ViewTitle:
		return titleRegions
	case ViewGenre:
		return genreRegions
	}
	return nil
}

// Labels returns the ordered region labels offered for view.
func Labels(view View) []string {
	opts := optionsFor(view)
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.label
	}
	return out
}

// DefaultLabel is the label preselected when a view is first shown.
func DefaultLabel(view View) string {
	if optionsFor(view) == nil {
		return ""
	}
	return defaultLabel
}

// Resolve maps label to its sales column for view.
func Resolve(label string, view View) (models.Region, error) {
	for _, o := range optionsFor(view) {
		if o.label == label {
			return o.region, nil
		}
	}
	return 0, &InvalidRegionError{Label: label, View: view}
}
