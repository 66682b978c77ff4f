package models

// Region identifies one of the numeric sales columns.
type Region int

const (
	RegionNA Region = iota
	RegionEU
	RegionJP
	RegionOther
	RegionGlobal
)

// Column returns the source CSV header backing the region.
func (r Region) Column() string {
	switch r {
	case RegionNA:
		return "NA_Sales"
	case RegionEU:
		return "EU_Sales"
	case RegionJP:
		return "JP_Sales"
	case RegionOther:
		return "Other_Sales"
	case RegionGlobal:
		return "Global_Sales"
	}
	return ""
}

func (r Region) String() string {
	if c := r.Column(); c != "" {
		return c
	}
	return "Region(unknown)"
}

// Record is one row of the input dataset. Sales figures are in millions of units.
type Record struct {
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	NA     float64 `json:"na"`
	EU     float64 `json:"eu"`
	JP     float64 `json:"jp"`
	Other  float64 `json:"other"`
	Global float64 `json:"global"`
}

// AggregatedRow holds the per-key sums of every sales column.
type AggregatedRow struct {
	Key    string  `json:"key"`
	NA     float64 `json:"na"`
	EU     float64 `json:"eu"`
	JP     float64 `json:"jp"`
	Other  float64 `json:"other"`
	Global float64 `json:"global"`
}

// Value returns the sales figure for the given region.
func (a AggregatedRow) Value(r Region) float64 {
	switch r {
	case RegionNA:
		return a.NA
	case RegionEU:
		return a.EU
	case RegionJP:
		return a.JP
	case RegionOther:
		return a.Other
	case RegionGlobal:
		return a.Global
	}
	return 0
}

// ViewPage is the paginated payload returned for a summary view.
type ViewPage struct {
	View   string          `json:"view"`
	Region string          `json:"region"`
	Column string          `json:"column"`
	Data   []AggregatedRow `json:"data"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// RegionOptions lists the selectable labels for one view.
type RegionOptions struct {
	View    string   `json:"view"`
	Labels  []string `json:"labels"`
	Default string   `json:"default"`
}

// DashboardStats summarizes the loaded dataset.
type DashboardStats struct {
	Records   int     `json:"records"`
	Titles    int     `json:"titles"`
	Genres    int     `json:"genres"`
	TitleView int     `json:"title_view_rows"`
	Threshold float64 `json:"title_min_global_sales"`
}
