package engine

import (
	"sort"

	"vgsales/internal/models"
)

// DefaultTitleMinGlobalSales is the global sales floor (in millions) a title
// must reach to appear in the title view.
const DefaultTitleMinGlobalSales = 10.0

// Threshold keeps rows whose value in Region is at least Min.
type Threshold struct {
	Region models.Region
	Min    float64
}

// FilterSort returns the rows passing filter, ordered by sortKey descending.
// A nil filter keeps every row. Equal values keep their input order.
// rows is never modified.
func FilterSort(rows []models.AggregatedRow, sortKey models.Region, filter *Threshold) []models.AggregatedRow {
	// 1. Filter (copy, the base table is shared)
	out := make([]models.AggregatedRow, 0, len(rows))
	for _, r := range rows {
		if filter != nil && r.Value(filter.Region) < filter.Min {
			continue
		}
		out = append(out, r)
	}

	// 2. Sort
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(sortKey) > out[j].Value(sortKey)
	})
	return out
}
