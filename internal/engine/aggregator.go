package engine

import (
	"context"

	"vgsales/internal/models"
)

// GroupBy selects the categorical column rows are grouped on.
type GroupBy int

const (
	GroupByTitle GroupBy = iota
	GroupByGenre
)

func (g GroupBy) String() string {
	switch g {
	case GroupByTitle:
		return "title"
	case GroupByGenre:
		return "genre"
	}
	return "unknown"
}

// Column returns the source header of the grouping column.
func (g GroupBy) Column() string {
	if g == GroupByGenre {
		return ColGenre
	}
	return ColTitle
}

// Aggregator computes an aggregated table for one grouping.
type Aggregator interface {
	Aggregate(ctx context.Context, store *ColumnStore, by GroupBy) ([]models.AggregatedRow, error)
}

// MemoryAggregator aggregates directly over the column arrays.
type MemoryAggregator struct{}

func (MemoryAggregator) Aggregate(ctx context.Context, store *ColumnStore, by GroupBy) ([]models.AggregatedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Aggregate(store, by), nil
}

type salesSums struct {
	na, eu, jp, other, global float64
}

// Aggregate sums every sales column per key. Rows come back in the order
// each key was first seen. Rows with an empty key are left out.
func Aggregate(store *ColumnStore, by GroupBy) []models.AggregatedRow {
	if store.Len() == 0 {
		return []models.AggregatedRow{}
	}

	// 1. Dimensions
	// Dictionary IDs are assigned in first-seen order, so ID order is output order.
	ids, dict := store.TitleIDs, store.TitleDict
	if by == GroupByGenre {
		ids, dict = store.GenreIDs, store.GenreDict
	}

	// 2. Accumulate (Array Indexing, no hashing)
	sums := make([]salesSums, len(dict))
	na, eu, jp, other, global := store.NA, store.EU, store.JP, store.Other, store.Global
	for j, id := range ids {
		s := &sums[id]
		s.na += na[j]
		s.eu += eu[j]
		s.jp += jp[j]
		s.other += other[j]
		s.global += global[j]
	}

	// 3. Build Result
	out := make([]models.AggregatedRow, 0, len(dict))
	for id, key := range dict {
		if key == "" {
			continue
		}
		s := sums[id]
		out = append(out, models.AggregatedRow{
			Key:    key,
			NA:     s.na,
			EU:     s.eu,
			JP:     s.jp,
			Other:  s.other,
			Global: s.global,
		})
	}
	return out
}
