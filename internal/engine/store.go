package engine

import "vgsales/internal/models"

// ColumnStore holds data in Struct-of-Arrays format
type ColumnStore struct {
	// Sales Columns (Flat Arrays)
	NA     []float64
	EU     []float64
	JP     []float64
	Other  []float64
	Global []float64

	// Dictionary Encoded IDs (0..N)
	TitleIDs []int32
	GenreIDs []int32

	// Dictionaries (ID -> String)
	TitleDict []string
	GenreDict []string

	titleIdx map[string]int32
	genreIdx map[string]int32
}

// NewColumnStore returns an empty store with room for n rows.
func NewColumnStore(n int) *ColumnStore {
	return &ColumnStore{
		NA:       make([]float64, 0, n),
		EU:       make([]float64, 0, n),
		JP:       make([]float64, 0, n),
		Other:    make([]float64, 0, n),
		Global:   make([]float64, 0, n),
		TitleIDs: make([]int32, 0, n),
		GenreIDs: make([]int32, 0, n),
		titleIdx: make(map[string]int32),
		genreIdx: make(map[string]int32),
	}
}

// FromRecords builds a store from records, keeping their order.
func FromRecords(records []models.Record) *ColumnStore {
	cs := NewColumnStore(len(records))
	for _, r := range records {
		cs.Append(r)
	}
	return cs
}

// Append adds one row. Title and genre are dictionary encoded.
func (cs *ColumnStore) Append(r models.Record) {
	cs.NA = append(cs.NA, r.NA)
	cs.EU = append(cs.EU, r.EU)
	cs.JP = append(cs.JP, r.JP)
	cs.Other = append(cs.Other, r.Other)
	cs.Global = append(cs.Global, r.Global)
	cs.TitleIDs = append(cs.TitleIDs, intern(r.Title, cs.titleIdx, &cs.TitleDict))
	cs.GenreIDs = append(cs.GenreIDs, intern(r.Genre, cs.genreIdx, &cs.GenreDict))
}

func intern(s string, idx map[string]int32, dict *[]string) int32 {
	if id, ok := idx[s]; ok {
		return id
	}
	id := int32(len(*dict))
	*dict = append(*dict, s)
	idx[s] = id
	return id
}

// Len returns the number of rows.
func (cs *ColumnStore) Len() int {
	if cs == nil {
		return 0
	}
	return len(cs.Global)
}

// Record reassembles row i.
func (cs *ColumnStore) Record(i int) models.Record {
	return models.Record{
		Title:  cs.TitleDict[cs.TitleIDs[i]],
		Genre:  cs.GenreDict[cs.GenreIDs[i]],
		NA:     cs.NA[i],
		EU:     cs.EU[i],
		JP:     cs.JP[i],
		Other:  cs.Other[i],
		Global: cs.Global[i],
	}
}

// Records returns every row in source order.
func (cs *ColumnStore) Records() []models.Record {
	out := make([]models.Record, cs.Len())
	for i := range out {
		out[i] = cs.Record(i)
	}
	return out
}
