package engine

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"vgsales/internal/models"
)

// Header names of the columns the loader reads. Headers are case-sensitive;
// any other column in the file is ignored.
const (
	ColTitle  = "Name"
	ColGenre  = "Genre"
	ColNA     = "NA_Sales"
	ColEU     = "EU_Sales"
	ColJP     = "JP_Sales"
	ColOther  = "Other_Sales"
	ColGlobal = "Global_Sales"
)

var requiredColumns = []string{ColTitle, ColGenre, ColNA, ColEU, ColJP, ColOther, ColGlobal}

var (
	errEmptyInput  = errors.New("empty input: no header row")
	errShortRow    = errors.New("row has fewer fields than the header")
	errNegative    = errors.New("sales value is negative")
	errNotFinite   = errors.New("sales value is not a finite number")
	errEmptyNumber = errors.New("sales value is empty")
)

// LoadOptions tunes how malformed rows are handled.
type LoadOptions struct {
	// SkipMalformed drops unparseable rows with a warning instead of
	// aborting the load.
	SkipMalformed bool
}

// --- 1. PARSERS ---

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// skipBOM drops a leading UTF-8 byte order mark, as written by spreadsheet exports.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	return br
}

// parseSales parses " 1.25 " -> 1.25, rejecting negatives, NaN and Inf.
func parseSales(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyNumber
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	if f < 0 {
		return 0, errNegative
	}
	return f, nil
}

// columnIndex holds the position of each required column in the header.
type columnIndex struct {
	title, genre              int
	na, eu, jp, other, global int
	maxIdx                    int
}

func indexHeader(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	for _, c := range requiredColumns {
		if _, ok := pos[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	idx := columnIndex{
		title:  pos[ColTitle],
		genre:  pos[ColGenre],
		na:     pos[ColNA],
		eu:     pos[ColEU],
		jp:     pos[ColJP],
		other:  pos[ColOther],
		global: pos[ColGlobal],
	}
	for _, c := range requiredColumns {
		idx.maxIdx = max(idx.maxIdx, pos[c])
	}
	return idx, nil
}

func parseRow(fields []string, cols columnIndex, row, line int) (models.Record, error) {
	if len(fields) <= cols.maxIdx {
		return models.Record{}, &MalformedRowError{Row: row, Line: line, Err: errShortRow}
	}

	rec := models.Record{
		Title: strings.TrimSpace(fields[cols.title]),
		Genre: strings.TrimSpace(fields[cols.genre]),
	}

	numeric := []struct {
		col  string
		idx  int
		dest *float64
	}{
		{ColNA, cols.na, &rec.NA},
		{ColEU, cols.eu, &rec.EU},
		{ColJP, cols.jp, &rec.JP},
		{ColOther, cols.other, &rec.Other},
		{ColGlobal, cols.global, &rec.Global},
	}
	for _, n := range numeric {
		v, err := parseSales(fields[n.idx])
		if err != nil {
			return models.Record{}, &MalformedRowError{
				Row: row, Line: line, Column: n.col, Value: fields[n.idx], Err: err,
			}
		}
		*n.dest = v
	}
	return rec, nil
}

// --- 2. MAIN LOADER ---

// LoadFile opens path and loads it with Load.
func LoadFile(path string, opts LoadOptions) (*ColumnStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	store, err := Load(f, opts)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return store, nil
}

// Load reads a CSV dataset into a ColumnStore, preserving row order.
// Structural problems return *LoadError. A bad data row returns
// *MalformedRowError unless opts.SkipMalformed is set.
func Load(r io.Reader, opts LoadOptions) (*ColumnStore, error) {
	start := time.Now()

	cr := csv.NewReader(skipBOM(r))
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	// A. Header
	header, err := cr.Read()
	if err == io.EOF {
		return nil, &LoadError{Err: errEmptyInput}
	}
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("read header: %w", err)}
	}
	cols, err := indexHeader(header)
	if err != nil {
		return nil, &LoadError{Err: err}
	}

	// B. Rows
	store := NewColumnStore(1024)
	skipped := 0
	for row := 0; ; row++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}

		var rec models.Record
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			err = &MalformedRowError{Row: row, Line: line, Err: err}
		} else {
			line, _ := cr.FieldPos(0)
			rec, err = parseRow(fields, cols, row, line)
		}

		if err != nil {
			if !opts.SkipMalformed {
				return nil, err
			}
			skipped++
			log.Warn().Err(err).Int("row", row).Msg("skipping malformed row")
			continue
		}
		store.Append(rec)
	}

	log.Info().
		Int("rows", store.Len()).
		Int("skipped", skipped).
		Int("titles", len(store.TitleDict)).
		Int("genres", len(store.GenreDict)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset loaded")
	return store, nil
}
