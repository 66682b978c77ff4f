package engine

import "fmt"

// LoadError reports a dataset that could not be read at all: missing file,
// unreadable stream, empty input or missing required columns.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load dataset: %v", e.Err)
	}
	return fmt.Sprintf("load dataset %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// MalformedRowError reports a data row whose fields could not be parsed.
// Row is the 0-based data row index, Line the 1-based line in the source.
type MalformedRowError struct {
	Row    int
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("malformed row %d (line %d): %v", e.Row, e.Line, e.Err)
	}
	return fmt.Sprintf("malformed row %d (line %d): column %s value %q: %v",
		e.Row, e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// InvalidRegionError is returned when a region label is not offered for a view.
type InvalidRegionError struct {
	Label string
	View  View
}

func (e *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region %q for %s view", e.Label, e.View)
}
