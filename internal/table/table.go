// Package table locates a leaderboard-style table inside a loosely structured
// document and projects its rows into ranked output.
//
// The pipeline has four steps, each usable on its own:
//
//	Scan          enumerate candidate tables of an HTML document
//	Score/Select  pick the candidate that best fits a Signature
//	ResolveColumns map semantic fields to column indices
//	Project       filter, rank and truncate body rows
//
// Everything after Scan works on plain Candidate values, so scoring and
// projection can be exercised with synthetic fixtures.
package table

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultLimit is the number of ranked rows emitted when no limit is given
	DefaultLimit = 20

	// ScoreWindow is how many body rows Score looks at
	ScoreWindow = 25

	// Placeholder stands in for values of unresolved or empty optional columns
	Placeholder = "-"
)

var (
	// ErrNoUsableTable is returned by Select when no candidate fits the signature
	ErrNoUsableTable = errors.New("no usable table")

	// ErrColumnMisalignment is matched by MisalignmentError
	ErrColumnMisalignment = errors.New("column misalignment")
)

// Cell is one table cell. Link holds the text of the first anchor inside the
// cell, if any.
type Cell struct {
	Text string
	Link string
}

// Value returns the cell text, or the link text when preferLink is set and
// the cell has one.
func (c Cell) Value(preferLink bool) string {
	if preferLink && c.Link != "" {
		return c.Link
	}
	return c.Text
}

// Row is an ordered sequence of cells
type Row []Cell

// Candidate is a table found while scanning a document
type Candidate struct {
	Index   int // position of the table in the document, starting at 0
	Headers []string
	Rows    []Row
}

// NewCandidate builds a candidate from plain strings
func NewCandidate(headers []string, rows ...[]string) Candidate {
	c := Candidate{Headers: headers, Rows: make([]Row, 0, len(rows))}
	for _, r := range rows {
		c.Rows = append(c.Rows, TextRow(r...))
	}
	return c
}

// TextRow builds a row of link-less cells
func TextRow(texts ...string) Row {
	row := make(Row, len(texts))
	for i, t := range texts {
		row[i] = Cell{Text: t}
	}
	return row
}

// Field describes one semantic column
type Field struct {
	Name       string
	Label      string   // output column label, e.g. "TDs"
	Tokens     []string // lower-case header tokens, exact match first, then substring
	PreferLink bool
}

// Signature describes the table a scraper is looking for.
// Key and Metric must name fields in Fields; Filter may be empty.
type Signature struct {
	Fields   []Field
	Key      string
	Metric   string
	Filter   string
	Exclude  []string // Filter values that do not count towards the score
	Required []string // fields that must resolve, besides Key
}

// Field returns the field with the given name
func (s Signature) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Labels returns the output header labels, prefixed with "Rank"
func (s Signature) Labels() []string {
	labels := make([]string, 0, len(s.Fields)+1)
	labels = append(labels, "Rank")
	for _, f := range s.Fields {
		labels = append(labels, f.Label)
	}
	return labels
}

func (s Signature) excluded(value string) bool {
	for _, ex := range s.Exclude {
		if strings.EqualFold(strings.TrimSpace(value), ex) {
			return true
		}
	}
	return false
}

// MisalignmentError reports fields that could not be resolved against the
// headers of a selected table.
type MisalignmentError struct {
	Missing []string
	Headers []string
}

func (e *MisalignmentError) Error() string {
	return fmt.Sprintf("could not align columns %s in headers [%s]",
		strings.Join(e.Missing, ", "), strings.Join(e.Headers, ", "))
}

func (e *MisalignmentError) Is(target error) bool {
	return target == ErrColumnMisalignment
}
