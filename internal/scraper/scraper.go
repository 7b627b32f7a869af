package scraper

import (
	"bytes"
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/statscrape/internal/logger"
	"github.com/pfrederiksen/statscrape/internal/table"
)

// Getter fetches a raw document
type Getter interface {
	Get(ctx context.Context, url string, query map[string]string) ([]byte, error)
}

// Result is a flat table ready to print
type Result struct {
	Header []string
	Rows   [][]string
	Source string // URL the rows came from
}

// NotFoundError reports that none of the tried sources held a usable table.
// Each entry of Tried is a URL followed by the reason it was rejected.
type NotFoundError struct {
	What  string
	Tried []string
}

func (e *NotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Could not extract %s. Tried:", e.What)
	for _, t := range e.Tried {
		fmt.Fprintf(&b, "\n - %s", t)
	}
	return b.String()
}

// Scraper handles fetching and parsing of every source
type Scraper struct {
	fetcher Getter
	now     func() time.Time
}

// New creates a new Scraper instance
func New(fetcher Getter) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// parseDocument parses fetched HTML
func parseDocument(data []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// extractRanked selects the best table of doc for sig and projects it
func extractRanked(doc *goquery.Document, selector string, sig table.Signature, opts table.ProjectOptions, sourceURL string) (*Result, error) {
	best, score, err := table.Select(counted(table.Scan(doc, selector)), sig)
	if err != nil {
		return nil, err
	}

	cols, err := table.ResolveColumns(best.Headers, sig)
	if err != nil {
		return nil, err
	}

	logger.SetGauge("table.score", float64(score))
	logger.Info("table selected", logger.Fields{
		"url":     sourceURL,
		"table":   best.Index,
		"score":   score,
		"headers": best.Headers,
	})

	ranked := table.Project(best, sig, cols, opts)
	if len(ranked) == 0 {
		// Headers resolved but no body row lines up with them
		return nil, fmt.Errorf("table %d has no rows aligned with its headers: %w", best.Index,
			&table.MisalignmentError{Missing: []string{sig.Key}, Headers: best.Headers})
	}

	return rankedResult(ranked, sig, sourceURL), nil
}

func rankedResult(ranked []table.Ranked, sig table.Signature, sourceURL string) *Result {
	res := &Result{
		Header: sig.Labels(),
		Rows:   make([][]string, 0, len(ranked)),
		Source: sourceURL,
	}
	for _, r := range ranked {
		res.Rows = append(res.Rows, r.Strings())
	}
	logger.AddCounter("rows.emitted", int64(len(res.Rows)))
	return res
}

// counted passes candidates through while counting them
func counted(seq iter.Seq[table.Candidate]) iter.Seq[table.Candidate] {
	return func(yield func(table.Candidate) bool) {
		for c := range seq {
			logger.IncrCounter("tables.scanned")
			if !yield(c) {
				return
			}
		}
	}
}
