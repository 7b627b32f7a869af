package scraper

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/statscrape/internal/config"
	"github.com/pfrederiksen/statscrape/internal/jsondoc"
	"github.com/pfrederiksen/statscrape/internal/logger"
	"github.com/pfrederiksen/statscrape/internal/table"
)

// TouchdownSignature matches an all-positions touchdown leaderboard.
// Kicker rows count against a table so the kicking leaderboard loses to it.
var TouchdownSignature = table.Signature{
	Fields: []table.Field{
		{Name: "player", Label: "Player", Tokens: []string{"player"}, PreferLink: true},
		{Name: "position", Label: "Position", Tokens: []string{"pos", "position"}},
		{Name: "team", Label: "Team", Tokens: []string{"team", "tm"}},
		{Name: "touchdowns", Label: "TDs", Tokens: []string{"tot td", "tot", "tds", "td", "touchdowns", "total td", "touchdown"}},
	},
	Key:     "player",
	Metric:  "touchdowns",
	Filter:  "position",
	Exclude: []string{"K"},
}

// Touchdowns tries each URL in order and returns the leaders from the first
// page holding a usable table.
func (s *Scraper) Touchdowns(ctx context.Context, urls []string, limit int) (*Result, error) {
	var tried []string

	for _, url := range urls {
		res, err := s.touchdownsFrom(ctx, url, limit)
		if err == nil {
			return res, nil
		}

		reason := fmt.Sprintf("%s (error: %v)", url, err)
		if errors.Is(err, table.ErrNoUsableTable) {
			reason = url + " (no matching headers)"
		}
		tried = append(tried, reason)

		logger.Warn("touchdown source rejected", logger.Fields{"url": url, "reason": reason})
	}

	return nil, &NotFoundError{What: "Touchdowns leaders", Tried: tried}
}

func (s *Scraper) touchdownsFrom(ctx context.Context, url string, limit int) (*Result, error) {
	data, err := s.fetcher.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	return extractRanked(doc, table.DefaultSelector, TouchdownSignature, table.ProjectOptions{Limit: limit}, url)
}

// TouchdownsFeed reads leaders from a JSON feed. Feed records carry no rank
// order, so rows are sorted by touchdowns, highest first.
func (s *Scraper) TouchdownsFeed(ctx context.Context, feed config.Feed, limit int) (*Result, error) {
	if feed.URL == "" {
		return nil, errors.New("touchdowns.feed.url is not configured")
	}

	data, err := s.fetcher.Get(ctx, feed.URL, nil)
	if err != nil {
		return nil, err
	}

	root, err := jsondoc.Parse(data)
	if err != nil {
		return nil, err
	}

	candidate, cols, err := feedCandidate(root, feed, TouchdownSignature)
	if err != nil {
		return nil, err
	}

	logger.Info("feed records loaded", logger.Fields{"url": feed.URL, "records": len(candidate.Rows)})

	ranked := table.Project(candidate, TouchdownSignature, cols, table.ProjectOptions{
		Limit:        limit,
		SortByMetric: true,
	})
	return rankedResult(ranked, TouchdownSignature, feed.URL), nil
}

// feedCandidate turns feed records into a candidate whose headers are the
// signature's field names. Fields without a configured path stay unresolved.
func feedCandidate(root jsondoc.Value, feed config.Feed, sig table.Signature) (table.Candidate, table.Columns, error) {
	recordsValue, err := root.Lookup(feed.Records)
	if err != nil {
		return table.Candidate{}, nil, err
	}
	records, ok := recordsValue.Items()
	if !ok {
		return table.Candidate{}, nil, fmt.Errorf("%w: %s is %s, not array",
			jsondoc.ErrUnexpected, feed.Records, recordsValue.Kind())
	}

	headers := make([]string, len(sig.Fields))
	cols := make(table.Columns, len(sig.Fields))
	for i, f := range sig.Fields {
		headers[i] = f.Name
		if feed.Fields[f.Name] != "" {
			cols[f.Name] = i
		}
	}
	if _, ok := cols.Index(sig.Key); !ok {
		return table.Candidate{}, nil, &table.MisalignmentError{Missing: []string{sig.Key}, Headers: headers}
	}

	candidate := table.Candidate{Headers: headers, Rows: make([]table.Row, 0, len(records))}
	for _, rec := range records {
		row := make(table.Row, len(sig.Fields))
		for i, f := range sig.Fields {
			path := feed.Fields[f.Name]
			if path == "" {
				continue
			}
			if v, err := rec.Lookup(path); err == nil {
				if text, ok := v.Text(); ok {
					row[i] = table.Cell{Text: text}
				}
			}
		}
		candidate.Rows = append(candidate.Rows, row)
	}
	return candidate, cols, nil
}
