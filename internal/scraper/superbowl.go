package scraper

import (
	"context"
	"errors"

	"github.com/pfrederiksen/statscrape/internal/table"
)

// SuperBowlSignature matches the champions table. All four columns must be
// present; a table missing one is reported rather than printed with gaps.
var SuperBowlSignature = table.Signature{
	Fields: []table.Field{
		{Name: "season", Label: "Season", Tokens: []string{"season", "date/season", "date"}},
		{Name: "winner", Label: "Winner", Tokens: []string{"winning team", "winner"}},
		{Name: "score", Label: "Score", Tokens: []string{"score", "result"}},
		{Name: "loser", Label: "Loser", Tokens: []string{"losing team", "loser"}},
	},
	Key:      "winner",
	Metric:   "score",
	Required: []string{"season", "winner", "score", "loser"},
}

// SuperBowl returns the first rows of the champions table at url.
// selector narrows the tables considered, e.g. "table.wikitable".
func (s *Scraper) SuperBowl(ctx context.Context, url, selector string, limit int) (*Result, error) {
	data, err := s.fetcher.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	res, err := extractRanked(doc, selector, SuperBowlSignature, table.ProjectOptions{Limit: limit}, url)
	if errors.Is(err, table.ErrNoUsableTable) {
		return nil, &NotFoundError{What: "the champions table", Tried: []string{url + " (no matching headers)"}}
	}
	return res, err
}
