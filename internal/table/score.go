package table

import (
	"iter"
	"unicode"
)

// Score rates how well a candidate fits the signature.
//
// A candidate whose headers lack the key or metric field scores -1.
// Otherwise each of the first ScoreWindow body rows earns 2 points when its
// filter column is present and not excluded, and 1 point when its metric
// cell contains a digit.
func Score(c Candidate, sig Signature) int {
	key, _ := sig.Field(sig.Key)
	metric, _ := sig.Field(sig.Metric)

	if Resolve(c.Headers, key.Tokens) < 0 {
		return -1
	}
	metricIdx := Resolve(c.Headers, metric.Tokens)
	if metricIdx < 0 {
		return -1
	}

	filterIdx := -1
	if filter, ok := sig.Field(sig.Filter); ok {
		filterIdx = Resolve(c.Headers, filter.Tokens)
	}

	score := 0
	for i, row := range c.Rows {
		if i >= ScoreWindow {
			break
		}
		if filterIdx >= 0 && filterIdx < len(row) && !sig.excluded(row[filterIdx].Text) {
			score += 2
		}
		if metricIdx < len(row) && hasDigit(row[metricIdx].Text) {
			score++
		}
	}
	return score
}

// Select returns the highest scoring candidate and its score. Ties go to the
// candidate seen first. ErrNoUsableTable is returned when every candidate
// scores below zero.
func Select(candidates iter.Seq[Candidate], sig Signature) (Candidate, int, error) {
	var best Candidate
	bestScore := -1
	found := false

	for c := range candidates {
		s := Score(c, sig)
		if s < 0 {
			continue
		}
		if !found || s > bestScore {
			best, bestScore, found = c, s, true
		}
	}

	if !found {
		return Candidate{}, -1, ErrNoUsableTable
	}
	return best, bestScore, nil
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
