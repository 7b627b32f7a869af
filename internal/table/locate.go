package table

import (
	"fmt"
	"iter"
)

// Locate selects the best candidate for sig and resolves its columns
func Locate(candidates iter.Seq[Candidate], sig Signature) (Candidate, Columns, error) {
	best, _, err := Select(candidates, sig)
	if err != nil {
		return Candidate{}, nil, err
	}

	cols, err := ResolveColumns(best.Headers, sig)
	if err != nil {
		return Candidate{}, nil, fmt.Errorf("table %d: %w", best.Index, err)
	}
	return best, cols, nil
}

// Extract runs Locate followed by Project
func Extract(candidates iter.Seq[Candidate], sig Signature, opts ProjectOptions) ([]Ranked, error) {
	best, cols, err := Locate(candidates, sig)
	if err != nil {
		return nil, err
	}
	return Project(best, sig, cols, opts), nil
}
