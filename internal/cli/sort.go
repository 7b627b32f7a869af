package cli

import (
	"sort"
)

// SortOrder represents the available orderings of inspect output
type SortOrder string

const (
	SortByIndex SortOrder = "index"
	SortByScore SortOrder = "score"
)

// sortReports sorts candidate reports based on the specified sort order
func sortReports(reports []candidateReport, sortOrder SortOrder) {
	switch sortOrder {
	case SortByIndex:
		sort.SliceStable(reports, func(i, j int) bool {
			return reports[i].Index < reports[j].Index
		})
	case SortByScore:
		sort.SliceStable(reports, func(i, j int) bool {
			if reports[i].Score != reports[j].Score {
				return reports[i].Score > reports[j].Score
			}
			// Equal scores keep document order
			return reports[i].Index < reports[j].Index
		})
	}
}
