package table

import (
	"slices"
	"strings"
)

// Columns maps field names to zero-based column indices.
// Unresolved fields are absent from the map.
type Columns map[string]int

// Index returns the column of a field and whether it resolved
func (c Columns) Index(field string) (int, bool) {
	i, ok := c[field]
	return i, ok
}

// maxIndex is the highest resolved column, or -1
func (c Columns) maxIndex() int {
	highest := -1
	for _, i := range c {
		if i > highest {
			highest = i
		}
	}
	return highest
}

// Resolve finds the column for a set of tokens.
//
// Tokens are tried in order for an exact match against the lower-cased
// header; failing that, the first header containing any token wins.
// Returns -1 when nothing matches.
func Resolve(headers []string, tokens []string) int {
	lowered := make([]string, len(headers))
	for i, h := range headers {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, tok := range tokens {
		if i := slices.Index(lowered, tok); i >= 0 {
			return i
		}
	}

	for i, h := range lowered {
		for _, tok := range tokens {
			if tok != "" && strings.Contains(h, tok) {
				return i
			}
		}
	}

	return -1
}

// ResolveColumns resolves every field of the signature against headers.
// It fails if the key field or any required field is missing.
func ResolveColumns(headers []string, sig Signature) (Columns, error) {
	cols := make(Columns, len(sig.Fields))
	var missing []string

	for _, f := range sig.Fields {
		i := Resolve(headers, f.Tokens)
		if i < 0 {
			if f.Name == sig.Key || slices.Contains(sig.Required, f.Name) {
				missing = append(missing, f.Name)
			}
			continue
		}
		cols[f.Name] = i
	}

	if _, ok := sig.Field(sig.Key); !ok {
		missing = append(missing, sig.Key)
	}

	if len(missing) > 0 {
		return nil, &MisalignmentError{Missing: missing, Headers: headers}
	}
	return cols, nil
}
