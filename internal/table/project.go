package table

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

const emDash = "—"

// Ranked is one output row. Values follow the order of Signature.Fields.
type Ranked struct {
	Rank   int
	Values []string
}

// Strings returns the rank followed by the values
func (r Ranked) Strings() []string {
	return append([]string{strconv.Itoa(r.Rank)}, r.Values...)
}

// ProjectOptions controls Project
type ProjectOptions struct {
	// Limit caps the number of ranked rows. Zero means DefaultLimit.
	Limit int

	// SortByMetric orders rows by numeric metric, highest first, before
	// ranking. Rows with a non-numeric metric are dropped. Used for sources
	// that carry no inherent order.
	SortByMetric bool
}

// Project walks the body rows of c in document order and returns the ranked
// rows. Rows that are too short, have an empty key, or repeat the header
// are skipped.
func Project(c Candidate, sig Signature, cols Columns, opts ProjectOptions) []Ranked {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	keyIdx, ok := cols.Index(sig.Key)
	if !ok {
		return nil
	}
	keyField, _ := sig.Field(sig.Key)
	keyLabel := ""
	if keyIdx < len(c.Headers) {
		keyLabel = strings.TrimSpace(c.Headers[keyIdx])
	}
	metricPos := slices.IndexFunc(sig.Fields, func(f Field) bool { return f.Name == sig.Metric })
	need := cols.maxIndex()

	out := make([]Ranked, 0, limit)
	for _, row := range c.Rows {
		if !opts.SortByMetric && len(out) >= limit {
			break
		}
		if len(row) <= need {
			continue
		}

		key := strings.TrimSpace(row[keyIdx].Value(keyField.PreferLink))
		if key == "" || strings.EqualFold(key, keyLabel) || strings.EqualFold(key, sig.Key) {
			continue
		}

		values := make([]string, len(sig.Fields))
		for i, f := range sig.Fields {
			idx, ok := cols.Index(f.Name)
			if !ok {
				values[i] = Placeholder
				continue
			}
			v := strings.TrimSpace(row[idx].Value(f.PreferLink))
			if f.Name == sig.Metric {
				v = MetricValue(v)
			}
			if v == "" {
				v = Placeholder
			}
			values[i] = v
		}

		if opts.SortByMetric {
			if _, ok := metricNumber(values, metricPos); !ok {
				continue
			}
		}
		out = append(out, Ranked{Values: values})
	}

	if opts.SortByMetric {
		slices.SortStableFunc(out, func(a, b Ranked) int {
			x, _ := metricNumber(a.Values, metricPos)
			y, _ := metricNumber(b.Values, metricPos)
			return cmp.Compare(y, x)
		})
		if len(out) > limit {
			out = out[:limit]
		}
	}

	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// MetricValue extracts the reported value from a metric cell. Cells holding
// annotations around the number ("— 12 —", "12 (3 rush)") report the first
// token containing a digit; anything else is returned trimmed.
func MetricValue(raw string) string {
	trimmed := strings.TrimSpace(raw)
	tokens := strings.Fields(strings.ReplaceAll(trimmed, emDash, " "))
	if len(tokens) == 1 && !strings.Contains(trimmed, emDash) {
		return trimmed
	}
	for _, tok := range tokens {
		if hasDigit(tok) {
			return tok
		}
	}
	return trimmed
}

func metricNumber(values []string, pos int) (float64, bool) {
	if pos < 0 || pos >= len(values) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(values[pos], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
