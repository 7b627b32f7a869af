package table

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var touchdownSig = Signature{
	Fields: []Field{
		{Name: "player", Label: "Player", Tokens: []string{"player"}, PreferLink: true},
		{Name: "position", Label: "Position", Tokens: []string{"pos", "position"}},
		{Name: "team", Label: "Team", Tokens: []string{"team", "tm"}},
		{Name: "touchdowns", Label: "TDs", Tokens: []string{"td", "tds", "tot td"}},
	},
	Key:     "player",
	Metric:  "touchdowns",
	Filter:  "position",
	Exclude: []string{"K"},
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		tokens  []string
		want    int
	}{
		{"exact match", []string{"Player", "Pos", "TD"}, []string{"td"}, 2},
		{"exact match is case-insensitive", []string{"PLAYER", "Team"}, []string{"player"}, 0},
		{"token order decides exact match", []string{"TD", "Tot TD"}, []string{"tot td", "td"}, 1},
		{"substring fallback", []string{"Player", "Position", "Team", "Tot TD"}, []string{"td", "tds", "tot td"}, 3},
		{"substring takes first header", []string{"Rec TD", "Rush TD"}, []string{"td"}, 0},
		{"substring without exact", []string{"Player Name", "Total Touchdowns"}, []string{"touchdown"}, 1},
		{"header whitespace is trimmed", []string{"  Team  "}, []string{"team"}, 0},
		{"absent", []string{"Player", "Yds"}, []string{"td"}, -1},
		{"no headers", nil, []string{"player"}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.headers, tt.tokens); got != tt.want {
				t.Errorf("Resolve(%v, %v) = %d, want %d", tt.headers, tt.tokens, got, tt.want)
			}
		})
	}
}

func TestResolveColumns(t *testing.T) {
	cols, err := ResolveColumns([]string{"Player", "Position", "Team", "Tot TD"}, touchdownSig)
	if err != nil {
		t.Fatalf("ResolveColumns() unexpected error: %v", err)
	}

	want := Columns{"player": 0, "position": 1, "team": 2, "touchdowns": 3}
	if diff := cmp.Diff(want, cols); diff != "" {
		t.Errorf("ResolveColumns() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveColumns_OptionalFieldAbsent(t *testing.T) {
	cols, err := ResolveColumns([]string{"Player", "TD"}, touchdownSig)
	if err != nil {
		t.Fatalf("ResolveColumns() unexpected error: %v", err)
	}
	if _, ok := cols.Index("team"); ok {
		t.Error("team should not resolve")
	}
}

func TestResolveColumns_Misalignment(t *testing.T) {
	strict := touchdownSig
	strict.Required = []string{"team"}

	tests := []struct {
		name        string
		headers     []string
		sig         Signature
		wantMissing []string
	}{
		{"key missing", []string{"Name", "TD"}, touchdownSig, []string{"player"}},
		{"required field missing", []string{"Player", "TD"}, strict, []string{"team"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveColumns(tt.headers, tt.sig)
			if !errors.Is(err, ErrColumnMisalignment) {
				t.Fatalf("error = %v, want ErrColumnMisalignment", err)
			}
			var me *MisalignmentError
			if !errors.As(err, &me) {
				t.Fatalf("error should be *MisalignmentError, got %T", err)
			}
			if diff := cmp.Diff(tt.wantMissing, me.Missing); diff != "" {
				t.Errorf("Missing mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScore(t *testing.T) {
	headers := []string{"Player", "Pos", "TD"}

	skill := NewCandidate(headers,
		[]string{"Derrick Henry", "RB", "16"},
		[]string{"Ja'Marr Chase", "WR", "17"},
		[]string{"Saquon Barkley", "RB", "15"},
	)
	kickers := NewCandidate(headers,
		[]string{"Brandon Aubrey", "K", "0"},
		[]string{"Chris Boswell", "K", "0"},
		[]string{"Cameron Dicker", "K", "0"},
	)

	skillScore := Score(skill, touchdownSig)
	kickerScore := Score(kickers, touchdownSig)

	if skillScore != 9 {
		t.Errorf("Score(skill) = %d, want 9", skillScore)
	}
	if kickerScore != 3 {
		t.Errorf("Score(kickers) = %d, want 3", kickerScore)
	}
	if skillScore <= kickerScore {
		t.Errorf("non-kicker table should outscore kicker table: %d <= %d", skillScore, kickerScore)
	}
}

func TestScore_Disqualified(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
	}{
		{"no player column", []string{"Name", "Pos", "TD"}},
		{"no touchdown column", []string{"Player", "Pos", "Yds"}},
		{"no headers", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCandidate(tt.headers, []string{"A", "RB", "3"})
			if got := Score(c, touchdownSig); got != -1 {
				t.Errorf("Score() = %d, want -1", got)
			}
		})
	}
}

func TestScore_EmptyBody(t *testing.T) {
	c := NewCandidate([]string{"Player", "TD"})
	if got := Score(c, touchdownSig); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}

func TestScore_OnlyFirstRowsCount(t *testing.T) {
	var rows [][]string
	for i := 0; i < 40; i++ {
		rows = append(rows, []string{fmt.Sprintf("Player %d", i), "WR", "5"})
	}
	c := NewCandidate([]string{"Player", "Pos", "TD"}, rows...)

	if got := Score(c, touchdownSig); got != ScoreWindow*3 {
		t.Errorf("Score() = %d, want %d", got, ScoreWindow*3)
	}
}

func TestScore_ShortRowsDoNotPanic(t *testing.T) {
	c := NewCandidate([]string{"Player", "Pos", "TD"}, []string{"Only a name"})
	if got := Score(c, touchdownSig); got != 0 {
		t.Errorf("Score() = %d, want 0", got)
	}
}

func TestSelect(t *testing.T) {
	headers := []string{"Player", "Pos", "TD"}
	unrelated := NewCandidate([]string{"Team", "W", "L"}, []string{"BUF", "13", "4"})
	kickers := NewCandidate(headers, []string{"Aubrey", "K", "0"})
	skill := NewCandidate(headers, []string{"Henry", "RB", "16"})
	skillTwin := NewCandidate(headers, []string{"Chase", "WR", "17"})

	unrelated.Index, kickers.Index, skill.Index, skillTwin.Index = 0, 1, 2, 3

	best, score, err := Select(slices.Values([]Candidate{unrelated, kickers, skill, skillTwin}), touchdownSig)
	if err != nil {
		t.Fatalf("Select() unexpected error: %v", err)
	}
	if best.Index != 2 {
		t.Errorf("Select() picked table %d, want 2 (first of the tied best)", best.Index)
	}
	if score != 3 {
		t.Errorf("Select() score = %d, want 3", score)
	}
}

func TestSelect_NoUsableTable(t *testing.T) {
	cands := []Candidate{
		NewCandidate([]string{"Team", "W", "L"}),
		NewCandidate(nil),
	}

	_, _, err := Select(slices.Values(cands), touchdownSig)
	if !errors.Is(err, ErrNoUsableTable) {
		t.Errorf("Select() error = %v, want ErrNoUsableTable", err)
	}

	_, _, err = Select(slices.Values([]Candidate(nil)), touchdownSig)
	if !errors.Is(err, ErrNoUsableTable) {
		t.Errorf("Select(empty) error = %v, want ErrNoUsableTable", err)
	}
}

func TestMetricValue(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"12", "12"},
		{"  12  ", "12"},
		{"— 12 —", "12"},
		{"—12—", "12"},
		{"12 (3 rush)", "12"},
		{"TD 7", "7"},
		{"35–10", "35–10"},
		{"N/A", "N/A"},
		{"— —", "— —"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := MetricValue(tt.raw); got != tt.want {
				t.Errorf("MetricValue(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func project(t *testing.T, c Candidate, opts ProjectOptions) [][]string {
	t.Helper()
	cols, err := ResolveColumns(c.Headers, touchdownSig)
	if err != nil {
		t.Fatalf("ResolveColumns() unexpected error: %v", err)
	}
	var out [][]string
	for _, r := range Project(c, touchdownSig, cols, opts) {
		out = append(out, r.Strings())
	}
	return out
}

func TestProject(t *testing.T) {
	c := NewCandidate([]string{"Player", "Pos", "Team", "TD"},
		[]string{"Ja'Marr Chase", "WR", "CIN", "17"},
		[]string{"Player", "Pos", "Team", "TD"},
		[]string{"", "RB", "DET", "16"},
		[]string{"Short", "RB"},
		[]string{"Derrick Henry", "RB", "", "— 16 —"},
		[]string{"Saquon Barkley", "", "PHI", "15"},
	)

	want := [][]string{
		{"1", "Ja'Marr Chase", "WR", "CIN", "17"},
		{"2", "Derrick Henry", "RB", "-", "16"},
		{"3", "Saquon Barkley", "-", "PHI", "15"},
	}
	if diff := cmp.Diff(want, project(t, c, ProjectOptions{})); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_HeaderEchoIsCaseInsensitive(t *testing.T) {
	c := NewCandidate([]string{"Player", "TD"},
		[]string{"PLAYER", "TD"},
		[]string{"player", "TD"},
		[]string{"Josh Allen", "12"},
	)

	got := project(t, c, ProjectOptions{})
	if len(got) != 1 || got[0][1] != "Josh Allen" {
		t.Errorf("Project() = %v, want only Josh Allen", got)
	}
}

func TestProject_UnresolvedFieldsUsePlaceholder(t *testing.T) {
	c := NewCandidate([]string{"Player", "TD"}, []string{"Josh Allen", "12"})

	want := [][]string{{"1", "Josh Allen", "-", "-", "12"}}
	if diff := cmp.Diff(want, project(t, c, ProjectOptions{})); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_PrefersLinkText(t *testing.T) {
	c := Candidate{
		Headers: []string{"Player", "TD"},
		Rows: []Row{
			{{Text: "J. Allen Josh Allen QB", Link: "Josh Allen"}, {Text: "12"}},
		},
	}

	got := project(t, c, ProjectOptions{})
	if got[0][1] != "Josh Allen" {
		t.Errorf("player = %q, want link text", got[0][1])
	}
}

func TestProject_LimitsTwentyRowsInOrder(t *testing.T) {
	var rows [][]string
	for i := 1; i <= 25; i++ {
		rows = append(rows, []string{fmt.Sprintf("Player %02d", i), "WR", "BUF", fmt.Sprint(30 - i)})
	}
	c := NewCandidate([]string{"Player", "Pos", "Team", "TD"}, rows...)

	got := project(t, c, ProjectOptions{})
	if len(got) != DefaultLimit {
		t.Fatalf("Project() returned %d rows, want %d", len(got), DefaultLimit)
	}
	for i, r := range got {
		if r[0] != fmt.Sprint(i+1) {
			t.Errorf("row %d rank = %s, want %d", i, r[0], i+1)
		}
		if want := fmt.Sprintf("Player %02d", i+1); r[1] != want {
			t.Errorf("row %d player = %s, want %s", i, r[1], want)
		}
	}
}

func TestProject_CustomLimit(t *testing.T) {
	c := NewCandidate([]string{"Player", "TD"},
		[]string{"A", "3"}, []string{"B", "2"}, []string{"C", "1"},
	)
	if got := project(t, c, ProjectOptions{Limit: 2}); len(got) != 2 {
		t.Errorf("Project() returned %d rows, want 2", len(got))
	}
}

func TestProject_SortByMetric(t *testing.T) {
	c := NewCandidate([]string{"Player", "TD"},
		[]string{"Low", "3"},
		[]string{"High", "11"},
		[]string{"TiedFirst", "7"},
		[]string{"Unknown", "n/a"},
		[]string{"TiedSecond", "7"},
		[]string{"Thousands", "1,200"},
	)

	got := project(t, c, ProjectOptions{SortByMetric: true})
	want := [][]string{
		{"1", "Thousands", "-", "-", "1,200"},
		{"2", "High", "-", "-", "11"},
		{"3", "TiedFirst", "-", "-", "7"},
		{"4", "TiedSecond", "-", "-", "7"},
		{"5", "Low", "-", "-", "3"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Project() mismatch (-want +got):\n%s", diff)
	}
}

func TestProject_SortByMetricTruncatesAfterSorting(t *testing.T) {
	var rows [][]string
	for i := 1; i <= 25; i++ {
		rows = append(rows, []string{fmt.Sprintf("P%d", i), fmt.Sprint(i)})
	}
	c := NewCandidate([]string{"Player", "TD"}, rows...)

	got := project(t, c, ProjectOptions{SortByMetric: true})
	if len(got) != DefaultLimit {
		t.Fatalf("Project() returned %d rows, want %d", len(got), DefaultLimit)
	}
	if got[0][1] != "P25" || got[19][1] != "P6" {
		t.Errorf("unexpected order: first %s, last %s", got[0][1], got[19][1])
	}
}

func TestExtract(t *testing.T) {
	cands := []Candidate{
		NewCandidate([]string{"Player", "Pos", "TD"}, []string{"Aubrey", "K", "0"}),
		NewCandidate([]string{"Player", "Pos", "TD"}, []string{"Henry", "RB", "16"}, []string{"Chase", "WR", "17"}),
	}

	got, err := Extract(slices.Values(cands), touchdownSig, ProjectOptions{})
	if err != nil {
		t.Fatalf("Extract() unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Values[0] != "Henry" {
		t.Errorf("Extract() = %+v, want rows from the non-kicker table", got)
	}
}

func TestExtract_RequiredColumnMissing(t *testing.T) {
	strict := touchdownSig
	strict.Required = []string{"team"}

	cands := []Candidate{NewCandidate([]string{"Player", "TD"}, []string{"Henry", "16"})}
	_, err := Extract(slices.Values(cands), strict, ProjectOptions{})
	if !errors.Is(err, ErrColumnMisalignment) {
		t.Errorf("Extract() error = %v, want ErrColumnMisalignment", err)
	}
}

func TestSignature_Labels(t *testing.T) {
	want := []string{"Rank", "Player", "Position", "Team", "TDs"}
	if diff := cmp.Diff(want, touchdownSig.Labels()); diff != "" {
		t.Errorf("Labels() mismatch (-want +got):\n%s", diff)
	}
}
