package cli

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pfrederiksen/statscrape/internal/scraper"
	"github.com/pfrederiksen/statscrape/internal/table"
)

// candidateReport summarises how one table scored
type candidateReport struct {
	Index    int
	Headers  []string
	Rows     int
	Score    int
	Selected bool
}

// inspectTarget pairs a signature with the headers its source expects
type inspectTarget struct {
	sig     table.Signature
	headers map[string]string
}

func (a *app) inspectTargets() map[string]inspectTarget {
	return map[string]inspectTarget{
		"touchdowns": {sig: scraper.TouchdownSignature, headers: a.cfg.Touchdowns.Headers},
		"superbowl":  {sig: scraper.SuperBowlSignature, headers: a.cfg.SuperBowl.Headers},
	}
}

func (a *app) newInspectCmd() *cobra.Command {
	var (
		signature string
		selector  string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "inspect URL",
		Short: "Show how every table on a page scores against a signature",
		Long: `Fetch a page, scan each of its tables and print the headers, body row count
and score of every candidate. The table a scraper would pick is marked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, ok := a.inspectTargets()[strings.ToLower(signature)]
			if !ok {
				return fmt.Errorf("unknown signature: %s (must be 'touchdowns' or 'superbowl')", signature)
			}

			order := SortOrder(strings.ToLower(sortOrder))
			if order != SortByIndex && order != SortByScore {
				return fmt.Errorf("invalid sort: %s (must be 'index' or 'score')", sortOrder)
			}

			data, err := a.fetcher(target.headers).Get(cmd.Context(), args[0], nil)
			if err != nil {
				return err
			}
			doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("parsing HTML: %w", err)
			}

			reports := inspectCandidates(table.Collect(table.Scan(doc, selector)), target.sig)
			sortReports(reports, order)
			renderReports(cmd.OutOrStdout(), reports)
			return nil
		},
	}

	cmd.Flags().StringVar(&signature, "signature", "touchdowns", "Signature to score against: touchdowns or superbowl")
	cmd.Flags().StringVar(&selector, "selector", table.DefaultSelector, "CSS selector for candidate tables")
	cmd.Flags().StringVar(&sortOrder, "sort", string(SortByIndex), "Sort order: index or score")

	return cmd
}

// inspectCandidates scores every candidate and marks the one Select picks
func inspectCandidates(cands []table.Candidate, sig table.Signature) []candidateReport {
	selected := -1
	if best, _, err := table.Select(slices.Values(cands), sig); err == nil {
		selected = best.Index
	}

	reports := make([]candidateReport, 0, len(cands))
	for _, c := range cands {
		reports = append(reports, candidateReport{
			Index:    c.Index,
			Headers:  c.Headers,
			Rows:     len(c.Rows),
			Score:    table.Score(c, sig),
			Selected: c.Index == selected,
		})
	}
	return reports
}

func renderReports(w io.Writer, reports []candidateReport) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No tables matched the selector.")
		return
	}

	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(prettytable.Row{"#", "Headers", "Rows", "Score", "Selected"})

	for _, r := range reports {
		mark := ""
		if r.Selected {
			mark = "*"
		}
		t.AppendRow(prettytable.Row{r.Index, strings.Join(r.Headers, " | "), r.Rows, r.Score, mark})
	}

	t.SetColumnConfigs([]prettytable.ColumnConfig{{Number: 2, WidthMax: 72}})
	t.SetStyle(prettytable.StyleRounded)
	t.Render()
}
