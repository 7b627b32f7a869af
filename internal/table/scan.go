package table

import (
	"iter"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"
)

// DefaultSelector matches every table in a document
const DefaultSelector = "table"

// Scan yields one Candidate per table matching selector, in document order.
//
// Headers come from the last row of the table's thead when it has one,
// otherwise from the first row, which is then left out of the body. Rows of nested tables
// belong to the nested table only.
func Scan(doc *goquery.Document, selector string) iter.Seq[Candidate] {
	if selector == "" {
		selector = DefaultSelector
	}

	return func(yield func(Candidate) bool) {
		doc.Find(selector).EachWithBreak(func(i int, tbl *goquery.Selection) bool {
			return yield(scanTable(i, tbl))
		})
	}
}

// Collect drains a candidate sequence into a slice
func Collect(seq iter.Seq[Candidate]) []Candidate {
	var out []Candidate
	for c := range seq {
		out = append(out, c)
	}
	return out
}

func scanTable(index int, tbl *goquery.Selection) Candidate {
	c := Candidate{Index: index, Headers: []string{}, Rows: []Row{}}

	rows := ownRows(tbl)

	thead := tbl.ChildrenFiltered("thead").First()
	if thead.Length() > 0 {
		c.Headers = headerLabels(thead)
		for _, tr := range rows {
			if tr.Parent().Is("thead") {
				continue
			}
			c.Rows = append(c.Rows, rowCells(tr))
		}
		return c
	}

	if len(rows) == 0 {
		return c
	}

	for _, cell := range rowCells(rows[0]) {
		c.Headers = append(c.Headers, cell.Text)
	}
	for _, tr := range rows[1:] {
		c.Rows = append(c.Rows, rowCells(tr))
	}
	return c
}

// headerLabels returns the labels of the last thead row holding cells.
// Rows above it group columns ("Passing", "Rushing") and are dropped; a
// label spanning several columns is repeated once per column.
func headerLabels(thead *goquery.Selection) []string {
	labels := []string{}

	rows := thead.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.ChildrenFiltered("th, td").Length() > 0
	})
	if rows.Length() == 0 {
		return labels
	}

	rows.Last().ChildrenFiltered("th, td").Each(func(_ int, cell *goquery.Selection) {
		label := cellText(cell)
		for range colspan(cell) {
			labels = append(labels, label)
		}
	})
	return labels
}

// maxColspan is the largest span browsers honour
const maxColspan = 1000

func colspan(cell *goquery.Selection) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell.AttrOr("colspan", "1")))
	if err != nil || n < 1 {
		return 1
	}
	return min(n, maxColspan)
}

// ownRows returns the tr elements whose closest table is tbl
func ownRows(tbl *goquery.Selection) []*goquery.Selection {
	owner := tbl.Get(0)

	var rows []*goquery.Selection
	tbl.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.Closest("table").Get(0) == owner {
			rows = append(rows, tr)
		}
	})
	return rows
}

func rowCells(tr *goquery.Selection) Row {
	cells := tr.ChildrenFiltered("th, td")
	row := make(Row, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		row = append(row, Cell{
			Text: cellText(cell),
			Link: cellText(cell.Find("a").First()),
		})
	})
	return row
}

// cellText joins the trimmed text nodes under sel with single spaces.
// Script and style contents are ignored.
func cellText(sel *goquery.Selection) string {
	var parts []string
	for _, n := range sel.Nodes {
		collectText(n, &parts)
	}
	return normalizeText(strings.Join(parts, " "))
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, parts)
	}
}

// normalizeText folds compatibility characters (non-breaking spaces,
// full-width digits) and collapses runs of whitespace.
func normalizeText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}
