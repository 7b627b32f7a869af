package cli

import (
	"bufio"
	"io"
	"strings"

	"github.com/pfrederiksen/statscrape/internal/scraper"
)

// separator joins the cells of an output line
const separator = ", "

// WriteLines writes the header line followed by one line per row.
// Cells are joined with ", " and never quoted.
func WriteLines(w io.Writer, res *scraper.Result) error {
	bw := bufio.NewWriter(w)

	writeLine(bw, res.Header)
	for _, row := range res.Rows {
		writeLine(bw, row)
	}

	return bw.Flush()
}

func writeLine(w *bufio.Writer, cells []string) {
	w.WriteString(strings.Join(cells, separator))
	w.WriteByte('\n')
}
