package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/instclass/classify"
)

const anonymousFunction = "<sequence>"

// WriteTable renders the summary as a table with one row per function and a
// footer of totals.
func (s *Summary) WriteTable(w io.Writer) error {
	t := table.NewWriter()
	t.SetTitle("Instruction categories")

	header := table.Row{"Function"}
	for _, c := range classify.Categories() {
		header = append(header, c.String())
	}
	header = append(header, "Total")
	t.AppendHeader(header)

	for _, r := range s.rows {
		name := r.Function
		if name == "" {
			name = anonymousFunction
		}

		row := table.Row{name}
		for _, n := range r.Counts {
			row = append(row, n)
		}
		row = append(row, r.Total)
		t.AppendRow(row)
	}

	footer := table.Row{"Total"}
	for _, n := range s.totals {
		footer = append(footer, n)
	}
	footer = append(footer, s.Total())
	t.AppendFooter(footer)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
