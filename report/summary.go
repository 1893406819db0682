// Package report folds the classification results of many functions into a
// summary and renders it.
//
// Classification itself never aggregates across functions; a Summary is the
// explicit fold a host performs when it wants module-wide numbers.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/instclass/classify"
)

// Row holds the counts of one function.
type Row struct {
	Function string
	Counts   [classify.NumCategories]int
	Total    int
}

// Summary accumulates per-function counts and their totals.
type Summary struct {
	rows   []Row
	totals [classify.NumCategories]int
}

// Summarize folds results into a new summary, keeping their order.
func Summarize(results ...*classify.Result) *Summary {
	s := &Summary{}
	for _, r := range results {
		s.Add(r)
	}
	return s
}

// Add folds one more result into the summary.
func (s *Summary) Add(res *classify.Result) {
	row := Row{
		Function: res.Function(),
		Counts:   res.Counts(),
		Total:    res.Total(),
	}

	for c, n := range row.Counts {
		s.totals[c] += n
	}
	s.rows = append(s.rows, row)
}

// Deliver adds a result. It lets a Summary collect results straight from a
// driver.
func (s *Summary) Deliver(res *classify.Result) error {
	s.Add(res)
	return nil
}

// Rows returns the per-function rows in the order they were added.
func (s *Summary) Rows() []Row {
	rows := make([]Row, len(s.rows))
	copy(rows, s.rows)
	return rows
}

// Totals returns the per-category totals over all rows.
func (s *Summary) Totals() [classify.NumCategories]int {
	return s.totals
}

// Total returns the number of instructions over all rows.
func (s *Summary) Total() int {
	n := 0
	for _, c := range s.totals {
		n += c
	}
	return n
}

// WriteTotals writes the totals in the plain ten-line layout.
func (s *Summary) WriteTotals(w io.Writer) error {
	return classify.WriteCounts(w, s.totals)
}

// SaveProfileToFile writes the pprof export of the summary to a file.
func (s *Summary) SaveProfileToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := s.WriteProfile(file); err != nil {
		return err
	}

	return file.Close()
}
