package report

import (
	"fmt"
	"io"

	"github.com/sarchlab/instclass/classify"
)

// WriteResults writes the report of every result in order. Plain and pass
// reports are preceded by a "== <function>" header line; JSON reports are
// written one object per line and carry the function name themselves.
func WriteResults(w io.Writer, results []*classify.Result, f classify.Format) error {
	for _, res := range results {
		if f != classify.FormatJSON {
			name := res.Function()
			if name == "" {
				name = anonymousFunction
			}
			if _, err := fmt.Fprintf(w, "== %s\n", name); err != nil {
				return err
			}
		}

		if err := res.WriteReportFormat(w, f); err != nil {
			return fmt.Errorf("failed to write report of function %s: %w",
				res.Function(), err)
		}
	}

	return nil
}
