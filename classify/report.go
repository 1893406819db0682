package classify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format selects the layout of a report.
type Format int

const (
	// FormatPlain writes one "<label>: <count>" line per category.
	FormatPlain Format = iota
	// FormatPass writes the "  # <kind> operations: <count>" lines of the
	// legacy pass printer.
	FormatPass
	// FormatJSON writes a single JSON object.
	FormatJSON
)

var formatNames = map[Format]string{
	FormatPlain: "plain",
	FormatPass:  "pass",
	FormatJSON:  "json",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat looks up a report format by name.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if strings.EqualFold(n, name) {
			return f, nil
		}
	}
	return FormatPlain, fmt.Errorf("unknown report format %q", name)
}

// WriteReport writes the plain report: exactly one line per category, in
// category order, empty categories included.
func (r *Result) WriteReport(w io.Writer) error {
	return r.WriteReportFormat(w, FormatPlain)
}

// WriteReportFormat writes the report in the given format.
func (r *Result) WriteReportFormat(w io.Writer, f Format) error {
	switch f {
	case FormatPlain:
		return WriteCounts(w, r.Counts())
	case FormatPass:
		return writePass(w, r.Counts())
	case FormatJSON:
		return writeJSON(w, r.function, r.Counts())
	default:
		return fmt.Errorf("unknown report format %d", int(f))
	}
}

func (r *Result) String() string {
	var sb strings.Builder
	_ = r.WriteReport(&sb)
	return sb.String()
}

// SaveReportToFile writes the report to a file.
func (r *Result) SaveReportToFile(filename string, f Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := r.WriteReportFormat(file, f); err != nil {
		return err
	}

	return file.Close()
}

// WriteCounts writes counts in the plain layout. It is shared by everything
// that reports category counts, so the ten-line contract holds for
// aggregated totals too.
func WriteCounts(w io.Writer, counts [NumCategories]int) error {
	for c, n := range counts {
		if _, err := fmt.Fprintf(w, "%s: %d\n", Category(c), n); err != nil {
			return err
		}
	}
	return nil
}

func writePass(w io.Writer, counts [NumCategories]int) error {
	for c, n := range counts {
		_, err := fmt.Fprintf(w, "  # %s operations: %d\n", categoryDescriptions[c], n)
		if err != nil {
			return err
		}
	}
	return nil
}

// writeJSON emits the count keys in category order.
func writeJSON(w io.Writer, function string, counts [NumCategories]int) error {
	name, err := json.Marshal(function)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(`{"function":`)
	sb.Write(name)
	sb.WriteString(`,"counts":{`)
	for c, n := range counts {
		if c > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%q:%d", Category(c).String(), n)
	}
	sb.WriteString("}}\n")

	_, err = io.WriteString(w, sb.String())
	return err
}
