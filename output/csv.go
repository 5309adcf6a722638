package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/schema"
)

// CSVFormatter outputs displayed records as CSV. Summaries and notices are
// written as text lines to the error writer so that the output stays a
// well-formed CSV document.
type CSVFormatter struct {
	writer io.Writer
	text   *TextFormatter
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w, text: NewTextFormatter(w)}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// SetErrorOutput sets the writer for summaries and notices
func (c *CSVFormatter) SetErrorOutput(w io.Writer) {
	c.text.SetOutput(w)
	c.text.SetErrorOutput(w)
}

// Loaded writes the ingestion summary to the error writer.
func (c *CSVFormatter) Loaded(n int) error {
	return c.text.Loaded(n)
}

// Report writes the result summary to the error writer.
func (c *CSVFormatter) Report(r query.Result) error {
	return c.text.Report(r)
}

// Notice writes the notice to the error writer.
func (c *CSVFormatter) Notice(n query.Notice) {
	c.text.Notice(n)
}

// Display writes set as CSV with a header row of field names.
func (c *CSVFormatter) Display(set schema.WorkingSet) error {
	csvWriter := csv.NewWriter(c.writer)

	if err := csvWriter.Write(recordHeader()); err != nil {
		return err
	}

	for _, rec := range set {
		values := recordValues(rec)
		row := make([]string, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	// Flush and check for errors
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		// Prefix characters that trigger formula execution in spreadsheets
		if len(val) > 0 {
			switch val[0] {
			case '=', '+', '-', '@', '\t', '\r', '\n', '|':
				return "'" + strings.ReplaceAll(val, "'", "''")
			}
		}
		return val
	case int32, int64, int:
		return fmt.Sprintf("%d", val)
	case float32:
		return fmt.Sprintf("%.2f", val)
	case float64:
		return fmt.Sprintf("%.2f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
