package output

import (
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/schema"
)

// ErrUnsupportedFormat is returned by New for an unknown format name.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formats lists the names accepted by New.
var Formats = []string{"text", "table", "json", "csv"}

// Formatter renders the output of a pipeline run.
//
// Implementers receive the working set for display operations, one Result
// per filter or aggregate and every recoverable notice, in pipeline order.
type Formatter interface {
	query.Sink

	// Loaded reports how many records ingestion produced.
	Loaded(n int) error

	// SetOutput changes the writer for reports.
	SetOutput(w io.Writer)

	// SetErrorOutput changes the writer for error-level notices.
	SetErrorOutput(w io.Writer)
}

// New returns the formatter for format writing to w.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTextFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	case "json", "jsonl":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnsupportedFormat, format)
	}
}

// recordHeader returns the registry field names in declaration order.
func recordHeader() []string {
	return schema.Default.Names()
}

// recordValues returns r's values in recordHeader order.
func recordValues(r schema.Record) []interface{} {
	fields := schema.Default.Fields()
	values := make([]interface{}, len(fields))
	for i, d := range fields {
		switch {
		case d.Text != nil:
			values[i] = d.Text(r)
		case d.Float != nil:
			values[i] = d.Float(r)
		case d.Int != nil:
			values[i] = d.Int(r)
		}
	}
	return values
}
