package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/schema"
)

// tableColumns are the short headers of the display table, in recordValues
// order.
var tableColumns = []string{
	"County", "State", "HS%", "Bach%",
	"AmInd%", "Asian%", "Black%", "Hisp%", "NHPI%", "Multi%", "White%", "WhiteNH%",
	"Median HH", "Per Capita", "Poverty%", "Pop 2014",
}

// TableFormatter renders displayed records as an aligned table. Summaries and
// notices use the text wording.
type TableFormatter struct {
	*TextFormatter
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{TextFormatter: NewTextFormatter(w), writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
	t.TextFormatter.SetOutput(w)
}

// Display renders set as a table.
func (t *TableFormatter) Display(set schema.WorkingSet) error {
	table := tablewriter.NewWriter(t.writer)
	table.SetHeader(tableColumns)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, rec := range set {
		values := recordValues(rec)
		row := make([]string, len(values))
		for i, v := range values {
			if s, ok := v.(string); ok {
				row[i] = s
				continue
			}
			row[i] = formatValue(v)
		}
		table.Append(row)
	}
	table.SetFooter(footer(len(set)))
	table.Render()
	return nil
}

func footer(n int) []string {
	out := make([]string, len(tableColumns))
	out[0] = "Total"
	out[1] = formatValue(n)
	return out
}

var _ query.Sink = (*TableFormatter)(nil)
