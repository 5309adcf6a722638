package output

import (
	"fmt"
	"io"

	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/schema"
)

const separator = "----------------------------------------------------------"

// TextFormatter writes the line-oriented console report.
type TextFormatter struct {
	writer    io.Writer
	errWriter io.Writer
}

// NewTextFormatter creates a new text formatter. Error notices go to w until
// SetErrorOutput is called.
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w, errWriter: w}
}

// SetOutput sets the output writer
func (t *TextFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// SetErrorOutput sets the writer for error notices
func (t *TextFormatter) SetErrorOutput(w io.Writer) {
	t.errWriter = w
}

// Loaded writes the ingestion summary.
func (t *TextFormatter) Loaded(n int) error {
	_, err := fmt.Fprintf(t.writer, "%d entries loaded successfully.\n", n)
	return err
}

// Display dumps every record of set.
func (t *TextFormatter) Display(set schema.WorkingSet) error {
	if _, err := fmt.Fprintf(t.writer, "Displaying County Data:\n%s\n", separator); err != nil {
		return err
	}
	for _, c := range set {
		_, err := fmt.Fprintf(t.writer,
			"County: %s, State: %s\n"+
				"  Education (High School or Higher): %.2f%%\n"+
				"  Education (Bachelors or Higher): %.2f%%\n"+
				"  Ethnicities:\n"+
				"    White: %.2f%%, Black: %.2f%%, Asian: %.2f%%, Hispanic: %.2f%%, Native Hawaiian:%.2f%%, White Alone:%.2f%%, American Indian:%.2f%%, Two or More Races:%.2f%%\n"+
				"  Income:\n"+
				"    Median Household: $%d, Per Capita: $%d, Below Poverty: %.2f%%\n"+
				"  Population (2014): %d\n"+
				"%s\n",
			c.County, c.State,
			c.EducationHighSchoolOrHigher,
			c.EducationBachelorsOrHigher,
			c.EthnicityWhite, c.EthnicityBlack, c.EthnicityAsian, c.EthnicityHispanic,
			c.EthnicityNativeHawaiian, c.EthnicityWhiteNotHispanic, c.EthnicityAmericanIndian, c.EthnicityTwoOrMoreRaces,
			c.MedianHouseholdIncome, c.PerCapitaIncome, c.PersonsBelowPovertyLevel,
			c.Population2014,
			separator,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Report writes the one-line summary of a filter or aggregate.
func (t *TextFormatter) Report(r query.Result) error {
	_, err := io.WriteString(t.writer, formatResult(r)+"\n")
	return err
}

// Notice writes a diagnostic. Unsupported-field notices go to the error
// writer.
func (t *TextFormatter) Notice(n query.Notice) {
	w := t.writer
	if n.Kind == query.NoticeUnsupportedField {
		w = t.errWriter
	}
	_, _ = io.WriteString(w, formatNotice(n)+"\n")
}

func formatResult(r query.Result) string {
	switch r.Op {
	case query.OpFilterState:
		return fmt.Sprintf("Filter: state == %s (%d entries)", r.State, r.Count)
	case query.OpFilterField:
		return fmt.Sprintf("Filter: %s %s %.2f (%d entries)", r.Field, r.Comparator, r.Threshold, r.Count)
	case query.OpPopulationTotal:
		return fmt.Sprintf("2014 population: %d", r.Population)
	case query.OpPopulation:
		return fmt.Sprintf("2014 %s population: %d", r.Field, r.Population)
	case query.OpPercent:
		return fmt.Sprintf("2014 %s percentage: %.2f%%", r.Field, r.Percent)
	default:
		return fmt.Sprintf("%s: %+v", r.Op, r)
	}
}

func formatNotice(n query.Notice) string {
	switch n.Kind {
	case query.NoticeInvalidValue:
		return fmt.Sprintf("Warning: Line %d contains invalid data and will be skipped.", n.Line)
	case query.NoticeNonNumericField:
		return fmt.Sprintf("Non-numeric values in field: %s (Line %d)", n.Field, n.Line)
	case query.NoticeInvalidPopulation:
		return fmt.Sprintf("Warning: Line %d contains invalid population data and will be skipped.", n.Line)
	case query.NoticeInvalidPercentage:
		return fmt.Sprintf("Warning: Line %d contains invalid percentage data for '%s' and will be skipped.", n.Line, n.Field)
	case query.NoticeUnsupportedField:
		return fmt.Sprintf("Error: Unsupported field '%s'", n.Field)
	default:
		return fmt.Sprintf("notice %d: line %d field %s", int(n.Kind), n.Line, n.Field)
	}
}
