// Package output renders pipeline results for the console and for tools.
//
// Every formatter satisfies query.Sink, so an Executor writes to it directly,
// and adds Loaded for the ingestion summary.
//
// # Supported Formats
//
//   - text: the line-oriented report, one summary line per operation
//   - table: records as an aligned table, summaries as text
//   - json: JSON Lines, one event object per line
//   - csv: records as CSV with a header row, summaries on the error writer
//
// # Basic Usage
//
//	formatter, err := output.New("text", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	formatter.SetErrorOutput(os.Stderr)
//	_ = formatter.Loaded(len(records))
//	exec := query.NewExecutor(records, formatter)
//
// # Writing to a Buffer
//
//	var buf bytes.Buffer
//	formatter := output.NewTextFormatter(&buf)
//	_ = formatter.Report(query.Result{Op: query.OpPopulationTotal, Population: 42})
//	// buf.String() == "2014 population: 42\n"
//
// # Non-finite Values
//
// Percentages derived from an empty or zero population are NaN or infinite.
// The text formats print them as Go does ("NaN", "+Inf"). The JSON format
// moves them to the percent_text member because JSON numbers cannot carry
// them.
package output
