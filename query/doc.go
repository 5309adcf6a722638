// Package query is the in-memory query engine for county records.
//
// It provides the two filters (state equality and field threshold), the
// population aggregates (total, percentage-weighted sub-population and the
// derived percentage) and the Executor that runs a sequence of command-line
// operation tokens against one working set.
//
// # Operations
//
//	display                          report every record of the working set
//	filter-state:<ABBR>              keep records whose state equals ABBR
//	filter:<field>:<ge|le>:<value>   keep records whose field compares to value
//	population-total                 report the summed population
//	population:<field>               report the population described by a percentage field
//	percent:<field>                  report total, sub-population and their ratio
//
// Filters replace the working set; the other operations read it.
//
// # Errors
//
// Per-record problems (negative values, percentages outside [0,100], threshold
// filters on text fields) and filters naming an unknown field are reported as
// Notices and the run continues. A malformed filter token, an unknown
// operation token or an aggregate over anything but a percentage field abort
// the run; see IsFatal.
//
// # Example
//
//	exec := query.NewExecutor(records, sink)
//	if err := exec.Run(ctx, []string{"filter-state:CA", "population-total"}); err != nil {
//	    log.Fatal(err)
//	}
package query
