package query

import (
	"fmt"

	"github.com/vegasq/countyq/schema"
)

// OpKind identifies a pipeline operation.
type OpKind int

const (
	OpDisplay OpKind = iota
	OpFilterState
	OpFilterField
	OpPopulationTotal
	OpPopulation
	OpPercent
)

func (k OpKind) String() string {
	switch k {
	case OpDisplay:
		return "display"
	case OpFilterState:
		return "filter-state"
	case OpFilterField:
		return "filter"
	case OpPopulationTotal:
		return "population-total"
	case OpPopulation:
		return "population"
	case OpPercent:
		return "percent"
	default:
		return fmt.Sprintf("OpKind(%d)", int(k))
	}
}

// Comparator is the comparison token of a threshold filter.
type Comparator string

const (
	CompareGE Comparator = "ge"
	CompareLE Comparator = "le"
)

// matchFloat compares in single precision. Unknown comparators never match.
func (c Comparator) matchFloat(v, threshold float32) bool {
	switch c {
	case CompareGE:
		return v >= threshold
	case CompareLE:
		return v <= threshold
	default:
		return false
	}
}

func (c Comparator) matchInt(v, threshold int32) bool {
	switch c {
	case CompareGE:
		return v >= threshold
	case CompareLE:
		return v <= threshold
	default:
		return false
	}
}

// Operation is one parsed pipeline step.
type Operation struct {
	Kind       OpKind
	State      string     // OpFilterState
	Field      string     // OpFilterField, OpPopulation, OpPercent
	Comparator Comparator // OpFilterField
	Threshold  float32    // OpFilterField
	Token      string     // the raw token the operation was parsed from
}

// NoticeKind classifies a recoverable diagnostic.
type NoticeKind int

const (
	// NoticeInvalidValue: a record's value violates the field's domain and
	// the record is dropped from the filter result.
	NoticeInvalidValue NoticeKind = iota
	// NoticeNonNumericField: a threshold filter named a text field.
	NoticeNonNumericField
	// NoticeInvalidPopulation: a record with a negative population is
	// skipped by an aggregate.
	NoticeInvalidPopulation
	// NoticeInvalidPercentage: a record whose percentage is outside [0,100]
	// is skipped by an aggregate.
	NoticeInvalidPercentage
	// NoticeUnsupportedField: a threshold filter named an unknown field and
	// was not applied.
	NoticeUnsupportedField
)

// Notice is a recoverable, per-record or per-operation diagnostic.
type Notice struct {
	Kind  NoticeKind
	Line  int
	Field string
}

// Notifier receives notices as they are produced. A nil Notifier discards
// them.
type Notifier func(Notice)

func (n Notifier) notify(notice Notice) {
	if n != nil {
		n(notice)
	}
}

// Result is the summary produced by a filter or aggregate operation.
type Result struct {
	Op         OpKind
	State      string
	Field      string
	Comparator Comparator
	Threshold  float32

	// Count is the working set size after a filter.
	Count int
	// Population is the total or sub-population of an aggregate.
	Population int64
	// Percent is the derived percentage of OpPercent.
	Percent float64
}

// Sink consumes the output of a pipeline run.
type Sink interface {
	Display(set schema.WorkingSet) error
	Report(r Result) error
	Notice(n Notice)
}

// noticeLine is the line reported for the record at position i of a working
// set: its source line when known, otherwise the position offset past the
// header row.
func noticeLine(r schema.Record, i int) int {
	if r.Line > 0 {
		return r.Line
	}
	return i + 2
}
