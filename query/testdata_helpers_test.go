package query

import (
	"fmt"

	"github.com/vegasq/countyq/schema"
)

// county builds a record with the fields the pipeline tests look at.
func county(name, state string, asian, hispanic, bachelors float32, median, population int32) schema.Record {
	return schema.Record{
		County:                     name,
		State:                      state,
		EthnicityAsian:             asian,
		EthnicityHispanic:          hispanic,
		EducationBachelorsOrHigher: bachelors,
		MedianHouseholdIncome:      median,
		Population2014:             population,
	}
}

// fixtureSet returns three California counties and one Oregon county. Yolo
// carries a missing (negative) Asian share.
func fixtureSet() schema.WorkingSet {
	return schema.WorkingSet{
		county("Alameda County", "CA", 30, 20, 45, 70000, 1000),
		county("Kern County", "CA", 5, 50, 15, 45000, 2000),
		county("Multnomah County", "OR", 7.5, 12.5, 40, 55000, 800),
		county("Yolo County", "CA", -1, 30, 41, 60000, 400),
	}
}

func countyNames(set schema.WorkingSet) []string {
	names := make([]string, len(set))
	for i, r := range set {
		names[i] = r.County
	}
	return names
}

// recordingSink captures everything an Executor emits, in order.
type recordingSink struct {
	events     []string
	results    []Result
	notices    []Notice
	displayed  []schema.WorkingSet
	displayErr error
}

func (s *recordingSink) Display(set schema.WorkingSet) error {
	s.events = append(s.events, fmt.Sprintf("display %d", len(set)))
	s.displayed = append(s.displayed, set.Clone())
	return s.displayErr
}

func (s *recordingSink) Report(r Result) error {
	s.events = append(s.events, "report "+r.Op.String())
	s.results = append(s.results, r)
	return nil
}

func (s *recordingSink) Notice(n Notice) {
	s.events = append(s.events, fmt.Sprintf("notice %d line %d", int(n.Kind), n.Line))
	s.notices = append(s.notices, n)
}

// collect returns a Notifier that appends to dst.
func collect(dst *[]Notice) Notifier {
	return func(n Notice) {
		*dst = append(*dst, n)
	}
}
