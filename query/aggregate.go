package query

import (
	"fmt"

	"github.com/vegasq/countyq/schema"
)

// TotalPopulation sums the 2014 population of set. Records with a negative
// population are skipped with a NoticeInvalidPopulation notice.
func TotalPopulation(set schema.WorkingSet, notify Notifier) int64 {
	var total int64
	for i, r := range set {
		if r.Population2014 < 0 {
			notify.notify(Notice{Kind: NoticeInvalidPopulation, Line: noticeLine(r, i)})
			continue
		}
		total += int64(r.Population2014)
	}
	return total
}

// SubPopulation sums, over set, the part of each county's population that the
// percentage field describes.
//
// The field is resolved in reg (schema.Default when nil); anything but a
// registered percentage field yields ErrUnsupportedAggregate. Records with a
// negative population or a percentage outside [0,100] (NaN included) are
// skipped with a notice. Each county contributes pct/100*population computed
// in single precision and truncated toward zero.
func SubPopulation(set schema.WorkingSet, reg *schema.Registry, field string, notify Notifier) (int64, error) {
	if reg == nil {
		reg = schema.Default
	}
	d, err := reg.ResolveAggregate(field)
	if err != nil {
		return 0, fmt.Errorf("%w '%s': %v", ErrUnsupportedAggregate, field, err)
	}

	var total int64
	for i, r := range set {
		if r.Population2014 < 0 {
			notify.notify(Notice{Kind: NoticeInvalidPopulation, Line: noticeLine(r, i)})
			continue
		}
		pct := d.Float(r)
		if !(pct >= 0 && pct <= 100) {
			notify.notify(Notice{Kind: NoticeInvalidPercentage, Line: noticeLine(r, i), Field: d.Name})
			continue
		}
		total += int64(pct / 100 * float32(r.Population2014))
	}
	return total, nil
}

// Percentage derives 100*sub/total. A zero total is not guarded: the result
// is NaN when sub is also zero and ±Inf otherwise.
func Percentage(total, sub int64) float64 {
	return float64(sub) / float64(total) * 100
}
