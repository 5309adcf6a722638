package query

import (
	"fmt"

	"github.com/vegasq/countyq/schema"
)

// FilterByState returns the records of set whose state equals abbr exactly.
// Order is preserved.
func FilterByState(set schema.WorkingSet, abbr string) schema.WorkingSet {
	filtered := make(schema.WorkingSet, 0, len(set))
	for _, r := range set {
		if r.State == abbr {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// FilterByField returns the records of set whose field compares to threshold
// with cmp, in input order.
//
// The field is resolved in reg (schema.Default when nil). An unknown name
// yields ErrUnsupportedField and set is returned unchanged. Per field kind:
//
//   - text fields cannot be compared: every record is dropped with a
//     NoticeNonNumericField notice
//   - percentage fields compare in single precision; negative values mark
//     missing data and the record is dropped with a NoticeInvalidValue notice
//   - count and population fields compare as integers against the threshold
//     truncated toward zero
//
// Comparators other than ge and le match nothing.
func FilterByField(set schema.WorkingSet, reg *schema.Registry, field string, cmp Comparator, threshold float32, notify Notifier) (schema.WorkingSet, error) {
	if reg == nil {
		reg = schema.Default
	}
	d, err := reg.ResolveNumeric(field)
	if err != nil {
		return set, fmt.Errorf("%w: '%s'", ErrUnsupportedField, field)
	}

	filtered := make(schema.WorkingSet, 0, len(set))
	intThreshold := int32(threshold)

	for i, r := range set {
		var match bool

		switch d.Kind {
		case schema.KindText:
			notify.notify(Notice{Kind: NoticeNonNumericField, Line: noticeLine(r, i), Field: d.Name})
			continue
		case schema.KindPercentage:
			v := d.Float(r)
			if v < 0 {
				notify.notify(Notice{Kind: NoticeInvalidValue, Line: noticeLine(r, i), Field: d.Name})
				continue
			}
			match = cmp.matchFloat(v, threshold)
		default:
			match = cmp.matchInt(d.Int(r), intThreshold)
		}

		if match {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}
