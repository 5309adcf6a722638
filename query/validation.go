package query

import (
	"errors"
	"fmt"
)

// Operation token limits.
const (
	// MaxFieldNameLength is the longest field name a filter token may carry.
	MaxFieldNameLength = 99

	// MaxComparatorLength is the longest comparator a filter token may carry.
	MaxComparatorLength = 2
)

var (
	// ErrMalformedFilter is returned when a filter token does not match
	// filter:<field>:<ge|le>:<value>. It aborts the pipeline.
	ErrMalformedFilter = errors.New("invalid filter operation format")

	// ErrUnknownOperation is returned for an unrecognized token. It aborts the
	// pipeline.
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrUnsupportedAggregate is returned when a population or percent
	// operation names a field that is not a registered percentage. It aborts
	// the pipeline.
	ErrUnsupportedAggregate = errors.New("invalid field")

	// ErrUnsupportedField is returned when a threshold filter names an
	// unregistered field. The filter is skipped and the pipeline continues.
	ErrUnsupportedField = errors.New("unsupported field")
)

// IsFatal reports whether err aborts a pipeline run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrMalformedFilter) ||
		errors.Is(err, ErrUnknownOperation) ||
		errors.Is(err, ErrUnsupportedAggregate)
}

// ValidateFieldName checks the length limit of a filter field name.
func ValidateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty field name", ErrMalformedFilter)
	}
	if len(name) > MaxFieldNameLength {
		return fmt.Errorf("%w: field name of %d chars (max %d)", ErrMalformedFilter, len(name), MaxFieldNameLength)
	}
	return nil
}
