package query

import (
	"fmt"
	"strings"

	"github.com/vegasq/countyq/internal/numparse"
)

// Operation token prefixes.
const (
	tokenDisplay         = "display"
	tokenPopulationTotal = "population-total"
	prefixFilterState    = "filter-state:"
	prefixFilter         = "filter:"
	prefixPopulation     = "population:"
	prefixPercent        = "percent:"
)

// ParseOperation parses one command-line operation token.
//
// Recognized tokens:
//
//	display
//	filter-state:<ABBR>
//	filter:<field>:<ge|le>:<value>
//	population-total
//	population:<field>
//	percent:<field>
//
// A filter token that does not fit its grammar yields ErrMalformedFilter and
// any other unrecognized token yields ErrUnknownOperation. Field names are not
// resolved here.
func ParseOperation(token string) (Operation, error) {
	switch {
	case token == tokenDisplay:
		return Operation{Kind: OpDisplay, Token: token}, nil
	case strings.HasPrefix(token, prefixFilterState):
		return Operation{Kind: OpFilterState, State: token[len(prefixFilterState):], Token: token}, nil
	case strings.HasPrefix(token, prefixFilter):
		return parseFilter(token)
	case token == tokenPopulationTotal:
		return Operation{Kind: OpPopulationTotal, Token: token}, nil
	case strings.HasPrefix(token, prefixPopulation):
		return Operation{Kind: OpPopulation, Field: token[len(prefixPopulation):], Token: token}, nil
	case strings.HasPrefix(token, prefixPercent):
		return Operation{Kind: OpPercent, Field: token[len(prefixPercent):], Token: token}, nil
	default:
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, token)
	}
}

// ParseOperations parses every token, stopping at the first error.
func ParseOperations(tokens []string) ([]Operation, error) {
	ops := make([]Operation, 0, len(tokens))
	for _, tok := range tokens {
		op, err := ParseOperation(tok)
		if err != nil {
			return ops, err
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// parseFilter parses filter:<field>:<cmp>:<value>. The field runs to the first
// colon, the comparator is at most two non-space characters and the value is
// the leading numeric prefix of the remainder; trailing text after the number
// is ignored.
func parseFilter(token string) (Operation, error) {
	l := NewLexer(token[len(prefixFilter):])

	field := l.readUntil(':', MaxFieldNameLength+1)
	if err := ValidateFieldName(field); err != nil {
		return Operation{}, err
	}
	if !l.expect(':') {
		return Operation{}, fmt.Errorf("%w: missing comparator in %q", ErrMalformedFilter, token)
	}

	cmp := l.readWord(MaxComparatorLength)
	if cmp == "" || !l.expect(':') {
		return Operation{}, fmt.Errorf("%w: bad comparator in %q", ErrMalformedFilter, token)
	}

	prefix := numparse.FloatPrefix(l.rest())
	if prefix == "" {
		return Operation{}, fmt.Errorf("%w: missing numeric value in %q", ErrMalformedFilter, token)
	}
	v, _ := numparse.Float32(prefix)

	return Operation{
		Kind:       OpFilterField,
		Field:      field,
		Comparator: Comparator(cmp),
		Threshold:  v,
		Token:      token,
	}, nil
}
