package reader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/countyq/schema"
)

const maxLegacyLine = 1 << 20

// readLegacy reads county records the way the fixed-capacity loader
// tokenized them: every comma separates tokens, empty tokens are dropped,
// and each token loses one pair of surrounding quotes. A county name with a
// quoted comma therefore spills into the state column and shifts every
// later column by one; an empty cell shifts them back.
//
// Records keep Line zero so diagnostics report working-set positions.
func readLegacy(r io.Reader, opts Options) (*Dataset, error) {
	in, err := opts.decoder(r)
	if err != nil {
		return nil, err
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxLegacyLine)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("%w: read header: %v", ErrEmptyInput, err)
		}
		return nil, ErrEmptyInput
	}

	ds := &Dataset{}
	skipFirst := opts.SkipFirstRecord
	line := 1

	for sc.Scan() {
		line++
		if skipFirst {
			skipFirst = false
			continue
		}
		if opts.MaxRecords > 0 && len(ds.Records) >= opts.MaxRecords {
			ds.Truncated = true
			break
		}

		var rec schema.Record
		ds.Coerced += fill(&rec, splitLegacy(sc.Text()), line, opts)
		ds.Records = append(ds.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read line %d: %w", line+1, err)
	}

	return ds, nil
}

// splitLegacy splits line on commas and drops empty tokens.
func splitLegacy(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	return strings.FieldsFunc(line, func(c rune) bool { return c == ',' })
}
