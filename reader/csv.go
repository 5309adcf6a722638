package reader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/vegasq/countyq/internal/numparse"
	"github.com/vegasq/countyq/schema"
)

// column binds a CSV column index to the Record field it fills. Conversion
// is lenient: a cell without a numeric prefix becomes zero.
type column struct {
	index int
	name  string
	set   func(r *schema.Record, cell string) bool
}

func textColumn(index int, name string, set func(*schema.Record, string)) column {
	return column{index: index, name: name, set: func(r *schema.Record, cell string) bool {
		set(r, cell)
		return true
	}}
}

func floatColumn(index int, name string, set func(*schema.Record, float32)) column {
	return column{index: index, name: name, set: func(r *schema.Record, cell string) bool {
		v, ok := numparse.Float32(cell)
		set(r, v)
		return ok
	}}
}

func intColumn(index int, name string, set func(*schema.Record, int32)) column {
	return column{index: index, name: name, set: func(r *schema.Record, cell string) bool {
		v, ok := numparse.Int32(cell)
		set(r, v)
		return ok
	}}
}

// columns is the positional layout of the county demographics CSV. Columns
// not listed are ignored.
var columns = []column{
	textColumn(0, schema.FieldCounty, func(r *schema.Record, v string) { r.County = v }),
	textColumn(1, schema.FieldState, func(r *schema.Record, v string) { r.State = v }),
	floatColumn(5, schema.FieldEducationBachelors, func(r *schema.Record, v float32) { r.EducationBachelorsOrHigher = v }),
	floatColumn(6, schema.FieldEducationHighSchool, func(r *schema.Record, v float32) { r.EducationHighSchoolOrHigher = v }),
	floatColumn(11, schema.FieldEthnicityAmericanIndian, func(r *schema.Record, v float32) { r.EthnicityAmericanIndian = v }),
	floatColumn(12, schema.FieldEthnicityAsian, func(r *schema.Record, v float32) { r.EthnicityAsian = v }),
	floatColumn(13, schema.FieldEthnicityBlack, func(r *schema.Record, v float32) { r.EthnicityBlack = v }),
	floatColumn(14, schema.FieldEthnicityHispanic, func(r *schema.Record, v float32) { r.EthnicityHispanic = v }),
	floatColumn(15, schema.FieldEthnicityNativeHawaiian, func(r *schema.Record, v float32) { r.EthnicityNativeHawaiian = v }),
	floatColumn(16, schema.FieldEthnicityTwoOrMoreRaces, func(r *schema.Record, v float32) { r.EthnicityTwoOrMoreRaces = v }),
	floatColumn(17, schema.FieldEthnicityWhite, func(r *schema.Record, v float32) { r.EthnicityWhite = v }),
	floatColumn(18, schema.FieldEthnicityWhiteNotHispanic, func(r *schema.Record, v float32) { r.EthnicityWhiteNotHispanic = v }),
	intColumn(25, schema.FieldIncomeMedianHousehold, func(r *schema.Record, v int32) { r.MedianHouseholdIncome = v }),
	intColumn(26, schema.FieldIncomePerCapita, func(r *schema.Record, v int32) { r.PerCapitaIncome = v }),
	floatColumn(27, schema.FieldIncomeBelowPovertyLevel, func(r *schema.Record, v float32) { r.PersonsBelowPovertyLevel = v }),
	intColumn(38, schema.FieldPopulation2014, func(r *schema.Record, v int32) { r.Population2014 = v }),
}

// ReadCSV reads county records from comma-separated input.
//
// The first line is a header and is always skipped. Cells are mapped by
// position; a cell still wrapped in one pair of double quotes after CSV
// decoding has them stripped. Rows shorter than a mapped column leave that
// field at its zero value. Rows the CSV decoder rejects are skipped and
// counted. Options.LegacyTokenizer switches to the comma-splitting
// tokenizer of readLegacy.
func ReadCSV(r io.Reader, opts Options) (*Dataset, error) {
	if opts.LegacyTokenizer {
		return readLegacy(r, opts)
	}
	log := opts.logger()

	in, err := opts.decoder(r)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(in)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyInput
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrEmptyInput, err)
	}

	ds := &Dataset{}
	skipFirst := opts.SkipFirstRecord

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			ds.Skipped++
			log.Warn("skipping malformed row", "error", err)
			continue
		}
		if skipFirst {
			skipFirst = false
			continue
		}
		if opts.MaxRecords > 0 && len(ds.Records) >= opts.MaxRecords {
			ds.Truncated = true
			break
		}

		line, _ := cr.FieldPos(0)
		rec := schema.Record{Line: line}
		ds.Coerced += fill(&rec, row, line, opts)
		ds.Records = append(ds.Records, rec)
	}

	return ds, nil
}

// fill maps row onto rec by position and returns the number of numeric cells
// that converted leniently. line is used for diagnostics only.
func fill(rec *schema.Record, row []string, line int, opts Options) int {
	coerced := 0
	for _, col := range columns {
		if col.index >= len(row) {
			continue
		}
		cell := trimQuotes(row[col.index])
		if col.set(rec, cell) {
			continue
		}
		coerced++
		if opts.WarnNumeric {
			opts.logger().Warn("numeric cell converted leniently",
				"line", line,
				"column", col.index,
				"field", col.name,
				"value", cell,
			)
		}
	}
	return coerced
}

// trimQuotes removes one surrounding pair of double quotes.
func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
