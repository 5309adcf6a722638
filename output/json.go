package output

import (
	"encoding/json"
	"io"
	"math"

	"github.com/vegasq/countyq/query"
	"github.com/vegasq/countyq/schema"
)

// JSONFormatter outputs events as JSON Lines format
type JSONFormatter struct {
	writer    io.Writer
	errWriter io.Writer
}

// NewJSONFormatter creates a new JSON Lines formatter
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w, errWriter: w}
}

// SetOutput sets the output writer
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// SetErrorOutput sets the writer for error notices
func (j *JSONFormatter) SetErrorOutput(w io.Writer) {
	j.errWriter = w
}

type loadedEvent struct {
	Event   string `json:"event"`
	Records int    `json:"records"`
}

type recordEvent struct {
	Event  string     `json:"event"`
	Record jsonRecord `json:"record"`
}

// jsonFloat encodes NaN and infinities as the strings "NaN", "+Inf" and
// "-Inf". Finite values stay JSON numbers.
type jsonFloat float32

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if v := float64(f); !isFinite(v) {
		return json.Marshal(nonFiniteText(v))
	}
	return json.Marshal(float32(f))
}

func nonFiniteText(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	default:
		return "NaN"
	}
}

// jsonRecord mirrors the JSON shape of schema.Record with percentages that
// survive non-finite values.
type jsonRecord struct {
	County string `json:"county"`
	State  string `json:"state"`

	EducationHighSchoolOrHigher jsonFloat `json:"education_high_school_or_higher"`
	EducationBachelorsOrHigher  jsonFloat `json:"education_bachelors_or_higher"`

	EthnicityAmericanIndian   jsonFloat `json:"ethnicity_american_indian_and_alaska_native"`
	EthnicityAsian            jsonFloat `json:"ethnicity_asian"`
	EthnicityBlack            jsonFloat `json:"ethnicity_black"`
	EthnicityHispanic         jsonFloat `json:"ethnicity_hispanic"`
	EthnicityNativeHawaiian   jsonFloat `json:"ethnicity_native_hawaiian_and_other_pacific_islander"`
	EthnicityTwoOrMoreRaces   jsonFloat `json:"ethnicity_two_or_more_races"`
	EthnicityWhite            jsonFloat `json:"ethnicity_white"`
	EthnicityWhiteNotHispanic jsonFloat `json:"ethnicity_white_not_hispanic"`
	MedianHouseholdIncome     int32     `json:"median_household_income"`
	PerCapitaIncome           int32     `json:"per_capita_income"`
	PersonsBelowPovertyLevel  jsonFloat `json:"persons_below_poverty_level"`
	Population2014            int32     `json:"population_2014"`
}

func newJSONRecord(r schema.Record) jsonRecord {
	return jsonRecord{
		County:                      r.County,
		State:                       r.State,
		EducationHighSchoolOrHigher: jsonFloat(r.EducationHighSchoolOrHigher),
		EducationBachelorsOrHigher:  jsonFloat(r.EducationBachelorsOrHigher),
		EthnicityAmericanIndian:     jsonFloat(r.EthnicityAmericanIndian),
		EthnicityAsian:              jsonFloat(r.EthnicityAsian),
		EthnicityBlack:              jsonFloat(r.EthnicityBlack),
		EthnicityHispanic:           jsonFloat(r.EthnicityHispanic),
		EthnicityNativeHawaiian:     jsonFloat(r.EthnicityNativeHawaiian),
		EthnicityTwoOrMoreRaces:     jsonFloat(r.EthnicityTwoOrMoreRaces),
		EthnicityWhite:              jsonFloat(r.EthnicityWhite),
		EthnicityWhiteNotHispanic:   jsonFloat(r.EthnicityWhiteNotHispanic),
		MedianHouseholdIncome:       r.MedianHouseholdIncome,
		PerCapitaIncome:             r.PerCapitaIncome,
		PersonsBelowPovertyLevel:    jsonFloat(r.PersonsBelowPovertyLevel),
		Population2014:              r.Population2014,
	}
}

type resultEvent struct {
	Event      string   `json:"event"`
	State      string   `json:"state,omitempty"`
	Field      string   `json:"field,omitempty"`
	Comparator string   `json:"comparator,omitempty"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Count      *int     `json:"count,omitempty"`
	Population *int64   `json:"population,omitempty"`
	Percent    *float64 `json:"percent,omitempty"`

	// ThresholdText and PercentText carry NaN and infinite values, which
	// JSON numbers cannot represent.
	ThresholdText string `json:"threshold_text,omitempty"`
	PercentText   string `json:"percent_text,omitempty"`
}

type noticeEvent struct {
	Event   string `json:"event"`
	Kind    string `json:"kind"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Loaded writes a "loaded" event.
func (j *JSONFormatter) Loaded(n int) error {
	return json.NewEncoder(j.writer).Encode(loadedEvent{Event: "loaded", Records: n})
}

// Display writes one "record" event per record (one JSON object per line)
func (j *JSONFormatter) Display(set schema.WorkingSet) error {
	encoder := json.NewEncoder(j.writer)
	for _, rec := range set {
		if err := encoder.Encode(recordEvent{Event: "record", Record: newJSONRecord(rec)}); err != nil {
			return err
		}
	}
	return nil
}

// Report writes a result event named after the operation.
func (j *JSONFormatter) Report(r query.Result) error {
	ev := resultEvent{Event: r.Op.String(), State: r.State, Field: r.Field}
	switch r.Op {
	case query.OpFilterState:
		ev.Count = &r.Count
	case query.OpFilterField:
		ev.Comparator = string(r.Comparator)
		if threshold := float64(r.Threshold); isFinite(threshold) {
			ev.Threshold = &threshold
		} else {
			ev.ThresholdText = nonFiniteText(threshold)
		}
		ev.Count = &r.Count
	case query.OpPopulationTotal, query.OpPopulation:
		ev.Population = &r.Population
	case query.OpPercent:
		if isFinite(r.Percent) {
			ev.Percent = &r.Percent
		} else {
			ev.PercentText = nonFiniteText(r.Percent)
		}
	}
	return json.NewEncoder(j.writer).Encode(ev)
}

// Notice writes a "notice" event. Unsupported-field notices go to the error
// writer.
func (j *JSONFormatter) Notice(n query.Notice) {
	w := j.writer
	if n.Kind == query.NoticeUnsupportedField {
		w = j.errWriter
	}
	_ = json.NewEncoder(w).Encode(noticeEvent{
		Event:   "notice",
		Kind:    noticeKindName(n.Kind),
		Line:    n.Line,
		Field:   n.Field,
		Message: formatNotice(n),
	})
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func noticeKindName(k query.NoticeKind) string {
	switch k {
	case query.NoticeInvalidValue:
		return "invalid_value"
	case query.NoticeNonNumericField:
		return "non_numeric_field"
	case query.NoticeInvalidPopulation:
		return "invalid_population"
	case query.NoticeInvalidPercentage:
		return "invalid_percentage"
	case query.NoticeUnsupportedField:
		return "unsupported_field"
	default:
		return "unknown"
	}
}
