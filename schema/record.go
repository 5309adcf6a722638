// Package schema defines the county record shape and the registry of named,
// queryable fields.
//
// Every field that an operation can name is described by a Descriptor: how to
// read it from a Record, what kind of value it holds and which validity rule
// applies to it. Filtering and aggregation look fields up by exact name; an
// unknown name is always an error at the point of use.
package schema

// Record is one county row of the demographics dataset.
//
// Percentages are stored as float32 and counts as int32 so that threshold
// comparisons and sub-population truncation behave exactly like the
// single-precision arithmetic used to produce published reports.
type Record struct {
	County string `json:"county" parquet:"county"`
	State  string `json:"state" parquet:"state"`

	EducationHighSchoolOrHigher float32 `json:"education_high_school_or_higher" parquet:"education_high_school_or_higher"`
	EducationBachelorsOrHigher  float32 `json:"education_bachelors_or_higher" parquet:"education_bachelors_or_higher"`

	EthnicityAmericanIndian   float32 `json:"ethnicity_american_indian_and_alaska_native" parquet:"ethnicity_american_indian_and_alaska_native"`
	EthnicityAsian            float32 `json:"ethnicity_asian" parquet:"ethnicity_asian"`
	EthnicityBlack            float32 `json:"ethnicity_black" parquet:"ethnicity_black"`
	EthnicityHispanic         float32 `json:"ethnicity_hispanic" parquet:"ethnicity_hispanic"`
	EthnicityNativeHawaiian   float32 `json:"ethnicity_native_hawaiian_and_other_pacific_islander" parquet:"ethnicity_native_hawaiian_and_other_pacific_islander"`
	EthnicityTwoOrMoreRaces   float32 `json:"ethnicity_two_or_more_races" parquet:"ethnicity_two_or_more_races"`
	EthnicityWhite            float32 `json:"ethnicity_white" parquet:"ethnicity_white"`
	EthnicityWhiteNotHispanic float32 `json:"ethnicity_white_not_hispanic" parquet:"ethnicity_white_not_hispanic"`
	MedianHouseholdIncome     int32   `json:"median_household_income" parquet:"median_household_income"`
	PerCapitaIncome           int32   `json:"per_capita_income" parquet:"per_capita_income"`
	PersonsBelowPovertyLevel  float32 `json:"persons_below_poverty_level" parquet:"persons_below_poverty_level"`
	Population2014            int32   `json:"population_2014" parquet:"population_2014"`

	// Line is the 1-based source line the record was read from, or 0 when
	// the source has no notion of lines.
	Line int `json:"-" parquet:"-"`
}

// WorkingSet is the ordered sequence of records that the next operation of a
// pipeline observes. Filters replace it with an order-preserving subsequence.
type WorkingSet []Record

// Len returns the number of records in the set.
func (ws WorkingSet) Len() int {
	return len(ws)
}

// Clone returns a copy of ws that does not share its backing array.
func (ws WorkingSet) Clone() WorkingSet {
	if ws == nil {
		return nil
	}
	out := make(WorkingSet, len(ws))
	copy(out, ws)
	return out
}
