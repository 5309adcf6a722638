package schema

import (
	"errors"
	"fmt"
)

// Kind classifies the value a field holds.
type Kind int

const (
	KindText Kind = iota
	KindPercentage
	KindCount
	KindPopulation
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPercentage:
		return "percentage"
	case KindCount:
		return "count"
	case KindPopulation:
		return "population"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Domain is the validity rule applied to a field's value.
type Domain int

const (
	// DomainNone accepts every value.
	DomainNone Domain = iota
	// DomainNonNegative rejects values below zero.
	DomainNonNegative
	// DomainPercent rejects values outside [0,100].
	DomainPercent
)

func (d Domain) String() string {
	switch d {
	case DomainNone:
		return "any"
	case DomainNonNegative:
		return "non-negative"
	case DomainPercent:
		return "[0,100]"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// Field names accepted by filter and aggregation operations.
const (
	FieldCounty                    = "County"
	FieldState                     = "State"
	FieldEducationHighSchool       = "Education_High_School_or_Higher"
	FieldEducationBachelors        = "Education_Bachelors_Degree_or_Higher"
	FieldEthnicityAmericanIndian   = "Ethnicity_American_Indian_and_Alaska_Native_Alone"
	FieldEthnicityAsian            = "Ethnicities_Asian_Alone"
	FieldEthnicityBlack            = "Ethnicities_Black_Alone"
	FieldEthnicityHispanic         = "Ethnicities_Hispanic_or_Latino"
	FieldEthnicityNativeHawaiian   = "Ethnicities_Native_Hawaiian_and_Other_Pacific_Islander_Alone"
	FieldEthnicityTwoOrMoreRaces   = "Ethnicities_Two_or_More_Races"
	FieldEthnicityWhite            = "Ethnicities_White_Alone"
	FieldEthnicityWhiteNotHispanic = "Ethnicities_White_Alone_not_Hispanic_or_Latino"
	FieldIncomeMedianHousehold     = "Income_Median_Household_Income"
	FieldIncomePerCapita           = "Income_Per_Capita_Income"
	FieldIncomeBelowPovertyLevel   = "Income_Persons_Below_Poverty_Level"
	FieldPopulation2014            = "Population_Population_2014"
)

var (
	// ErrUnknownField is returned when a name is not in the registry.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotAggregatable is returned when a registered field cannot be used
	// for sub-population weighting.
	ErrNotAggregatable = errors.New("field is not a percentage")
)

// Descriptor describes how to read and validate one named field of a Record.
type Descriptor struct {
	Name   string
	Kind   Kind
	Domain Domain

	// Text reads text fields; nil for numeric fields.
	Text func(Record) string

	// Float reads percentage fields; nil otherwise.
	Float func(Record) float32

	// Int reads count and population fields; nil otherwise.
	Int func(Record) int32
}

// Numeric reports whether the field holds a number.
func (d Descriptor) Numeric() bool {
	return d.Kind != KindText
}

// Filterable reports whether the field supports threshold filtering.
func (d Descriptor) Filterable() bool {
	return d.Numeric()
}

// Aggregatable reports whether the field can weight a population.
func (d Descriptor) Aggregatable() bool {
	return d.Kind == KindPercentage
}

// Value returns the field's value widened to float64. Text fields yield 0.
func (d Descriptor) Value(r Record) float64 {
	switch {
	case d.Float != nil:
		return float64(d.Float(r))
	case d.Int != nil:
		return float64(d.Int(r))
	default:
		return 0
	}
}

// Registry maps field names to descriptors. Lookups are exact and
// case-sensitive.
type Registry struct {
	order  []string
	fields map[string]Descriptor
}

// NewRegistry builds a registry from descs, keeping their order. Duplicate
// names are rejected.
func NewRegistry(descs ...Descriptor) (*Registry, error) {
	r := &Registry{
		order:  make([]string, 0, len(descs)),
		fields: make(map[string]Descriptor, len(descs)),
	}
	for _, d := range descs {
		if d.Name == "" {
			return nil, errors.New("descriptor without a name")
		}
		if _, dup := r.fields[d.Name]; dup {
			return nil, fmt.Errorf("duplicate field %q", d.Name)
		}
		r.order = append(r.order, d.Name)
		r.fields[d.Name] = d
	}
	return r, nil
}

// Resolve looks up name.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	d, ok := r.fields[name]
	return d, ok
}

// ResolveNumeric looks up a field for threshold filtering. Text fields
// resolve successfully; callers check Filterable.
func (r *Registry) ResolveNumeric(name string) (Descriptor, error) {
	d, ok := r.fields[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return d, nil
}

// ResolveAggregate looks up a percentage field for sub-population weighting.
func (r *Registry) ResolveAggregate(name string) (Descriptor, error) {
	d, ok := r.fields[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if !d.Aggregatable() {
		return Descriptor{}, fmt.Errorf("%w: %q is a %s field", ErrNotAggregatable, name, d.Kind)
	}
	return d, nil
}

// Names returns the registered names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Fields returns the registered descriptors in declaration order.
func (r *Registry) Fields() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.fields[name])
	}
	return out
}

func percent(name string, get func(Record) float32) Descriptor {
	return Descriptor{Name: name, Kind: KindPercentage, Domain: DomainPercent, Float: get}
}

// Default is the registry of every queryable county field.
var Default = mustRegistry(
	Descriptor{Name: FieldCounty, Kind: KindText, Text: func(r Record) string { return r.County }},
	Descriptor{Name: FieldState, Kind: KindText, Text: func(r Record) string { return r.State }},
	percent(FieldEducationHighSchool, func(r Record) float32 { return r.EducationHighSchoolOrHigher }),
	percent(FieldEducationBachelors, func(r Record) float32 { return r.EducationBachelorsOrHigher }),
	percent(FieldEthnicityAmericanIndian, func(r Record) float32 { return r.EthnicityAmericanIndian }),
	percent(FieldEthnicityAsian, func(r Record) float32 { return r.EthnicityAsian }),
	percent(FieldEthnicityBlack, func(r Record) float32 { return r.EthnicityBlack }),
	percent(FieldEthnicityHispanic, func(r Record) float32 { return r.EthnicityHispanic }),
	percent(FieldEthnicityNativeHawaiian, func(r Record) float32 { return r.EthnicityNativeHawaiian }),
	percent(FieldEthnicityTwoOrMoreRaces, func(r Record) float32 { return r.EthnicityTwoOrMoreRaces }),
	percent(FieldEthnicityWhite, func(r Record) float32 { return r.EthnicityWhite }),
	percent(FieldEthnicityWhiteNotHispanic, func(r Record) float32 { return r.EthnicityWhiteNotHispanic }),
	Descriptor{Name: FieldIncomeMedianHousehold, Kind: KindCount, Int: func(r Record) int32 { return r.MedianHouseholdIncome }},
	Descriptor{Name: FieldIncomePerCapita, Kind: KindCount, Int: func(r Record) int32 { return r.PerCapitaIncome }},
	percent(FieldIncomeBelowPovertyLevel, func(r Record) float32 { return r.PersonsBelowPovertyLevel }),
	Descriptor{Name: FieldPopulation2014, Kind: KindPopulation, Domain: DomainNonNegative, Int: func(r Record) int32 { return r.Population2014 }},
)

func mustRegistry(descs ...Descriptor) *Registry {
	r, err := NewRegistry(descs...)
	if err != nil {
		panic(err)
	}
	return r
}
