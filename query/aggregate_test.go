package query

import (
	"errors"
	"math"
	"testing"

	"github.com/vegasq/countyq/schema"
)

func TestTotalPopulation(t *testing.T) {
	tests := []struct {
		name    string
		set     schema.WorkingSet
		want    int64
		notices int
	}{
		{name: "fixture", set: fixtureSet(), want: 4200},
		{name: "empty", set: nil, want: 0},
		{
			name: "negative skipped",
			set: schema.WorkingSet{
				county("A", "CA", 0, 0, 0, 0, 10),
				county("B", "CA", 0, 0, 0, 0, -5),
				county("C", "CA", 0, 0, 0, 0, 7),
			},
			want:    17,
			notices: 1,
		},
		{
			name: "no int32 overflow",
			set: schema.WorkingSet{
				county("A", "CA", 0, 0, 0, 0, math.MaxInt32),
				county("B", "CA", 0, 0, 0, 0, math.MaxInt32),
			},
			want: 2 * math.MaxInt32,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notices []Notice
			if got := TotalPopulation(tt.set, collect(&notices)); got != tt.want {
				t.Errorf("TotalPopulation() = %d, want %d", got, tt.want)
			}
			if len(notices) != tt.notices {
				t.Errorf("got %d notices, want %d", len(notices), tt.notices)
			}
			for _, n := range notices {
				if n.Kind != NoticeInvalidPopulation {
					t.Errorf("unexpected notice %+v", n)
				}
			}
		})
	}
}

func TestSubPopulation(t *testing.T) {
	tests := []struct {
		name    string
		set     schema.WorkingSet
		field   string
		want    int64
		notices []NoticeKind
	}{
		{
			name:  "hispanic over fixture",
			set:   fixtureSet(),
			field: schema.FieldEthnicityHispanic,
			want:  200 + 1000 + 100 + 120,
		},
		{
			name:    "negative percentage skipped",
			set:     fixtureSet(),
			field:   schema.FieldEthnicityAsian,
			want:    300 + 100 + 60,
			notices: []NoticeKind{NoticeInvalidPercentage},
		},
		{
			name:  "truncates toward zero",
			set:   schema.WorkingSet{county("A", "CA", 33.3, 0, 0, 0, 10)},
			field: schema.FieldEthnicityAsian,
			want:  3,
		},
		{
			name: "domain bounds",
			set: schema.WorkingSet{
				county("Zero", "CA", 0, 0, 0, 0, 100),
				county("Full", "CA", 100, 0, 0, 0, 100),
				county("Over", "CA", 100.5, 0, 0, 0, 100),
				county("NaN", "CA", float32(math.NaN()), 0, 0, 0, 100),
			},
			field:   schema.FieldEthnicityAsian,
			want:    100,
			notices: []NoticeKind{NoticeInvalidPercentage, NoticeInvalidPercentage},
		},
		{
			name: "negative population skipped before percentage check",
			set: schema.WorkingSet{
				county("A", "CA", 150, 0, 0, 0, -1),
				county("B", "CA", 50, 0, 0, 0, 10),
			},
			field:   schema.FieldEthnicityAsian,
			want:    5,
			notices: []NoticeKind{NoticeInvalidPopulation},
		},
		{
			name:  "bachelors is aggregatable",
			set:   fixtureSet(),
			field: schema.FieldEducationBachelors,
			want:  450 + 300 + 320 + 164,
		},
		{
			name:  "empty set",
			field: schema.FieldIncomeBelowPovertyLevel,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var notices []Notice
			got, err := SubPopulation(tt.set, nil, tt.field, collect(&notices))
			if err != nil {
				t.Fatalf("SubPopulation() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SubPopulation() = %d, want %d", got, tt.want)
			}
			if len(notices) != len(tt.notices) {
				t.Fatalf("notices = %+v, want kinds %v", notices, tt.notices)
			}
			for i, n := range notices {
				if n.Kind != tt.notices[i] {
					t.Errorf("notice %d kind = %d, want %d", i, n.Kind, tt.notices[i])
				}
			}
		})
	}
}

func TestSubPopulation_RejectsNonPercentageFields(t *testing.T) {
	for _, field := range []string{
		"BadField",
		"",
		schema.FieldCounty,
		schema.FieldState,
		schema.FieldIncomeMedianHousehold,
		schema.FieldIncomePerCapita,
		schema.FieldPopulation2014,
		"ethnicities_asian_alone",
	} {
		_, err := SubPopulation(fixtureSet(), nil, field, nil)
		if !errors.Is(err, ErrUnsupportedAggregate) {
			t.Errorf("SubPopulation(%q) error = %v, want ErrUnsupportedAggregate", field, err)
		}
		if !IsFatal(err) {
			t.Errorf("SubPopulation(%q) error should be fatal", field)
		}
	}
}

func TestSubPopulation_HalfShare(t *testing.T) {
	set := schema.WorkingSet{
		county("A", "CA", 50, 0, 0, 0, 1000),
		county("B", "CA", 50, 0, 0, 0, 2468),
		county("C", "CA", 50, 0, 0, 0, 0),
	}
	total := TotalPopulation(set, nil)
	sub, err := SubPopulation(set, nil, schema.FieldEthnicityAsian, nil)
	if err != nil {
		t.Fatal(err)
	}
	if sub*2 != total {
		t.Errorf("sub = %d, total = %d", sub, total)
	}
	if p := Percentage(total, sub); p != 50 {
		t.Errorf("Percentage() = %v, want 50", p)
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(3400, 400); math.Abs(got-11.764705882352942) > 1e-12 {
		t.Errorf("Percentage(3400, 400) = %v", got)
	}
	if got := Percentage(10, 10); got != 100 {
		t.Errorf("Percentage(10, 10) = %v", got)
	}
}

func TestPercentage_ZeroTotal(t *testing.T) {
	// An empty working set is reported, not rejected.
	if got := Percentage(0, 0); !math.IsNaN(got) {
		t.Errorf("Percentage(0, 0) = %v, want NaN", got)
	}
	if got := Percentage(0, 5); !math.IsInf(got, 1) {
		t.Errorf("Percentage(0, 5) = %v, want +Inf", got)
	}
}
