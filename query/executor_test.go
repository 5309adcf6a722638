package query

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/vegasq/countyq/schema"
)

func run(t *testing.T, set schema.WorkingSet, tokens ...string) (*recordingSink, *Executor, error) {
	t.Helper()
	sink := &recordingSink{}
	exec := NewExecutor(set, sink)
	err := exec.Run(context.Background(), tokens)
	return sink, exec, err
}

func TestExecutor_CaliforniaPipeline(t *testing.T) {
	sink, exec, err := run(t, fixtureSet(),
		"filter-state:CA",
		"population-total",
		"population:Ethnicities_Hispanic_or_Latino",
		"percent:Ethnicities_Asian_Alone",
	)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := []Result{
		{Op: OpFilterState, State: "CA", Count: 3},
		{Op: OpPopulationTotal, Population: 3400},
		{Op: OpPopulation, Field: schema.FieldEthnicityHispanic, Population: 1320},
		{Op: OpPopulationTotal, Population: 3400},
		{Op: OpPopulation, Field: schema.FieldEthnicityAsian, Population: 400},
		{Op: OpPercent, Field: schema.FieldEthnicityAsian, Percent: Percentage(3400, 400)},
	}
	if !reflect.DeepEqual(sink.results, want) {
		t.Errorf("results =\n%+v\nwant\n%+v", sink.results, want)
	}

	// Yolo is the third California county: line 4 after the state filter.
	wantNotices := []Notice{{Kind: NoticeInvalidPercentage, Line: 4, Field: schema.FieldEthnicityAsian}}
	if !reflect.DeepEqual(sink.notices, wantNotices) {
		t.Errorf("notices = %+v, want %+v", sink.notices, wantNotices)
	}
	if got := len(exec.WorkingSet()); got != 3 {
		t.Errorf("working set size = %d, want 3", got)
	}
}

func TestExecutor_FiltersCompose(t *testing.T) {
	sink, exec, err := run(t, fixtureSet(),
		"filter:Education_Bachelors_Degree_or_Higher:ge:40",
		"filter-state:CA",
		"display",
		"filter:Income_Median_Household_Income:le:60000",
		"display",
	)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantEvents := []string{
		"report filter",
		"report filter-state",
		"display 2",
		"report filter",
		"display 1",
	}
	if !reflect.DeepEqual(sink.events, wantEvents) {
		t.Errorf("events = %v, want %v", sink.events, wantEvents)
	}
	if names := countyNames(exec.WorkingSet()); !reflect.DeepEqual(names, []string{"Yolo County"}) {
		t.Errorf("final set = %v", names)
	}
	if names := countyNames(sink.displayed[0]); !reflect.DeepEqual(names, []string{"Alameda County", "Yolo County"}) {
		t.Errorf("first display = %v", names)
	}
}

func TestExecutor_AggregatesDoNotNarrow(t *testing.T) {
	_, exec, err := run(t, fixtureSet(), "population-total", "population:Ethnicities_Asian_Alone", "percent:Ethnicities_Black_Alone")
	if err != nil {
		t.Fatal(err)
	}
	if got := len(exec.WorkingSet()); got != 4 {
		t.Errorf("aggregates changed the working set: %d records", got)
	}
}

func TestExecutor_UnsupportedFilterFieldContinues(t *testing.T) {
	sink, exec, err := run(t, fixtureSet(), "filter:BadField:ge:1", "population-total")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	wantEvents := []string{"notice 4 line 0", "report population-total"}
	if !reflect.DeepEqual(sink.events, wantEvents) {
		t.Errorf("events = %v, want %v", sink.events, wantEvents)
	}
	if sink.notices[0].Field != "BadField" {
		t.Errorf("notice field = %q", sink.notices[0].Field)
	}
	if len(exec.WorkingSet()) != 4 {
		t.Error("unsupported filter must not narrow the set")
	}
}

func TestExecutor_UnsupportedAggregateAborts(t *testing.T) {
	sink, _, err := run(t, fixtureSet(), "population:BadField", "display")
	if !errors.Is(err, ErrUnsupportedAggregate) {
		t.Fatalf("error = %v, want ErrUnsupportedAggregate", err)
	}
	if len(sink.events) != 0 {
		t.Errorf("events after fatal error: %v", sink.events)
	}
}

func TestExecutor_PercentReportsTotalBeforeFieldCheck(t *testing.T) {
	sink, _, err := run(t, fixtureSet(), "percent:Population_Population_2014", "display")
	if !errors.Is(err, ErrUnsupportedAggregate) {
		t.Fatalf("error = %v", err)
	}
	want := []Result{{Op: OpPopulationTotal, Population: 4200}}
	if !reflect.DeepEqual(sink.results, want) {
		t.Errorf("results = %+v, want %+v", sink.results, want)
	}
	if len(sink.displayed) != 0 {
		t.Error("display ran after a fatal error")
	}
}

func TestExecutor_MalformedTokenAbortsAfterEarlierOutput(t *testing.T) {
	sink, _, err := run(t, fixtureSet(), "display", "filter:X:ge", "population-total")
	if !errors.Is(err, ErrMalformedFilter) {
		t.Fatalf("error = %v, want ErrMalformedFilter", err)
	}
	if want := []string{"display 4"}; !reflect.DeepEqual(sink.events, want) {
		t.Errorf("events = %v, want %v", sink.events, want)
	}
}

func TestExecutor_UnknownOperationAborts(t *testing.T) {
	sink, _, err := run(t, fixtureSet(), "population-total", "median:Population_Population_2014")
	if !errors.Is(err, ErrUnknownOperation) {
		t.Fatalf("error = %v", err)
	}
	if len(sink.results) != 1 {
		t.Errorf("results = %+v", sink.results)
	}
}

func TestExecutor_TextFieldFilterDrains(t *testing.T) {
	sink, exec, err := run(t, fixtureSet(), "filter:State:ge:0", "percent:Ethnicities_Asian_Alone")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(exec.WorkingSet()) != 0 {
		t.Errorf("set not drained: %v", countyNames(exec.WorkingSet()))
	}
	if len(sink.notices) != 4 {
		t.Errorf("notices = %d, want 4", len(sink.notices))
	}
	if sink.results[0].Count != 0 {
		t.Errorf("filter count = %d", sink.results[0].Count)
	}
	last := sink.results[len(sink.results)-1]
	if last.Op != OpPercent || last.Percent == last.Percent {
		t.Errorf("percent over empty set = %+v, want NaN", last)
	}
}

func TestExecutor_EmptyDataset(t *testing.T) {
	sink, _, err := run(t, nil, "filter-state:CA", "population-total", "display")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"report filter-state", "report population-total", "display 0"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Errorf("events = %v, want %v", sink.events, want)
	}
}

func TestExecutor_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	err := NewExecutor(fixtureSet(), sink).Run(ctx, []string{"display"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if IsFatal(err) {
		t.Error("cancellation is not a pipeline error")
	}
	if len(sink.events) != 0 {
		t.Errorf("events = %v", sink.events)
	}
}

func TestExecutor_SinkErrorStops(t *testing.T) {
	boom := errors.New("write failed")
	sink := &recordingSink{displayErr: boom}
	err := NewExecutor(fixtureSet(), sink).Run(context.Background(), []string{"display", "population-total"})
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v", err)
	}
	if len(sink.results) != 0 {
		t.Error("pipeline continued after a sink error")
	}
}

func TestExecutor_ApplyUnknownKind(t *testing.T) {
	err := NewExecutor(nil, &recordingSink{}).Apply(Operation{Kind: OpKind(42)})
	if !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("error = %v", err)
	}
}

func TestExecutor_WithRegistry(t *testing.T) {
	reg, err := schema.NewRegistry(schema.Descriptor{
		Name:  "asian",
		Kind:  schema.KindPercentage,
		Float: func(r schema.Record) float32 { return r.EthnicityAsian },
	})
	if err != nil {
		t.Fatal(err)
	}
	sink := &recordingSink{}
	exec := NewExecutor(fixtureSet(), sink, WithRegistry(reg))
	if err := exec.Run(context.Background(), []string{"population:asian"}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if sink.results[0].Population != 460 {
		t.Errorf("population = %d, want 460", sink.results[0].Population)
	}
	err = exec.Run(context.Background(), []string{"population:Ethnicities_Asian_Alone"})
	if !errors.Is(err, ErrUnsupportedAggregate) {
		t.Errorf("default name resolved in custom registry: %v", err)
	}
}

func TestExecutor_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	exec := NewExecutor(fixtureSet(), &recordingSink{}, WithLogger(logger))
	if err := exec.Run(context.Background(), []string{"filter-state:OR"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"operation applied", "op=filter-state", "records_before=4", "records_after=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}
