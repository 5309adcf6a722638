package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vegasq/countyq/schema"
)

// Executor runs pipeline operations over a working set it owns exclusively.
// Filters replace the working set for every later operation; the other
// operations only read it.
type Executor struct {
	registry *schema.Registry
	sink     Sink
	logger   *slog.Logger
	set      schema.WorkingSet
}

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry resolves field names in reg instead of schema.Default.
func WithRegistry(reg *schema.Registry) Option {
	return func(e *Executor) {
		if reg != nil {
			e.registry = reg
		}
	}
}

// WithLogger logs each applied operation at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor creates an executor whose working set starts as set.
func NewExecutor(set schema.WorkingSet, sink Sink, opts ...Option) *Executor {
	e := &Executor{
		registry: schema.Default,
		sink:     sink,
		logger:   slog.New(slog.DiscardHandler),
		set:      set,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkingSet returns the current working set.
func (e *Executor) WorkingSet() schema.WorkingSet {
	return e.set
}

// Run parses and applies tokens strictly left to right. Each token is parsed
// only when reached, so output of earlier operations stands when a later
// token aborts the run. Recoverable problems are reported to the sink as
// notices; the first fatal error (see IsFatal) or sink error is returned.
func (e *Executor) Run(ctx context.Context, tokens []string) error {
	for i, tok := range tokens {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline interrupted before operation %d: %w", i+1, err)
		}
		op, err := ParseOperation(tok)
		if err != nil {
			return err
		}
		if err := e.Apply(op); err != nil {
			return err
		}
	}
	return nil
}

// Apply executes a single operation.
func (e *Executor) Apply(op Operation) error {
	before := len(e.set)
	err := e.apply(op)
	e.logger.Debug("operation applied",
		"op", op.Kind.String(),
		"token", op.Token,
		"records_before", before,
		"records_after", len(e.set),
		"error", err,
	)
	return err
}

func (e *Executor) apply(op Operation) error {
	switch op.Kind {
	case OpDisplay:
		return e.sink.Display(e.set)

	case OpFilterState:
		e.set = FilterByState(e.set, op.State)
		return e.sink.Report(Result{Op: OpFilterState, State: op.State, Count: len(e.set)})

	case OpFilterField:
		filtered, err := FilterByField(e.set, e.registry, op.Field, op.Comparator, op.Threshold, e.sink.Notice)
		if errors.Is(err, ErrUnsupportedField) {
			e.sink.Notice(Notice{Kind: NoticeUnsupportedField, Field: op.Field})
			return nil
		}
		if err != nil {
			return err
		}
		e.set = filtered
		return e.sink.Report(Result{
			Op:         OpFilterField,
			Field:      op.Field,
			Comparator: op.Comparator,
			Threshold:  op.Threshold,
			Count:      len(e.set),
		})

	case OpPopulationTotal:
		return e.reportTotal()

	case OpPopulation:
		_, err := e.reportSub(op.Field)
		return err

	case OpPercent:
		// The total is reported before the field is resolved, so an invalid
		// field still leaves the total line behind.
		total := TotalPopulation(e.set, e.sink.Notice)
		if err := e.sink.Report(Result{Op: OpPopulationTotal, Population: total}); err != nil {
			return err
		}
		sub, err := e.reportSub(op.Field)
		if err != nil {
			return err
		}
		return e.sink.Report(Result{Op: OpPercent, Field: op.Field, Percent: Percentage(total, sub)})

	default:
		return fmt.Errorf("%w: %s", ErrUnknownOperation, op.Kind)
	}
}

func (e *Executor) reportTotal() error {
	total := TotalPopulation(e.set, e.sink.Notice)
	return e.sink.Report(Result{Op: OpPopulationTotal, Population: total})
}

func (e *Executor) reportSub(field string) (int64, error) {
	sub, err := SubPopulation(e.set, e.registry, field, e.sink.Notice)
	if err != nil {
		return 0, err
	}
	return sub, e.sink.Report(Result{Op: OpPopulation, Field: field, Population: sub})
}
