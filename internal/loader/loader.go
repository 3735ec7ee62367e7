// Package loader runs the fetch, extract, normalize and build pipeline for every
// character of a roster and gathers the results into a catalog.
package loader

import (
	"context"
	"errors"
	"fmt"

	"framedata/internal/components/assert"
	"framedata/internal/components/telemetry"
	"framedata/internal/fields"
	"framedata/internal/framedata"
	"framedata/internal/pagesource"
	"framedata/internal/roster"
	"framedata/internal/wikitable"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("framedata/internal/loader")

const (
	report_pipeline_fetch     = "pipeline.fetch"
	report_pipeline_extract   = "pipeline.extract"
	report_pipeline_normalize = "pipeline.normalize"
	report_pipeline_build     = "pipeline.build"
	report_load_moves         = "load.moves"
	report_load_built         = "load.built"
	report_load_failed        = "load.failed"
)

const DefaultConcurrency = 4

type Options struct {
	// Concurrency is the maximum number of pipelines running at once, it defaults to
	// DefaultConcurrency.
	Concurrency int
	// Progress is called on every state transition of every pipeline. It is called
	// from the pipeline's goroutine so it must be safe for concurrent use.
	Progress func(characterID string, state State)
}

type Loader struct {
	roster      *roster.Roster
	source      pagesource.Source
	concurrency int
	progress    func(characterID string, state State)
	tel         telemetry.API
}

func New(r *roster.Roster, source pagesource.Source, tel telemetry.API, opts Options) *Loader {
	assert.NotNil(r)
	assert.NotNil(source)
	assert.NotNil(tel)

	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Progress == nil {
		opts.Progress = func(string, State) {}
	}
	return &Loader{
		roster:      r,
		source:      source,
		concurrency: opts.Concurrency,
		progress:    opts.Progress,
		tel:         telemetry.NewScopedAPI("loader", tel),
	}
}

// outcome is the write-once result slot of one pipeline.
type outcome struct {
	state    State
	moves    []framedata.Move
	warnings []framedata.Warning
	// set when state is Failed, or when the pipeline stopped because the context
	// ended (state is then the last state reached)
	err error
}

// pipeline loads a single character. It never publishes a half-built character, a
// canceled pipeline reports the state it stopped in along with the context's error.
func (l *Loader) pipeline(ctx context.Context, character roster.Character) (out outcome) {
	ctx, span := tracer.Start(ctx, "pipeline")
	span.SetAttributes(attribute.String("character.id", character.ID))
	defer func() {
		span.SetAttributes(attribute.String("state", out.state.String()))
		if out.err != nil {
			span.RecordError(out.err)
			span.SetStatus(codes.Error, out.state.String())
		}
		span.End()
	}()

	state := Pending
	transition := func(next State) bool {
		if err := ctx.Err(); err != nil {
			out = outcome{state: state, err: err}
			return false
		}
		state = next
		l.progress(character.ID, next)
		return true
	}
	fail := func(err error) outcome {
		// a source that gives up because the context ended is a cancellation
		if ctxErr := ctx.Err(); ctxErr != nil {
			return outcome{state: state, err: ctxErr}
		}
		l.progress(character.ID, Failed)
		return outcome{
			state: Failed,
			err:   &StageError{CharacterID: character.ID, Stage: state, Err: err},
		}
	}

	if !transition(Fetching) {
		return out
	}
	content, err := l.source.Fetch(ctx, character)
	if err != nil {
		l.tel.ReportBroken(report_pipeline_fetch, err, character.ID)
		return fail(err)
	}

	if !transition(Extracting) {
		return out
	}
	scanner, err := wikitable.Extract(content)
	if err != nil {
		l.tel.ReportBroken(report_pipeline_extract, err, character.ID)
		return fail(err)
	}
	var tables []fields.Table
	for scanner.Scan() {
		tables = append(tables, fields.Normalize(scanner.Table()))
	}
	var warnings []framedata.Warning
	if err := scanner.Err(); err != nil {
		l.tel.ReportWarning(report_pipeline_extract, err, character.ID)
		warnings = append(warnings, framedata.Warning{
			Kind:    framedata.WarningField,
			Message: err.Error(),
		})
	}

	if !transition(Normalizing) {
		return out
	}
	result := framedata.Build(character.ID, tables)
	warnings = append(warnings, result.Warnings...)
	for _, w := range result.Warnings {
		l.tel.ReportWarning(report_pipeline_build, character.ID, w.String())
	}
	if len(result.Moves) == 0 {
		l.tel.ReportBroken(report_pipeline_normalize, ErrNoMoves, character.ID, len(tables))
		failed := fail(ErrNoMoves)
		failed.warnings = warnings
		return failed
	}

	if !transition(Built) {
		return out
	}
	return outcome{
		state:    Built,
		moves:    result.Moves,
		warnings: warnings,
	}
}

// Load loads a single character, ref is resolved through the roster.
//
// It returns an *framedata.UnknownCharacterError if ref matches no character and a
// *StageError if the pipeline failed.
func (l *Loader) Load(ctx context.Context, ref string) (*framedata.Catalog, error) {
	character, ok := l.roster.Resolve(ref)
	if !ok {
		return nil, &framedata.UnknownCharacterError{Ref: ref}
	}

	out := l.pipeline(ctx, character)
	if out.state != Built {
		return nil, out.err
	}

	report := framedata.Report{
		Warnings: map[string][]framedata.Warning{character.ID: out.warnings},
	}
	return framedata.NewCatalog(l.roster, map[string][]framedata.Move{character.ID: out.moves}, report)
}

// LoadAll loads every character of the roster, running at most Concurrency pipelines
// at once. Each pipeline writes only to its own slot and the slots are gathered in
// roster order, so the result does not depend on scheduling.
//
// A character that fails does not fail the load, its error lands in the catalog's
// Report. LoadAll only fails with an *AllFailedError when no character was built.
// If ctx ends during the load, the catalog of the characters built so far is returned
// along with ctx.Err().
func (l *Loader) LoadAll(ctx context.Context) (*framedata.Catalog, error) {
	ctx, span := tracer.Start(ctx, "load-all")
	defer span.End()

	characters := l.roster.All()
	slots := make([]outcome, len(characters))

	var group errgroup.Group
	group.SetLimit(l.concurrency)
	for i, character := range characters {
		group.Go(func() error {
			slots[i] = l.pipeline(ctx, character)
			return nil
		})
	}
	// pipelines report failure through their slot, never through the group
	_ = group.Wait()

	moves := map[string][]framedata.Move{}
	report := framedata.Report{
		Failures: map[string]error{},
		Warnings: map[string][]framedata.Warning{},
	}
	var failures []error
	total := 0
	for i, character := range characters {
		out := slots[i]
		if len(out.warnings) > 0 {
			report.Warnings[character.ID] = out.warnings
		}
		switch out.state {
		case Built:
			moves[character.ID] = out.moves
			total += len(out.moves)
		case Failed:
			report.Failures[character.ID] = out.err
			failures = append(failures, out.err)
		}
	}

	l.tel.ReportCount(report_load_moves, int64(total))
	l.tel.ReportCount(report_load_built, int64(len(moves)))
	l.tel.ReportCount(report_load_failed, int64(len(failures)))
	span.SetAttributes(
		attribute.Int("load.moves", total),
		attribute.Int("load.built", len(moves)),
		attribute.Int("load.failed", len(failures)),
	)

	catalog, err := framedata.NewCatalog(l.roster, moves, report)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to index moves")
		return nil, fmt.Errorf("index catalog: %w", err)
	}

	if err := ctx.Err(); err != nil {
		span.SetStatus(codes.Error, "canceled")
		return catalog, err
	}
	if len(moves) == 0 {
		err := &AllFailedError{Failures: failures}
		span.RecordError(err)
		span.SetStatus(codes.Error, "every character failed")
		return nil, err
	}
	return catalog, nil
}

// IsCanceled reports whether err is the result of a load cut short by its context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
