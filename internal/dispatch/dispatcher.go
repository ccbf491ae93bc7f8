// Package dispatch issues the sub-batches of one generation request against
// a remote caller and assembles a flat, truncated list of locators.
package dispatch

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"animegen/internal/shaping"
)

// Caller performs one remote generation call and returns its locators.
type Caller interface {
	Locators(ctx context.Context, ref string, input map[string]any) ([]string, error)
}

// CallerFunc adapts a function to Caller.
type CallerFunc func(ctx context.Context, ref string, input map[string]any) ([]string, error)

func (f CallerFunc) Locators(ctx context.Context, ref string, input map[string]any) ([]string, error) {
	return f(ctx, ref, input)
}

// Job is one generation request after shaping.
type Job struct {
	ModelID string
	Ref     string
	Shaped  shaping.Shaped
	Total   int
}

// Failure records a sub-batch that produced nothing.
type Failure struct {
	Batch   int
	Size    int
	Message string
	Err     error
}

// Result is the outcome of a job. Locators never exceeds Job.Total.
type Result struct {
	Locators []string
	Failures []Failure
	Batches  int
}

// Observer receives per-batch outcomes, e.g. for metrics. It must be safe
// for concurrent use when the dispatcher runs in parallel.
type Observer interface {
	BatchDone(modelID string, size, produced int, dur time.Duration, err error)
}

// Dispatcher runs jobs. The zero value runs sub-batches sequentially with a
// disabled logger.
type Dispatcher struct {
	Caller   Caller
	Parallel bool
	// MaxParallel bounds concurrent sub-batches when Parallel is set; zero means no bound.
	MaxParallel int
	Logger      zerolog.Logger
	Observer    Observer
	// Secrets are redacted from logged failure messages.
	Secrets []string
}

const maxMessageLen = 200

// Run issues every planned sub-batch for job. A failing sub-batch is logged
// and skipped; it never aborts the others.
func (d *Dispatcher) Run(ctx context.Context, job Job) Result {
	plan := Plan(job.Total, job.Shaped.MaxPerCall)
	slots := make([][]string, len(plan))
	errs := make([]error, len(plan))

	call := func(ctx context.Context, i int) {
		input := job.Shaped.Payload.Clone()
		if job.Shaped.CountParam != "" {
			input[job.Shaped.CountParam] = plan[i]
		}
		start := time.Now()
		locs, err := d.Caller.Locators(ctx, job.Ref, input)
		if err == nil && len(locs) == 0 {
			err = errEmptyOutput
		}
		if d.Observer != nil {
			d.Observer.BatchDone(job.ModelID, plan[i], len(locs), time.Since(start), err)
		}
		if err != nil {
			errs[i] = err
			d.Logger.Error().
				Str("model", job.Ref).
				Int("batch", i).
				Int("size", plan[i]).
				Str("err", Sanitize(err.Error(), d.Secrets...)).
				Msg("sub-batch failed")
			return
		}
		slots[i] = locs
	}

	if d.Parallel && len(plan) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		if d.MaxParallel > 0 {
			g.SetLimit(d.MaxParallel)
		}
		for i := range plan {
			g.Go(func() error {
				call(gctx, i)
				// sub-batch failures are isolated; never cancel siblings
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range plan {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				continue
			}
			call(ctx, i)
		}
	}

	res := Result{Batches: len(plan)}
	for i, locs := range slots {
		if errs[i] != nil {
			res.Failures = append(res.Failures, Failure{
				Batch:   i,
				Size:    plan[i],
				Message: Sanitize(errs[i].Error(), d.Secrets...),
				Err:     errs[i],
			})
			continue
		}
		res.Locators = append(res.Locators, locs...)
	}
	if len(res.Locators) > job.Total {
		res.Locators = res.Locators[:job.Total]
	}
	return res
}

type emptyOutputError struct{}

func (emptyOutputError) Error() string { return "upstream returned no outputs" }

var errEmptyOutput error = emptyOutputError{}

// Sanitize redacts secrets from msg and truncates it for logging.
func Sanitize(msg string, secrets ...string) string {
	for _, s := range secrets {
		if s != "" {
			msg = strings.ReplaceAll(msg, s, "[REDACTED]")
		}
	}
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	if len(msg) > maxMessageLen {
		cut := maxMessageLen
		for cut > 0 && !utf8.RuneStart(msg[cut]) {
			cut--
		}
		msg = msg[:cut] + "..."
	}
	return msg
}
