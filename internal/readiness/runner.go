package readiness

import (
	"context"
	"time"

	slogctx "github.com/veqryn/slog-context"
)

// Runner executes checks one after another.
type Runner struct {
	Checks []Check
	// Timeout bounds a single check, including every call it makes.
	Timeout time.Duration
	// OnResult, when set, receives each result as soon as its check returns.
	OnResult func(Result)
}

// Run executes the checks in order. It stops early only when ctx is cancelled,
// returning the results gathered so far.
func (r *Runner) Run(ctx context.Context, actx *Context) []Result {
	results := make([]Result, 0, len(r.Checks))

	for i, c := range r.Checks {
		if ctx.Err() != nil {
			slogctx.Warn(ctx, "assessment interrupted", "completed", i, "remaining", len(r.Checks)-i)
			break
		}

		res := r.runOne(slogctx.With(ctx, "check", c.ID()), actx, c)
		results = append(results, res)

		if r.OnResult != nil {
			r.OnResult(res)
		}
	}

	return results
}

func (r *Runner) runOne(ctx context.Context, actx *Context, c Check) Result {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	start := time.Now()
	res := c.Run(ctx, actx)
	if res.CheckID == "" {
		res.CheckID = c.ID()
	}
	if res.Title == "" {
		res.Title = c.Title()
	}
	slogctx.Debug(ctx, "check finished", "worst", res.Worst(), "elapsed", time.Since(start))

	return res
}
