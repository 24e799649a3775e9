// Package stage drives one batch transformation over a collection of
// items. One item's failure never aborts the batch; every outcome is
// collected into a Report so callers and tests can assert on results
// instead of scraping logs.
package stage

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Result records the outcome of one item.
type Result struct {
	Key    string
	Output string
	Err    error
}

// Report collects per-item results for one stage run.
type Report struct {
	Stage   string
	RunID   string
	Results []Result
}

// OK returns the number of items that succeeded.
func (r Report) OK() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

// Summarize writes the closing log line for the stage.
func (r Report) Summarize() {
	log.Printf("[%s] 🏁 done: %d ok, %d failed (run %s)", r.Stage, r.OK(), len(r.Failed()), r.RunID)
}

// Run iterates items in input order, invoking fn for each and
// recording the produced output path or error. Errors are logged per
// item and contained; the loop always reaches the last item.
func Run[T any](ctx context.Context, name string, items []T, key func(T) string, fn func(context.Context, T) (string, error)) Report {
	rep := Report{Stage: name, RunID: uuid.NewString()[:8]}
	for _, it := range items {
		k := key(it)
		out, err := fn(ctx, it)
		rep.Results = append(rep.Results, Result{Key: k, Output: out, Err: err})
		if err != nil {
			log.Printf("[%s] ❌ %s: %v", name, k, err)
			continue
		}
		log.Printf("[%s] ✅ %s → %s", name, k, out)
	}
	return rep
}
