package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chazu/pleat/pkg/model"
)

// EvalTimeout is the hard limit for a single evaluation.
const EvalTimeout = 5 * time.Second

// errSuperseded is returned to a caller whose evaluation finished after a
// newer one had started.
var errSuperseded = errors.New("evaluation superseded by newer request")

type evalResult struct {
	model  *model.Model
	errors []EvalError
	err    error
}

// begin opens a new evaluation generation.
func (e *Engine) begin() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

// latest reports whether gen is still the newest generation.
func (e *Engine) latest(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return gen == e.generation
}

// await waits up to limit for the evaluation of generation gen to report
// on ch. An abandoned evaluation keeps running; ch must be buffered so its
// late send does not block.
func (e *Engine) await(ch <-chan evalResult, gen uint64, limit time.Duration) (*model.Model, []EvalError, error) {
	ctx, cancel := context.WithTimeout(context.Background(), limit)
	defer cancel()

	select {
	case res := <-ch:
		if !e.latest(gen) {
			return nil, nil, errSuperseded
		}
		return res.model, res.errors, res.err
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("evaluation timed out after %s: %w", limit, ctx.Err())
	}
}
