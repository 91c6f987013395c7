package engine

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/pleat/pkg/model"
)

// ErrNoInput is reported when Load is given no reader.
var ErrNoInput = errors.New("no input")

// LoadError reports a model that could not be loaded: missing or unreadable
// input, malformed source, or a fatal evaluation failure. Callers decide
// whether a load failure ends the program.
type LoadError struct {
	Name   string      // input name, for messages
	Errors []EvalError // parse and evaluation errors, if any
	Err    error       // underlying I/O or fatal error, if any
}

func (e *LoadError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "load %s", e.Name)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	for _, ee := range e.Errors {
		fmt.Fprintf(&b, ": %v", ee)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads model source from r and evaluates it. name identifies the
// input in errors. Every failure is returned as a *LoadError.
func (e *Engine) Load(name string, r io.Reader) (*model.Model, error) {
	if r == nil {
		return nil, &LoadError{Name: name, Err: ErrNoInput}
	}

	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}

	m, evalErrs, err := e.Evaluate(string(src))
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	if len(evalErrs) > 0 {
		return nil, &LoadError{Name: name, Errors: evalErrs}
	}
	return m, nil
}
