package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chazu/pleat/pkg/diagram"
	"github.com/chazu/pleat/pkg/engine"
	"github.com/chazu/pleat/pkg/graph"
	"github.com/chazu/pleat/pkg/model"
	"github.com/chazu/pleat/pkg/optimize"
	"github.com/chazu/pleat/pkg/optimize/fixed"
	"github.com/chazu/pleat/pkg/optimize/relax"
)

// DefaultModel is the model file read when none is named.
const DefaultModel = "tmModelTester_2.tmd5"

// App runs the export pipeline: load a model, optimize its scale, build
// the crease pattern, then write the model snapshot and the diagram.
type App struct {
	cfg       Config
	log       *slog.Logger
	engine    *engine.Engine
	optimizer optimize.Engine
}

// Report summarizes a completed export.
type Report struct {
	Model       string
	Scale       float64
	ModelPath   string
	DiagramPath string
	Diagram     *diagram.Diagram
	Warnings    []graph.ValidationWarning

	// OptimizeErr is the scale optimization failure, if any. The export
	// still completes using the model as loaded.
	OptimizeErr error
}

// NewApp creates an App for cfg. A nil logger discards output.
func NewApp(cfg Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var opt optimize.Engine
	switch cfg.Engine {
	case EngineFixed:
		opt = fixed.New()
	default:
		opt = relax.New()
	}
	if ms, ok := opt.(optimize.ModeSetter); ok {
		ms.SetMode(cfg.EngineMode)
	}

	return &App{
		cfg:       cfg,
		log:       logger,
		engine:    engine.NewEngine(),
		optimizer: opt,
	}, nil
}

// Export runs the pipeline on the model file name under the base
// directory. Load failures are returned as *engine.LoadError. The model
// snapshot and the diagram are written together: if either fails, neither
// is left behind. Optimization failures are logged and recorded in the
// report.
func (a *App) Export(name string) (*Report, error) {
	m, err := a.load(name)
	if err != nil {
		return nil, err
	}
	log := a.log.With("model", m.Name)
	rep := &Report{Model: m.Name}

	if err := optimize.NewScaleOptimizer(m, a.optimizer).Optimize(); err != nil {
		rep.OptimizeErr = err
		var bce *optimize.BadConvergenceError
		switch {
		case errors.As(err, &bce):
			log.Warn("scale optimization did not converge", "reason", bce.Reason)
		case errors.Is(err, optimize.ErrBadScale):
			log.Warn("scale optimization produced an unusable scale")
		default:
			log.Warn("scale optimization failed", "err", err)
		}
	} else {
		log.Info("scale optimized", "scale", m.Scale)
	}
	rep.Scale = m.Scale

	g, err := model.BuildCreasePattern(m)
	if err != nil {
		return nil, err
	}
	res := graph.ValidateAll(g)
	if !res.OK() {
		return nil, fmt.Errorf("crease pattern: %w", errors.Join(errorList(res.Errors)...))
	}
	rep.Warnings = res.Warnings
	for _, w := range res.Warnings {
		log.Warn("crease pattern", "warning", w.Message)
	}

	var out staged
	defer out.discard()

	rep.ModelPath = a.path(a.cfg.ModelOut)
	if err := out.write(rep.ModelPath, func(w io.Writer) error {
		return model.Persist(m, w)
	}); err != nil {
		return nil, err
	}

	rep.DiagramPath = a.path(a.cfg.DiagramOut)
	if err := out.write(rep.DiagramPath, func(w io.Writer) (err error) {
		rep.Diagram, err = diagram.Export(g, w, diagram.Options{
			Size:             a.cfg.Canvas,
			LegacyKindColors: a.cfg.LegacyKindColors,
			Workers:          a.cfg.Workers,
		})
		return err
	}); err != nil {
		return nil, err
	}

	if err := out.commit(); err != nil {
		return nil, err
	}

	log.Info("exported",
		"creases", g.Len(),
		"lines", rep.Diagram.LineCount(),
		"mode", rep.Diagram.Mode,
		"border", rep.Diagram.HasBorder(),
		"diagram", rep.DiagramPath,
	)
	return rep, nil
}

func (a *App) load(name string) (*model.Model, error) {
	f, err := os.Open(a.path(name))
	if err != nil {
		return nil, &engine.LoadError{Name: name, Err: err}
	}
	defer f.Close()
	return a.engine.Load(name, f)
}

func (a *App) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.BaseDir, name)
}

// staged holds outputs written to temporary files beside their
// destinations. Nothing appears under a destination name until commit.
type staged struct {
	tmp, dst []string
}

// write creates a temporary file for path and hands it to fill.
func (s *staged) write(path string, fill func(io.Writer) error) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	s.tmp = append(s.tmp, f.Name())
	s.dst = append(s.dst, path)

	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// commit renames every staged file to its destination.
func (s *staged) commit() error {
	for i, tmp := range s.tmp {
		if err := os.Rename(tmp, s.dst[i]); err != nil {
			return err
		}
		s.tmp[i] = ""
	}
	return nil
}

// discard removes staged files that were not committed.
func (s *staged) discard() {
	for _, tmp := range s.tmp {
		if tmp != "" {
			os.Remove(tmp)
		}
	}
}

func errorList(errs []graph.ValidationError) []error {
	out := make([]error, len(errs))
	for i, e := range errs {
		out[i] = e
	}
	return out
}
