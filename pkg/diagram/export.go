package diagram

import (
	"fmt"
	"io"
	"runtime"

	"github.com/chazu/pleat/pkg/graph"
	"golang.org/x/sync/errgroup"
)

// parallelThreshold is the crease count below which the fold pass always
// runs sequentially.
const parallelThreshold = 4096

// Options configures an export. Zero values select the defaults.
type Options struct {
	Size             float64 // canvas edge; DefaultSize if zero
	LegacyKindColors bool    // ridge and gusset share blue in kind mode
	Workers          int     // fold pass concurrency; <= 1 is sequential, capped at GOMAXPROCS
}

func (o Options) withDefaults() Options {
	if o.Size == 0 {
		o.Size = DefaultSize
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}

// Build classifies and projects every crease of g and applies the fallback
// policy. The fold pass runs first; if it found no border a full-canvas
// rectangle is added, and if it rendered nothing the lines are regenerated
// in kind mode. The rectangle survives the kind pass.
func Build(g *graph.CreaseGraph, opts Options) *Diagram {
	opts = opts.withDefaults()
	proj := Projector{Size: opts.Size}
	log := Logger()

	d := &Diagram{Size: opts.Size, Mode: ModeFold}
	d.Lines, d.Tally = foldPass(g, proj, opts.Workers)

	if NeedsBorder(d.Tally) {
		r := BorderRect(opts.Size)
		d.Border = &r
		log.Info("no border creases, adding border rectangle", "size", opts.Size)
	}

	if NeedsKindPass(d.Tally) {
		log.Info("fold pass rendered no creases, reclassifying by kind", "creases", g.Len())
		cl := Classifier{Mode: ModeKind, LegacyKindColors: opts.LegacyKindColors}
		var t Tally
		d.Lines = make([]Line, g.Len())
		classifyRange(g, proj, cl, d.Lines, 0, g.Len(), &t)
		d.Mode = ModeKind
	}

	return d
}

// Export builds the diagram for g and writes it to w. A write failure is
// returned to the caller; nothing is retried.
func Export(g *graph.CreaseGraph, w io.Writer, opts Options) (*Diagram, error) {
	d := Build(g, opts)
	if err := WriteDiagram(w, d); err != nil {
		return nil, fmt.Errorf("diagram: export %d creases: %w", g.Len(), err)
	}
	return d, nil
}

// foldPass classifies all creases in fold mode. Large graphs are split into
// contiguous chunks classified concurrently; each chunk writes its own
// region of the result so crease order is preserved.
func foldPass(g *graph.CreaseGraph, proj Projector, workers int) ([]Line, Tally) {
	n := g.Len()
	lines := make([]Line, n)
	cl := Classifier{Mode: ModeFold}

	if workers <= 1 || n < parallelThreshold {
		var t Tally
		classifyRange(g, proj, cl, lines, 0, n, &t)
		return lines, t
	}

	// More workers than cores or creases only adds empty chunks.
	workers = min(workers, runtime.GOMAXPROCS(0), n)
	chunk := (n + workers - 1) / workers
	tallies := make([]Tally, workers)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for w := 0; w < workers; w++ {
		lo, hi := w*chunk, min((w+1)*chunk, n)
		if lo >= hi {
			break
		}
		t := &tallies[w]
		eg.Go(func() error {
			classifyRange(g, proj, cl, lines, lo, hi, t)
			return nil
		})
	}
	_ = eg.Wait() // classification cannot fail

	var total Tally
	for _, t := range tallies {
		total = total.Add(t)
	}
	return lines, total
}

// classifyRange classifies creases [lo, hi) of g into dst[lo:hi].
func classifyRange(g *graph.CreaseGraph, proj Projector, cl Classifier, dst []Line, lo, hi int, t *Tally) {
	log := Logger()
	for i := lo; i < hi; i++ {
		c := &g.Creases[i]
		log.Debug("crease", "index", i, "kind", c.Kind, "fold", c.Fold, "mode", cl.Mode)

		p1, p2 := g.Endpoints(c)
		dst[i] = Line{
			Stroke: cl.Classify(c, t),
			P1:     proj.Project(p1),
			P2:     proj.Project(p2),
		}
	}
}
