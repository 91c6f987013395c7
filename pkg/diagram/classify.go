package diagram

import "github.com/chazu/pleat/pkg/graph"

// Color is a stroke or fill colour written as #RRGGBB.
type Color string

const (
	Red       Color = "#FF0000"
	Blue      Color = "#0000FF"
	Black     Color = "#000000"
	LightGray Color = "#CCCCCC"
	White     Color = "#FFFFFF"
)

// Mode selects how creases are coloured.
type Mode int

const (
	ModeFold Mode = iota // by fold direction (primary)
	ModeKind             // by structural kind (fallback)
)

func (m Mode) String() string {
	switch m {
	case ModeFold:
		return "fold"
	case ModeKind:
		return "kind"
	default:
		return "unknown"
	}
}

// FoldColor returns the colour of a crease with the given fold. Every fold
// has a colour.
func FoldColor(f graph.Fold) Color {
	switch f {
	case graph.FoldValley:
		return Red
	case graph.FoldMountain:
		return Blue
	case graph.FoldBorder:
		return Black
	default:
		return LightGray
	}
}

// KindColor returns the colour of a crease with the given kind. With legacy
// set, ridges share the gusset colour as older diagrams did.
func KindColor(k graph.Kind, legacy bool) Color {
	switch k {
	case graph.KindRidge:
		if legacy {
			return Blue
		}
		return Red
	case graph.KindGusset:
		return Blue
	default:
		return LightGray
	}
}

// Tally holds the counters of one export invocation.
type Tally struct {
	Creases int // creases rendered
	Borders int // creases classified as border in fold mode
}

// Add returns the element-wise sum of t and o.
func (t Tally) Add(o Tally) Tally {
	return Tally{Creases: t.Creases + o.Creases, Borders: t.Borders + o.Borders}
}

// Classifier colours creases in one mode and counts what it renders.
type Classifier struct {
	Mode             Mode
	LegacyKindColors bool
}

// Classify returns the colour of c and records it in t.
func (cl Classifier) Classify(c *graph.Crease, t *Tally) Color {
	var color Color
	switch cl.Mode {
	case ModeKind:
		color = KindColor(c.Kind, cl.LegacyKindColors)
	default:
		color = FoldColor(c.Fold)
		if c.Fold == graph.FoldBorder {
			t.Borders++
		}
	}
	t.Creases++
	return color
}
