package graph

import (
	"fmt"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Kind enumerates the structural categories of a crease.
type Kind int

const (
	KindAxial          Kind = iota // axial polygon edge
	KindGusset                     // gusset between active paths
	KindRidge                      // ridge line
	KindUnfoldedHinge              // hinge between unfolded facets
	KindFoldedHinge                // hinge between folded facets
	KindPseudohinge                // pseudohinge
)

var kindNames = [...]string{
	KindAxial:         "axial",
	KindGusset:        "gusset",
	KindRidge:         "ridge",
	KindUnfoldedHinge: "unfolded-hinge",
	KindFoldedHinge:   "folded-hinge",
	KindPseudohinge:   "pseudohinge",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind returns the Kind with the given name. Matching ignores case and
// accepts underscores in place of hyphens.
func ParseKind(name string) (Kind, error) {
	n := normalizeName(name)
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("graph: unknown crease kind %q", name)
}

// Fold is the fold direction (or role) of a crease.
type Fold int

const (
	FoldFlat     Fold = iota // unfolded
	FoldMountain             // mountain fold
	FoldValley               // valley fold
	FoldBorder               // edge of the paper
)

var foldNames = [...]string{
	FoldFlat:     "flat",
	FoldMountain: "mountain",
	FoldValley:   "valley",
	FoldBorder:   "border",
}

func (f Fold) String() string {
	if f >= 0 && int(f) < len(foldNames) {
		return foldNames[f]
	}
	return "unknown"
}

// ParseFold returns the Fold with the given name.
func ParseFold(name string) (Fold, error) {
	n := normalizeName(name)
	for f, s := range foldNames {
		if s == n {
			return Fold(f), nil
		}
	}
	return 0, fmt.Errorf("graph: unknown fold %q", name)
}

func normalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}

// Vertex is a point of the crease pattern in model space. Coordinates are
// nominally in the unit square but are not clamped.
type Vertex struct {
	ID  int    `json:"id"`
	Loc v2.Vec `json:"loc"`
}

// Crease is an edge of the crease pattern. V holds indices into the owning
// graph's Vertices slice; a crease never owns its endpoints.
type Crease struct {
	ID   int    `json:"id"`
	Kind Kind   `json:"kind"`
	Fold Fold   `json:"fold"`
	V    [2]int `json:"v"`
}
