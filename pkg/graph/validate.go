package graph

import "fmt"

// ValidationSeverity indicates whether a validation finding blocks export
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks export
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding. Crease is the index
// of the offending crease, or -1 for findings that are not about a crease.
type ValidationError struct {
	Crease   int
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Crease < 0 {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] crease %d: %s", e.Severity, e.Crease, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Crease  int
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory)
// from all validation tiers.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether the result has no blocking errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate runs the Tier 1 structural checks on the crease graph and returns
// the findings. An empty slice means the graph is valid; a nil graph is an
// empty graph. This function is read-only and never mutates the graph.
func Validate(g *CreaseGraph) []ValidationError {
	if g == nil {
		return nil
	}
	var errs []ValidationError
	errs = append(errs, validateEndpoints(g)...)
	errs = append(errs, validateIDs(g)...)
	return errs
}

// ValidateAll runs all validation tiers (structural, geometric) and returns
// a ValidationResult with separated errors and warnings.
func ValidateAll(g *CreaseGraph) ValidationResult {
	var result ValidationResult
	if g == nil {
		return result
	}
	for _, e := range Validate(g) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Crease:  e.Crease,
				Message: e.Message,
			})
		} else {
			result.Errors = append(result.Errors, e)
		}
	}

	// Geometry checks index vertices, so they only run on a sound graph.
	if len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, validateGeometry(g)...)
	}
	return result
}

// validateEndpoints checks that every crease resolves to exactly two
// distinct, existing vertices.
func validateEndpoints(g *CreaseGraph) []ValidationError {
	var errs []ValidationError
	n := len(g.Vertices)

	g.Each(func(i int, c *Crease) {
		for end, vi := range c.V {
			if vi < 0 || vi >= n {
				errs = append(errs, ValidationError{
					Crease:   i,
					Message:  fmt.Sprintf("endpoint %d references vertex index %d, graph has %d vertices", end, vi, n),
					Severity: SeverityError,
				})
			}
		}
		if c.V[0] == c.V[1] {
			errs = append(errs, ValidationError{
				Crease:   i,
				Message:  fmt.Sprintf("both endpoints reference vertex index %d", c.V[0]),
				Severity: SeverityError,
			})
		}
	})

	return errs
}

// validateIDs checks that vertex and crease IDs are unique. Duplicates are
// warnings: export never looks vertices up by ID.
func validateIDs(g *CreaseGraph) []ValidationError {
	var errs []ValidationError

	seen := make(map[int]bool, len(g.Vertices))
	for _, v := range g.Vertices {
		if seen[v.ID] {
			errs = append(errs, ValidationError{
				Crease:   -1,
				Message:  fmt.Sprintf("duplicate vertex id %d", v.ID),
				Severity: SeverityWarning,
			})
		}
		seen[v.ID] = true
	}

	creaseIDs := make(map[int]int, len(g.Creases))
	g.Each(func(i int, c *Crease) {
		if first, ok := creaseIDs[c.ID]; ok {
			errs = append(errs, ValidationError{
				Crease:   i,
				Message:  fmt.Sprintf("duplicate crease id %d (first used by crease %d)", c.ID, first),
				Severity: SeverityWarning,
			})
			return
		}
		creaseIDs[c.ID] = i
	})

	return errs
}
