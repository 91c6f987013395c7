package graph

import (
	"strings"
	"testing"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning returns true if errs contains a warning-severity finding whose
// message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateValidGraph(t *testing.T) {
	errs := Validate(buildTriangle())
	if len(errs) != 0 {
		t.Fatalf("expected no findings, got %v", errs)
	}
}

func TestValidateEmptyGraph(t *testing.T) {
	if errs := Validate(New()); len(errs) != 0 {
		t.Fatalf("expected no findings for empty graph, got %v", errs)
	}
}

func TestValidateNilGraph(t *testing.T) {
	if errs := Validate(nil); len(errs) != 0 {
		t.Errorf("Validate(nil) = %v, want no findings", errs)
	}
	res := ValidateAll(nil)
	if !res.OK() || len(res.Warnings) != 0 {
		t.Errorf("ValidateAll(nil) = %+v, want an empty result", res)
	}
}

func TestValidateDanglingEndpoint(t *testing.T) {
	g := buildTriangle()
	g.AddCrease(4, KindRidge, FoldValley, 0, 7)

	errs := Validate(g)
	if !hasError(errs, "vertex index 7") {
		t.Fatalf("expected dangling endpoint error, got %v", errs)
	}
	if errs[0].Crease != 3 {
		t.Errorf("finding crease = %d, want 3", errs[0].Crease)
	}
}

func TestValidateNegativeEndpoint(t *testing.T) {
	g := buildTriangle()
	g.AddCrease(4, KindRidge, FoldValley, -1, 0)
	if !hasError(Validate(g), "vertex index -1") {
		t.Fatal("expected negative endpoint error")
	}
}

func TestValidateSelfLoop(t *testing.T) {
	g := buildTriangle()
	g.AddCrease(4, KindRidge, FoldValley, 1, 1)
	if !hasError(Validate(g), "both endpoints") {
		t.Fatal("expected self-loop error")
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	g := buildTriangle()
	g.AddVertex(1, v2.Vec{X: 0.5, Y: 0.5})
	g.AddCrease(2, KindAxial, FoldFlat, 0, 3)

	errs := Validate(g)
	if !hasWarning(errs, "duplicate vertex id 1") {
		t.Errorf("expected duplicate vertex warning, got %v", errs)
	}
	if !hasWarning(errs, "duplicate crease id 2") {
		t.Errorf("expected duplicate crease warning, got %v", errs)
	}
	if hasError(errs, "duplicate") {
		t.Error("duplicate IDs must not block export")
	}
}

func TestValidateAllSeparatesSeverities(t *testing.T) {
	g := buildTriangle()
	g.AddVertex(1, v2.Vec{X: 0.5, Y: 0.5})

	res := ValidateAll(g)
	if !res.OK() {
		t.Fatalf("expected no errors, got %v", res.Errors)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", res.Warnings)
	}
}

func TestValidationErrorString(t *testing.T) {
	e := ValidationError{Crease: 2, Message: "bad", Severity: SeverityError}
	if got := e.Error(); got != "[error] crease 2: bad" {
		t.Errorf("Error() = %q", got)
	}
	e = ValidationError{Crease: -1, Message: "dup", Severity: SeverityWarning}
	if got := e.Error(); got != "[warning] dup" {
		t.Errorf("Error() = %q", got)
	}
	if got := ValidationSeverity(9).String(); got != "ValidationSeverity(9)" {
		t.Errorf("String() = %q", got)
	}
}
