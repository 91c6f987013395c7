package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/pleat/pkg/diagram"
	"github.com/chazu/pleat/pkg/engine"
	"github.com/chazu/pleat/pkg/optimize"
)

// stage copies the example model into a fresh base directory.
func stage(t *testing.T) string {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("examples", DefaultModel))
	if err != nil {
		t.Fatalf("failed to read example model: %v", err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, DefaultModel), src, 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func newTestApp(t *testing.T, dir string, edit func(*Config)) *App {
	t.Helper()
	cfg := Defaults()
	cfg.BaseDir = dir
	if edit != nil {
		edit(&cfg)
	}
	app, err := NewApp(cfg, nil)
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

// TestE2EExampleModel runs the whole pipeline on the bundled example:
// model source → engine → optimizer → crease pattern → files.
func TestE2EExampleModel(t *testing.T) {
	dir := stage(t)
	app := newTestApp(t, dir, nil)

	rep, err := app.Export(DefaultModel)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if rep.OptimizeErr != nil {
		t.Fatalf("unexpected optimization failure: %v", rep.OptimizeErr)
	}
	if rep.Model != "four-flap star" {
		t.Errorf("model = %q", rep.Model)
	}
	// The four leaves are pushed into the corners of the sheet.
	if rep.Scale < 0.5-1e-9 || rep.Scale > 0.5+1e-9 {
		t.Errorf("scale = %v, want 0.5", rep.Scale)
	}

	if rep.Diagram.LineCount() != 16 {
		t.Errorf("lines = %d, want 16", rep.Diagram.LineCount())
	}
	if rep.Diagram.Mode != diagram.ModeFold {
		t.Errorf("mode = %v, want fold", rep.Diagram.Mode)
	}
	if rep.Diagram.HasBorder() {
		t.Error("model has border creases; no border rectangle expected")
	}

	svg, err := os.ReadFile(filepath.Join(dir, "example.svg"))
	if err != nil {
		t.Fatalf("diagram not written: %v", err)
	}
	text := string(svg)
	if !strings.HasPrefix(text, "<svg xmlns=\"http://www.w3.org/2000/svg\">\n") || !strings.HasSuffix(text, "</svg>\n") {
		t.Errorf("unexpected document framing:\n%s", text)
	}
	if got := strings.Count(text, "<line "); got != 16 {
		t.Errorf("document has %d lines, want 16", got)
	}
	for _, c := range []diagram.Color{diagram.Red, diagram.Blue, diagram.Black, diagram.LightGray} {
		if !strings.Contains(text, `stroke="`+string(c)+`"`) {
			t.Errorf("no line stroked %s", c)
		}
	}
	if !strings.Contains(text, `x1="0" y1="0" x2="2000" y2="0"`) {
		t.Error("border crease not projected onto the canvas edge")
	}
}

// TestE2EPersistedModelReloads checks that the model snapshot is valid
// source and that exporting it again reproduces the same diagram.
func TestE2EPersistedModelReloads(t *testing.T) {
	dir := stage(t)
	app := newTestApp(t, dir, nil)

	first, err := app.Export(DefaultModel)
	if err != nil {
		t.Fatalf("first export: %v", err)
	}
	svg1, _ := os.ReadFile(filepath.Join(dir, "example.svg"))

	f, err := os.Open(first.ModelPath)
	if err != nil {
		t.Fatalf("model snapshot not written: %v", err)
	}
	m, err := engine.NewEngine().Load("example.tmd5", f)
	f.Close()
	if err != nil {
		t.Fatalf("snapshot does not reload: %v", err)
	}
	if m.Scale != first.Scale {
		t.Errorf("snapshot scale = %v, want %v", m.Scale, first.Scale)
	}

	second, err := app.Export("example.tmd5")
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	svg2, _ := os.ReadFile(filepath.Join(dir, "example.svg"))
	if string(svg1) != string(svg2) {
		t.Errorf("re-export differs:\n%s\n---\n%s", svg1, svg2)
	}
	if second.Scale != first.Scale {
		t.Errorf("second scale = %v, want %v", second.Scale, first.Scale)
	}
}

// TestE2EFixedEngine keeps the leaves where the model puts them.
func TestE2EFixedEngine(t *testing.T) {
	dir := stage(t)
	app := newTestApp(t, dir, func(c *Config) { c.Engine = EngineFixed })

	rep, err := app.Export(DefaultModel)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if rep.Scale < 0.3-1e-9 || rep.Scale > 0.3+1e-9 {
		t.Errorf("scale = %v, want 0.3", rep.Scale)
	}
}

// TestE2ELoadFailureWritesNothing: a missing model is fatal and leaves the
// base directory untouched.
func TestE2ELoadFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	app := newTestApp(t, dir, nil)

	_, err := app.Export("missing.tmd5")
	var le *engine.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *engine.LoadError, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist cause, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no output files, found %d", len(entries))
	}
}

// TestE2EOptimizeFailureStillExports: a model without a tree cannot be
// optimized, but its crease pattern is still written.
func TestE2EOptimizeFailureStillExports(t *testing.T) {
	dir := t.TempDir()
	src := `(model "flat" :scale 0.5)
(vertex 1 :at (vec2 0 0))
(vertex 2 :at (vec2 1 1))
(crease 1 2 :kind :ridge :fold :valley)
`
	if err := os.WriteFile(filepath.Join(dir, "flat.tmd5"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	app := newTestApp(t, dir, nil)

	rep, err := app.Export("flat.tmd5")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var bce *optimize.BadConvergenceError
	if !errors.As(rep.OptimizeErr, &bce) {
		t.Fatalf("expected bad convergence, got %v", rep.OptimizeErr)
	}
	if rep.Scale != 0.5 {
		t.Errorf("scale = %v, want the loaded 0.5", rep.Scale)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "example.svg"))
	if err != nil {
		t.Fatalf("diagram not written: %v", err)
	}
	want := "<svg xmlns=\"http://www.w3.org/2000/svg\">\n" +
		"<line stroke=\"#FF0000\" x1=\"0\" y1=\"0\" x2=\"2000\" y2=\"2000\" />\n" +
		"<rect x=\"0\" y=\"0\" fill=\"#FFFFFF\" stroke=\"#000000\" width=\"2000\" height=\"2000\" />\n" +
		"</svg>\n"
	if string(svg) != want {
		t.Errorf("diagram:\n%s\nwant:\n%s", svg, want)
	}
}
