package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/pleat/pkg/graph"
	"github.com/chazu/pleat/pkg/model"
	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpVec2 wraps a model-space point returned by `vec2`.
type sexpVec2 struct {
	vec v2.Vec
}

func (v *sexpVec2) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec2 %g %g)", v.vec.X, v.vec.Y)
}
func (v *sexpVec2) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok || !strings.HasPrefix(str.S, kwPrefix) {
		return "", false
	}
	return str.S[len(kwPrefix):], true
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a SexpInt or SexpFloat.
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts an integer ID.
func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, err := toString(s)
	if err != nil {
		return "", fmt.Errorf("expected keyword or string: %w", err)
	}
	return strings.TrimPrefix(str, kwPrefix), nil
}

// toVec2 extracts a point from a sexpVec2.
func toVec2(s zygo.Sexp) (v2.Vec, error) {
	if v, ok := s.(*sexpVec2); ok {
		return v.vec, nil
	}
	return v2.Vec{}, fmt.Errorf("expected vec2, got %T (%s)", s, s.SexpString(nil))
}

func toKind(s zygo.Sexp) (graph.Kind, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	return graph.ParseKind(name)
}

func toFold(s zygo.Sexp) (graph.Fold, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, err
	}
	return graph.ParseFold(name)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the model DSL into a zygomys environment. The
// builtins populate m during evaluation; references must name items that
// were declared earlier in the source.
//
// Source must be preprocessed with preprocessSource() so that :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, m *model.Model) {
	nodes := make(map[int]bool)
	vertices := make(map[int]bool)

	// (model "name" :scale 0.25)
	env.AddFunction("model", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) > 0 {
			s, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("model: name: %w", err)
			}
			m.Name = s
		}
		if v, ok := pa.kw["scale"]; ok {
			f, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("model: scale: %w", err)
			}
			if f < 0 {
				return zygo.SexpNull, fmt.Errorf("model: scale %g is negative", f)
			}
			m.Scale = f
		}
		return zygo.SexpNull, nil
	})

	// (vec2 0.5 0.25)
	env.AddFunction("vec2", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("vec2 requires exactly 2 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec2: y: %w", err)
		}
		return &sexpVec2{vec: v2.Vec{X: x, Y: y}}, nil
	})

	// (node 1 :at (vec2 0.5 0.5))
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("node requires an id")
		}
		id, err := toInt(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: id: %w", err)
		}
		if nodes[id] {
			return zygo.SexpNull, fmt.Errorf("node: duplicate id %d", id)
		}
		var loc v2.Vec
		if v, ok := pa.kw["at"]; ok {
			if loc, err = toVec2(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("node %d: at: %w", id, err)
			}
		}
		nodes[id] = true
		m.AddNode(id, loc)
		return zygo.SexpNull, nil
	})

	// (edge 1 2 :length 1.5)
	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("edge requires two node ids")
		}
		a, err := toInt(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: a: %w", err)
		}
		b, err := toInt(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("edge: b: %w", err)
		}
		if !nodes[a] || !nodes[b] {
			return zygo.SexpNull, fmt.Errorf("edge %d-%d: undeclared node", a, b)
		}
		length := 1.0
		if v, ok := pa.kw["length"]; ok {
			if length, err = toFloat64(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("edge %d-%d: length: %w", a, b, err)
			}
		}
		if length <= 0 {
			return zygo.SexpNull, fmt.Errorf("edge %d-%d: length %g must be positive", a, b, length)
		}
		m.AddEdge(a, b, length)
		return zygo.SexpNull, nil
	})

	// (vertex 1 :at (vec2 0 0)) or (vertex 2 :node 3)
	env.AddFunction("vertex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("vertex requires an id")
		}
		id, err := toInt(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertex: id: %w", err)
		}
		if vertices[id] {
			return zygo.SexpNull, fmt.Errorf("vertex: duplicate id %d", id)
		}

		at, hasAt := pa.kw["at"]
		bound, hasNode := pa.kw["node"]
		if hasAt == hasNode {
			return zygo.SexpNull, fmt.Errorf("vertex %d: exactly one of :at or :node is required", id)
		}

		vd := model.VertexDef{ID: id}
		if hasAt {
			if vd.Loc, err = toVec2(at); err != nil {
				return zygo.SexpNull, fmt.Errorf("vertex %d: at: %w", id, err)
			}
		} else {
			if vd.Node, err = toInt(bound); err != nil {
				return zygo.SexpNull, fmt.Errorf("vertex %d: node: %w", id, err)
			}
			if !nodes[vd.Node] {
				return zygo.SexpNull, fmt.Errorf("vertex %d: undeclared node %d", id, vd.Node)
			}
		}

		vertices[id] = true
		m.AddVertex(vd)
		return zygo.SexpNull, nil
	})

	// (crease 1 2 :kind :ridge :fold :valley)
	env.AddFunction("crease", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("crease requires two vertex ids")
		}
		a, err := toInt(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("crease: a: %w", err)
		}
		b, err := toInt(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("crease: b: %w", err)
		}
		if !vertices[a] || !vertices[b] {
			return zygo.SexpNull, fmt.Errorf("crease %d-%d: undeclared vertex", a, b)
		}
		if a == b {
			return zygo.SexpNull, fmt.Errorf("crease %d-%d: endpoints must differ", a, b)
		}

		kind, fold := graph.KindAxial, graph.FoldFlat
		if v, ok := pa.kw["kind"]; ok {
			if kind, err = toKind(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("crease %d-%d: %w", a, b, err)
			}
		}
		if v, ok := pa.kw["fold"]; ok {
			if fold, err = toFold(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("crease %d-%d: %w", a, b, err)
			}
		}

		m.AddCrease(a, b, kind, fold)
		return zygo.SexpNull, nil
	})
}
