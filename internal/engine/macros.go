package engine

import (
	"dj/internal/ast"
	"dj/internal/errdiag"
)

// macroStep implements `do NAME`: run the macro's compiled body as a
// nested pipeline, inlining it at this position (spec §9 "Macro call").
type macroStep struct {
	body *compiledPipeline
}

func (m *macroStep) Run(entries []string) []string {
	return m.body.runList(entries)
}

// macroRefs collects the names every `do NAME` reachable from ops refers
// to, recursing into set-redirect bodies and combinator subops the same
// way compileOperation itself will (spec §9 "Macro call" is inlined
// wherever it's referenced, however deeply nested).
func macroRefs(ops []ast.Operation) []string {
	var refs []string
	var walk func(op ast.Operation)
	walk = func(op ast.Operation) {
		switch n := op.(type) {
		case *ast.MacroCall:
			refs = append(refs, n.Name)
		case *ast.SetRedirect:
			walk(n.Inner)
		case *ast.Combinator:
			for _, sub := range n.Subops {
				walk(sub)
			}
		}
	}
	for _, op := range ops {
		walk(op)
	}
	return refs
}

// detectMacroCycle rejects a (transitively) self-referential macro at
// Build time (spec §9), a case no Python source needed to guard against
// since dj_ast.py inlines macros at parse time without a cycle check.
// Classic white/gray/black DFS over the name -> referenced-names graph.
func detectMacroCycle(defs map[string]*ast.MacroDef) error {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(defs))

	var visit func(name string) error
	visit = func(name string) error {
		switch color[name] {
		case black:
			return nil
		case gray:
			def := defs[name]
			return buildErrorf(def.Pos, errdiag.ErrorRecursiveMacro, "macro %q is self-referential", name)
		}
		def, ok := defs[name]
		if !ok {
			return nil // unknown macro reported later, at the call site
		}
		color[name] = gray
		for _, ref := range macroRefs(def.Pipeline.Ops) {
			if err := visit(ref); err != nil {
				return err
			}
		}
		color[name] = black
		return nil
	}

	for name := range defs {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}
