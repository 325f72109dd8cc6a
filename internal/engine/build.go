package engine

import (
	"fmt"

	"dj/internal/ast"
	"dj/internal/config"
	"dj/internal/diag"
	"dj/internal/errdiag"
	"dj/internal/ops"
	"dj/internal/oracle"
)

// Options are the external collaborators and CLI flags Build and the
// running Program need, beyond the parsed source itself.
type Options struct {
	Oracle oracle.Oracle
	Unique bool // -u: reporters persist dedup state across entries
	Logger *diag.Logger
}

// Program is a built, runnable transform program (spec §3 "Program
// (TDUnit)"): every top-level pipeline, the named-set arena and the
// reporter registry a run needs, plus every resource Build opened.
type Program struct {
	pipelines []*compiledPipeline
	ignored   map[string]bool
	sets      *setArena
	reporters *reporterRegistry
	closers   []func() error
}

// globalListOp is implemented by glist_in/glist_drop: their Refresh
// method rebinds the operation to a named set's current contents before
// every invocation, since a global list backed by a set can grow as
// earlier pipelines store into it within the same entry (spec §5).
type globalListOp interface {
	Refresh(entries []string)
}

// builder holds the state threaded through one Build call's compilation.
type builder struct {
	deps       ops.Deps
	sets       *setArena
	reporters  *reporterRegistry
	logger     *diag.Logger
	ignored    map[string]bool
	macroDefs  map[string]*ast.MacroDef
	macroCache map[string]*macroResult
	macroStack map[string]bool
	closers    []func() error
}

type macroResult struct {
	pipeline *compiledPipeline
	category ops.Category
}

// Build compiles a parsed program (spec §3's Parse -> Init lifecycle
// stage). Every failure aborts before any dictionary entry is read,
// mirroring DJ.py's ComplexOperation/Operation init passes.
func Build(prog *ast.Program, opts Options) (*Program, error) {
	return build(prog, opts, newReporterRegistry(opts.Unique))
}

// build is Build's implementation, taking an already-constructed
// reporterRegistry so tests can capture `report`'s stdout output instead
// of writing to the process's real stdout.
func build(prog *ast.Program, opts Options, reporters *reporterRegistry) (*Program, error) {
	ignored := map[string]bool{}
	for _, ig := range prog.Ignores {
		lines, err := ops.ReadLines(ig.Path)
		if err != nil {
			return nil, buildErrorf(ig.Pos, errdiag.ErrorOutputIO, "cannot read ignore file %q: %v", ig.Path, err)
		}
		for _, l := range lines {
			ignored[l] = true
		}
	}

	seenSets := map[string]bool{}
	setNames := make([]string, 0, len(prog.Sets))
	for _, s := range prog.Sets {
		if seenSets[s.Name] {
			return nil, buildErrorf(s.Pos, errdiag.ErrorDuplicateDeclaration, "set %q is already declared", s.Name)
		}
		seenSets[s.Name] = true
		setNames = append(setNames, s.Name)
	}
	sets := newSetArena(setNames)

	macroDefs := map[string]*ast.MacroDef{}
	for _, m := range prog.Macros {
		if _, dup := macroDefs[m.Name]; dup {
			return nil, buildErrorf(m.Pos, errdiag.ErrorDuplicateDeclaration, "macro %q is already declared", m.Name)
		}
		macroDefs[m.Name] = m
	}
	if err := detectMacroCycle(macroDefs); err != nil {
		return nil, err
	}

	for _, cfg := range prog.Configs {
		if err := config.Default.Set(cfg.Module, cfg.Field, cfg.Value); err != nil {
			code := errdiag.ErrorUnknownConfigField
			if _, ok := err.(*config.TypeMismatchError); ok {
				code = errdiag.ErrorConfigTypeMismatch
			}
			return nil, buildErrorf(cfg.Pos, code, "%v", err)
		}
	}

	b := &builder{
		deps: ops.Deps{
			Oracle: opts.Oracle,
			GlobalLists: func(name string) ([]string, bool) {
				if !sets.has(name) {
					return nil, false
				}
				return sets.snapshot(name), true
			},
		},
		sets:       sets,
		reporters:  reporters,
		logger:     opts.Logger,
		ignored:    ignored,
		macroDefs:  macroDefs,
		macroCache: map[string]*macroResult{},
		macroStack: map[string]bool{},
	}

	pipelines := make([]*compiledPipeline, 0, len(prog.Pipelines))
	for _, pl := range prog.Pipelines {
		cp, err := b.compilePipeline(pl)
		if err != nil {
			return nil, err
		}
		pipelines = append(pipelines, cp)
	}

	return &Program{
		pipelines: pipelines,
		ignored:   ignored,
		sets:      sets,
		reporters: b.reporters,
		closers:   b.closers,
	}, nil
}

// IsIgnored reports whether entry was present in any `ignore` file (spec
// §5: the driver checks this before an entry reaches any pipeline).
func (p *Program) IsIgnored(entry string) bool { return p.ignored[entry] }

// ProcessEntry runs every top-level pipeline against one input entry,
// after clearing per-entry state: named sets always clear (spec §5);
// reporters clear unless the run is in unique mode.
func (p *Program) ProcessEntry(entry string) {
	p.sets.clear()
	p.reporters.nextEntry()
	for _, pl := range p.pipelines {
		pl.runList([]string{entry})
	}
}

// Close flushes and releases every resource Build opened: operations
// with state to release, and every `write` target's file handle.
func (p *Program) Close() error {
	var firstErr error
	for _, c := range p.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := p.reporters.close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (b *builder) compilePipeline(pl *ast.Pipeline) (*compiledPipeline, error) {
	steps := make([]compiledStep, 0, len(pl.Ops))
	for _, op := range pl.Ops {
		step, _, label, err := b.compileOperation(op)
		if err != nil {
			return nil, err
		}
		steps = append(steps, compiledStep{label: label, step: step})
	}
	return &compiledPipeline{steps: steps, ignored: b.ignored, logger: b.logger}, nil
}

// compileOperation compiles one ast.Operation node into a Step, also
// returning its Category (spec §4.3) so a caller composing it into a
// combinator or macro can validate or inherit that category.
func (b *builder) compileOperation(op ast.Operation) (Step, ops.Category, string, error) {
	switch n := op.(type) {
	case *ast.Call:
		return b.compileCall(n)
	case *ast.SetRedirect:
		return b.compileSetRedirect(n)
	case *ast.Combinator:
		return b.compileCombinator(n)
	case *ast.MacroCall:
		return b.compileMacroCall(n)
	case *ast.UseSet:
		if !b.sets.has(n.Name) {
			return nil, 0, "", buildErrorf(n.Pos, errdiag.ErrorUnknownSet, "set %q is not declared", n.Name)
		}
		return &useSetStep{name: n.Name, sets: b.sets}, ops.CategoryMeta, n.String(), nil
	default:
		return nil, 0, "", fmt.Errorf("engine: unhandled operation node %T", op)
	}
}

func (b *builder) compileMacroCall(n *ast.MacroCall) (Step, ops.Category, string, error) {
	if _, ok := b.macroDefs[n.Name]; !ok {
		return nil, 0, "", buildErrorf(n.Pos, errdiag.ErrorUnknownMacro, "macro %q is not declared", n.Name)
	}
	r, err := b.compileMacro(n.Name)
	if err != nil {
		return nil, 0, "", err
	}
	return &macroStep{body: r.pipeline}, r.category, n.String(), nil
}

// compileMacro compiles (and memoizes) one macro's body, lazily, so a
// `do` call reached while compiling a different macro or pipeline reuses
// the same *compiledPipeline. detectMacroCycle has already ruled out
// infinite recursion; macroStack is a defensive backstop only.
func (b *builder) compileMacro(name string) (*macroResult, error) {
	if r, ok := b.macroCache[name]; ok {
		return r, nil
	}
	if b.macroStack[name] {
		return nil, fmt.Errorf("engine: macro %q recursed despite cycle check", name)
	}
	b.macroStack[name] = true
	defer delete(b.macroStack, name)

	def := b.macroDefs[name]
	steps := make([]compiledStep, 0, len(def.Pipeline.Ops))
	var lastCategory ops.Category
	for _, op := range def.Pipeline.Ops {
		step, category, label, err := b.compileOperation(op)
		if err != nil {
			return nil, err
		}
		steps = append(steps, compiledStep{label: label, step: step})
		lastCategory = category
	}
	r := &macroResult{
		pipeline: &compiledPipeline{steps: steps, ignored: b.ignored, logger: b.logger},
		category: lastCategory,
	}
	b.macroCache[name] = r
	return r, nil
}

func (b *builder) compileSetRedirect(r *ast.SetRedirect) (Step, ops.Category, string, error) {
	if !b.sets.has(r.Set) {
		return nil, 0, "", buildErrorf(r.Pos, errdiag.ErrorUnknownSet, "set %q is not declared", r.Set)
	}
	innerStep, category, innerLabel, err := b.compileOperation(r.Inner)
	if err != nil {
		return nil, 0, "", err
	}
	cop := &compiledPipeline{steps: []compiledStep{{label: innerLabel, step: innerStep}}, ignored: b.ignored, logger: b.logger}
	label := r.String()

	switch r.Mode {
	case ast.StoreFilteredIn:
		return &storeFilteredInStep{setName: r.Set, cop: cop, sets: b.sets, logger: b.logger}, category, label, nil
	case ast.StoreNotApplicableIn:
		return &storeNotApplicableInStep{setName: r.Set, cop: cop, sets: b.sets, logger: b.logger}, category, label, nil
	default:
		return &storeInStep{setName: r.Set, cop: cop, sets: b.sets, logger: b.logger}, category, label, nil
	}
}

func (b *builder) compileCombinator(c *ast.Combinator) (Step, ops.Category, string, error) {
	label := c.String()
	switch c.Name {
	case "or":
		if len(c.Subops) == 0 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorMalformedArguments, "or requires at least one branch")
		}
		branches := make([]*compiledPipeline, 0, len(c.Subops))
		for _, sub := range c.Subops {
			step, category, subLabel, err := b.compileOperation(sub)
			if err != nil {
				return nil, 0, "", err
			}
			if category != ops.CategoryFilter {
				return nil, 0, "", buildErrorf(sub.NodePos(), errdiag.ErrorOrNonFilterBranch,
					"or may only compose filters, %s is a %s", subLabel, category)
			}
			branches = append(branches, &compiledPipeline{
				steps: []compiledStep{{label: subLabel, step: step}}, ignored: b.ignored, logger: b.logger,
			})
		}
		return &orStep{branches: branches}, ops.CategoryFilter, label, nil

	case "non_empty":
		if len(c.Subops) != 1 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorMalformedArguments, "non_empty requires exactly one operation argument")
		}
		step, _, subLabel, err := b.compileOperation(c.Subops[0])
		if err != nil {
			return nil, 0, "", err
		}
		cop := &compiledPipeline{steps: []compiledStep{{label: subLabel, step: step}}, ignored: b.ignored, logger: b.logger}
		return &nonEmptyStep{cop: cop, onNone: kwBool(c.KWArgs, "on_none"), onEmpty: kwBool(c.KWArgs, "on_empty")},
			ops.CategoryFilter, label, nil

	case "all":
		if len(c.Subops) != 2 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorMalformedArguments, "all requires a generator and a test operation")
		}
		genStep, _, genLabel, err := b.compileOperation(c.Subops[0])
		if err != nil {
			return nil, 0, "", err
		}
		testStep, _, testLabel, err := b.compileOperation(c.Subops[1])
		if err != nil {
			return nil, 0, "", err
		}
		gen := &compiledPipeline{steps: []compiledStep{{label: genLabel, step: genStep}}, ignored: b.ignored, logger: b.logger}
		test := &compiledPipeline{steps: []compiledStep{{label: testLabel, step: testStep}}, ignored: b.ignored, logger: b.logger}
		return &allStep{gen: gen, test: test, onNone: kwBool(c.KWArgs, "on_none"), onEmpty: kwBool(c.KWArgs, "on_empty")},
			ops.CategoryFilter, label, nil

	case "break_up":
		if len(c.Subops) != 1 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorMalformedArguments, "break_up requires exactly one filter argument")
		}
		step, category, subLabel, err := b.compileOperation(c.Subops[0])
		if err != nil {
			return nil, 0, "", err
		}
		if category != ops.CategoryFilter {
			return nil, 0, "", buildErrorf(c.Subops[0].NodePos(), errdiag.ErrorInvalidOperationArgument,
				"break_up requires a filter, %s is a %s", subLabel, category)
		}
		filter := &compiledPipeline{steps: []compiledStep{{label: subLabel, step: step}}, ignored: b.ignored, logger: b.logger}
		bu := &breakUpStep{filter: filter}
		return funcStep(liftProcess(bu.process)), ops.CategoryExtractor, label, nil
	}
	return nil, 0, "", fmt.Errorf("engine: unknown combinator %q", c.Name)
}

func kwBool(kw map[string]string, key string) bool {
	return kw[key] == "true"
}

func (b *builder) compileCall(c *ast.Call) (Step, ops.Category, string, error) {
	label := c.String()

	switch c.Name {
	case "report":
		if c.Modifier != 0 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorModifierCategoryMismatch, "report cannot take a +/*/! modifier")
		}
		return &reportStep{registry: b.reporters}, ops.CategoryReporter, label, nil
	case "write":
		if c.Modifier != 0 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorModifierCategoryMismatch, "write cannot take a +/*/! modifier")
		}
		path := c.Args[0].Text
		fs, err := b.reporters.openFile(path)
		if err != nil {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorOutputIO, "cannot open %q for writing: %v", path, err)
		}
		return &writeStep{sink: fs}, ops.CategoryReporter, label, nil
	}

	built, err := ops.New(c.Name, c.Args, b.deps)
	if err != nil {
		return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorMalformedArguments, "%v", err)
	}

	switch v := built.(type) {
	case ops.Operation:
		if err := v.Init(); err != nil {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorInvalidOperationArgument, "%v", err)
		}
		b.closers = append(b.closers, v.Close)
		category := v.Category()
		process := v.Process

		if refr, ok := v.(globalListOp); ok {
			name, sets, base := c.Args[0].Text, b.sets, v.Process
			process = func(e string) []string {
				refr.Refresh(sets.snapshot(name))
				return base(e)
			}
		}

		step, err := wrapProcessStep(process, c.Modifier, category, c.Pos)
		if err != nil {
			return nil, 0, "", err
		}
		return step, category, label, nil

	case ops.ListOperation:
		if err := v.Init(); err != nil {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorInvalidOperationArgument, "%v", err)
		}
		if c.Modifier != 0 {
			return nil, 0, "", buildErrorf(c.Pos, errdiag.ErrorModifierCategoryMismatch, "modifiers cannot apply to list-level operations")
		}
		b.closers = append(b.closers, v.Close)
		return funcStep(v.ProcessEntries), v.Category(), label, nil
	}

	return nil, 0, "", fmt.Errorf("engine: %s did not produce an Operation or ListOperation", c.Name)
}

// wrapProcessStep applies a +/*/! modifier to fn, validating it against
// category the way spec §4.2 does (+ and * need a transformer or
// extractor; ! needs a filter), then lifts the result to a Step.
func wrapProcessStep(fn processFunc, modifier byte, category ops.Category, pos ast.Position) (Step, error) {
	switch modifier {
	case '+':
		if category != ops.CategoryTransformer && category != ops.CategoryExtractor {
			return nil, buildErrorf(pos, errdiag.ErrorModifierCategoryMismatch, "+ only applies to transformers and extractors, not a %s", category)
		}
		fn = keepAlways(fn)
	case '*':
		if category != ops.CategoryTransformer && category != ops.CategoryExtractor {
			return nil, buildErrorf(pos, errdiag.ErrorModifierCategoryMismatch, "* only applies to transformers and extractors, not a %s", category)
		}
		fn = keepIfFiltered(fn)
	case '!':
		if category != ops.CategoryFilter {
			return nil, buildErrorf(pos, errdiag.ErrorModifierCategoryMismatch, "! only applies to filters, not a %s", category)
		}
		fn = negateFilter(fn)
	}
	return funcStep(liftProcess(fn)), nil
}
