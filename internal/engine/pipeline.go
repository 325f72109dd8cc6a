package engine

import "dj/internal/diag"

// compiledStep pairs a Step with the source text of the ast.Operation it
// was built from, for -t trace output.
type compiledStep struct {
	label string
	step  Step
}

// compiledPipeline is one compiled top-level pipeline or macro body: an
// ordered list of Steps run with the composition/elision rule of spec
// §4.1, grounded on DJ.py's apply_ops.
type compiledPipeline struct {
	steps   []compiledStep
	ignored map[string]bool
	logger  *diag.Logger
}

// runList applies every step in turn. A step returning nil (N/A)
// short-circuits the whole pipeline. Otherwise, the empty string and any
// ignored entry are elided from the result; if that elision empties the
// list, the pipeline short-circuits with an empty (non-nil) result and the
// remaining steps never run.
func (p *compiledPipeline) runList(entries []string) []string {
	current := entries
	for _, cs := range p.steps {
		next := p.runStepSafely(cs.step, current)
		p.logger.TraceOp(cs.label, current, next)
		if next == nil {
			return nil
		}

		filtered := make([]string, 0, len(next))
		for _, e := range next {
			if e == "" {
				continue
			}
			if p.ignored[e] {
				p.logger.Ignoring(e)
				continue
			}
			filtered = append(filtered, e)
		}
		if len(filtered) == 0 {
			return []string{}
		}
		current = filtered
	}
	return current
}

// runStepSafely isolates a runtime failure (spec §7.3) to the pipeline
// currently executing: a panicking step aborts only this runList call,
// which the caller observes as N/A, same as DJ.py's apply_ops catching an
// exception around one op.process_entries call and returning None.
func (p *compiledPipeline) runStepSafely(step Step, entries []string) (result []string) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("operation failed: %v", r)
			result = nil
		}
	}()
	return step.Run(entries)
}
