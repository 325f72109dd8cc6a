// Package engine is the execution core (spec §4.1, §4.2, §9): it compiles
// a parsed *ast.Program into runnable Steps, applies the three-valued
// composition/elision rule across a pipeline, and drives macro inlining,
// named-set I/O and reporter dedup for one input entry at a time.
//
// The three-valued contract is Go's own nil-vs-non-nil slice: a nil
// []string means "not applicable" (N/A), any non-nil slice (possibly of
// length zero) means "applicable". Every Step obeys this; callers never
// need a separate ok/applicable flag.
package engine

// Step is one compiled operation of a pipeline. Run receives the current
// EntryList and returns the next one, nil for N/A.
type Step interface {
	Run(entries []string) []string
}

// processFunc is a per-entry operation, the shape every ops.Operation and
// every prefix-modified operation reduces to (spec §4.1 "Operation").
type processFunc func(entry string) []string

// liftProcess is the uniform process-entries lifting spec §4.1 describes:
// apply fn to every entry; if every call returns N/A, the whole result is
// N/A; otherwise concatenate whatever the non-N/A calls produced (possibly
// nothing). Grounded on operations/operation.py's Operation.process_entries
// and dj_ast.py's identical default.
func liftProcess(fn processFunc) func(entries []string) []string {
	return func(entries []string) []string {
		var out []string
		applicable := false
		for _, e := range entries {
			r := fn(e)
			if r == nil {
				continue
			}
			applicable = true
			out = append(out, r...)
		}
		if !applicable {
			return nil
		}
		if out == nil {
			out = []string{}
		}
		return out
	}
}

// funcStep adapts a plain func(entries) []string to Step.
type funcStep func(entries []string) []string

func (f funcStep) Run(entries []string) []string { return f(entries) }

// keepAlways implements the `+op` modifier: op(e) ∪ {e}, re-materializing
// on N/A and never dropping the original entry. Grounded on
// dj_ops.py's KeepAlwaysModifier.
func keepAlways(fn processFunc) processFunc {
	return func(e string) []string {
		r := fn(e)
		out := make([]string, 0, len(r)+1)
		out = append(out, e)
		out = append(out, r...)
		return out
	}
}

// keepIfFiltered implements the `*op` modifier: op(e) ∪ {e} if op(e) is
// non-empty and applicable, else op(e) unchanged (so N/A and [] both pass
// through without adding e back). Grounded on dj_ops.py's
// KeepOnlyIfFilteredModifier.
func keepIfFiltered(fn processFunc) processFunc {
	return func(e string) []string {
		r := fn(e)
		if r == nil || len(r) == 0 {
			return r
		}
		out := make([]string, 0, len(r)+1)
		out = append(out, e)
		out = append(out, r...)
		return out
	}
}

// negateFilter implements the `!filter` modifier: the complement of a
// filter, which (since a filter's process never returns N/A) reduces to
// swapping [] and [e]. Grounded on DJ.py's NegateFilterModifier.process.
func negateFilter(fn processFunc) processFunc {
	return func(e string) []string {
		r := fn(e)
		if len(r) == 0 {
			return []string{e}
		}
		return []string{}
	}
}
