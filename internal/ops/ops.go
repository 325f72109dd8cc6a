// Package ops implements the atomic operation catalogue (spec §4.4): the
// roughly fifty named building blocks a transform-program pipeline can
// call. Every operation here except the whole-list ListOperation family
// processes a single entry at a time and reports applicability through Go's own nil-vs-non-nil slice
// distinction — a nil return means "not applicable" (spec §4.1's N/A), a
// non-nil (possibly empty) slice means "applicable", mirroring the
// three-valued contract of `Operation.process` in the original engine.
//
// internal/engine supplies the uniform process-entries lifting (the
// all-none-aggregate rule) on top of the single-entry Process method
// those operations implement; this package only needs to get each
// operation's own per-entry semantics right.
package ops

import "fmt"

// Category classifies an operation the way spec §4.3 does, and gates
// which prefix modifiers (+/*/!) and which combinator positions
// (`or`, `all`'s test argument, ...) an operation may appear in.
type Category int

const (
	CategoryTransformer Category = iota
	CategoryExtractor
	CategoryFilter
	CategoryReporter
	CategoryMeta
)

func (c Category) String() string {
	switch c {
	case CategoryTransformer:
		return "transformer"
	case CategoryExtractor:
		return "extractor"
	case CategoryFilter:
		return "filter"
	case CategoryReporter:
		return "reporter"
	default:
		return "meta"
	}
}

// Operation is one atomic, named step of the catalogue. Init runs once,
// after construction and argument validation, and may reject the
// operation's configuration (an Init error, spec §7.2). Process runs
// once per entry during Run.
type Operation interface {
	Name() string
	Category() Category
	Init() error
	Process(entry string) []string
	Close() error
}

// ListOperation is the small family of operations that must see the
// whole intermediate result list at once rather than being processed
// one entry at a time (ilist_unique, ilist_select_longest, ilist_concat,
// iset_unique, iset_max) — ported from dj_ops.py/operations/*.py classes
// that override process_entries directly instead of process.
type ListOperation interface {
	Name() string
	Category() Category
	Init() error
	ProcessEntries(entries []string) []string
	Close() error
}

// InitError reports a failed operation-configuration invariant (spec
// §7.2, E0105 unless the operation names a more specific code).
type InitError struct {
	Op      string
	Message string
}

func (e *InitError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Message) }

func initErrorf(op, format string, args ...any) error {
	return &InitError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// noop is embedded by operations with nothing to validate or release.
type noop struct{}

func (noop) Init() error  { return nil }
func (noop) Close() error { return nil }
