package parser

import "dj/internal/ast"

// slotKind is the lexical shape a Call argument slot expects. It mirrors
// ast.ArgKind but additionally distinguishes nothing from the Word fallback
// (bare idents, single punctuation characters, and \s/\t escapes all lex as
// token.IDENT — see internal/lexer — and are accepted interchangeably here;
// internal/ops decides at Init whether the literal text is well-formed for
// a given operation).
type slotKind int

const (
	slotWord slotKind = iota
	slotString
	slotInt
	slotFloat
	slotCharset
)

// argSlot is one expected argument position for a Call-shaped operation.
type argSlot struct {
	kind     slotKind
	optional bool
}

// argSpecs gives the argument shape of every Call-style operation name in
// the catalogue (spec §4.4). Combinators (or/non_empty/all/break_up),
// set redirection, `do` and `use` are not Calls and are parsed separately
// (see pipeline.go). An operation absent from this table and not one of
// those forms is an unknown-operation parse error (E0001).
var argSpecs = map[string][]argSlot{
	// Reporters
	"report": {},
	"write":  {{kind: slotString}},

	// Case / whitespace transformers
	"upper":      {},
	"lower":      {{kind: slotInt, optional: true}},
	"capitalize": {},
	"title":      {},
	"swapcase":   {},
	"fold_ws":    {},

	"strip_ws":             {},
	"strip_no":             {},
	"strip_sc":             {},
	"strip_numbers_and_sc": {},
	"strip":                {{kind: slotString}},

	"remove_ws":      {},
	"remove_sc":      {},
	"remove_numbers": {},
	"remove":         {{kind: slotString}},

	// Pure string transformers
	"reverse":            {},
	"rotate":             {},
	"multiply":           {{kind: slotInt}},
	"append":             {{kind: slotWord, optional: true}, {kind: slotString}},
	"prepend":            {{kind: slotWord, optional: true}, {kind: slotString}},
	"as_append_hc_rule":  {},
	"as_prepend_hc_rule": {},
	"number":             {{kind: slotCharset}},
	"map":                {{kind: slotWord}, {kind: slotCharset}},
	"pos_map":            {{kind: slotCharset}},
	"replace":            {{kind: slotString}},
	"multi_replace":      {{kind: slotString}},
	"discard_endings":    {{kind: slotString}},
	"mangle_dates":       {},
	"deleetify":          {},
	"correct_spelling":   {},
	"related":            {},

	// Extractors / structural
	"m":                    {{kind: slotString}},
	"find_all":             {{kind: slotString}},
	"get_no":               {},
	"get_sc":               {},
	"segments":             {{kind: slotInt}},
	"split":                {{kind: slotWord}},
	"sub_splits":           {{kind: slotWord}},
	"deduplicate":          {},
	"deduplicate_reversed": {},
	"detriplicate":         {},
	"cut":                  {{kind: slotWord}, {kind: slotInt}, {kind: slotInt}},
	"omit":                 {{kind: slotInt}},
	"dehex":                {},

	// Filters
	"min":              {{kind: slotWord}, {kind: slotInt}},
	"max":              {{kind: slotWord}, {kind: slotInt}},
	"has":              {{kind: slotWord}, {kind: slotInt}},
	"min_length":       {{kind: slotInt}},
	"max_length":       {{kind: slotInt}},
	"is_regular_word":  {},
	"is_popular_word":  {},
	"is_pattern":       {},
	"is_sc":            {},
	"is_walk":          {{kind: slotString}},
	"is_part_of":       {{kind: slotString}},
	"sieve":            {{kind: slotString}},
	"glist_in":         {{kind: slotWord}},
	"glist_drop":       {{kind: slotWord}},

	// List-level combinators that aren't call(cop...) shaped
	"ilist_unique":         {},
	"ilist_select_longest": {},
	"ilist_concat":         {{kind: slotString}},
	"iset_unique":          {},
	"iset_max":             {{kind: slotWord}, {kind: slotInt}},
}

// combinatorNames are the call(args..., cop...) shaped list-level
// combinators (spec §4.4 "List-level combinators", first four bullets).
var combinatorNames = map[string]bool{
	"or":        true,
	"non_empty": true,
	"all":       true,
	"break_up":  true,
}

func argKind(k slotKind) ast.ArgKind {
	switch k {
	case slotString:
		return ast.ArgString
	case slotInt:
		return ast.ArgInt
	case slotFloat:
		return ast.ArgFloat
	case slotCharset:
		return ast.ArgCharset
	default:
		return ast.ArgIdent
	}
}
