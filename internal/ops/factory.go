package ops

import (
	"fmt"
	"strconv"

	"dj/internal/ast"
	"dj/internal/oracle"
)

// Deps are the external collaborators a handful of operations need at
// construction time: the lexical oracle for word-check/spelling
// operations, and a resolver for the named global entry lists glist_in
// and glist_drop read from.
type Deps struct {
	Oracle      oracle.Oracle
	GlobalLists func(name string) ([]string, bool)
}

// New constructs the atomic operation named by op from its already
// type-checked Call arguments (see internal/parser's argSpecs table).
// The result is either an Operation or a ListOperation; New never
// returns both nil and a nil error. "report", "write" and the four
// list-level combinators are not Calls in this sense and are built
// directly by internal/engine instead.
func New(op string, args []ast.Arg, deps Deps) (any, error) {
	switch op {
	case "upper":
		return &Upper{}, nil
	case "lower":
		l := &Lower{}
		if len(args) > 0 {
			n, err := argInt(args[0])
			if err != nil {
				return nil, err
			}
			l.Pos, l.HasPos = n, true
		}
		return l, nil
	case "capitalize":
		return &Capitalize{}, nil
	case "title":
		return &Title{}, nil
	case "swapcase":
		return &SwapCase{}, nil
	case "fold_ws":
		return &FoldWhitespace{}, nil

	case "strip_ws":
		return &StripWhitespace{}, nil
	case "strip_no":
		return &StripNumbers{}, nil
	case "strip_sc":
		return &StripSpecialChars{}, nil
	case "strip_numbers_and_sc":
		return &StripNumbersAndSpecialChars{}, nil
	case "strip":
		return &Strip{Chars: args[0].Text}, nil

	case "remove_ws":
		return &RemoveWhitespace{}, nil
	case "remove_sc":
		return &RemoveSpecialChars{}, nil
	case "remove_numbers":
		return &RemoveNumbers{}, nil
	case "remove":
		return &Remove{Chars: args[0].Text}, nil

	case "reverse":
		return &Reverse{}, nil
	case "rotate":
		return &Rotate{}, nil
	case "multiply":
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		return &Multiply{Factor: n}, nil
	case "append":
		each, s := false, ""
		if len(args) == 2 {
			each = args[0].Text == "each"
			s = args[1].Text
		} else {
			s = args[0].Text
		}
		return &Append{Each: each, S: s}, nil
	case "prepend":
		each, s := false, ""
		if len(args) == 2 {
			each = args[0].Text == "each"
			s = args[1].Text
		} else {
			s = args[0].Text
		}
		return &Prepend{Each: each, S: s}, nil
	case "as_append_hc_rule":
		return &AsAppendHCRule{}, nil
	case "as_prepend_hc_rule":
		return &AsPrependHCRule{}, nil
	case "number":
		return &Number{Chars: args[0].Text}, nil
	case "map":
		return &Map{SourceChar: args[0].Text, TargetChars: args[1].Text}, nil
	case "pos_map":
		return &PosMap{TargetChars: args[0].Text}, nil
	case "replace":
		return &Replace{Path: args[0].Text}, nil
	case "multi_replace":
		return &MultiReplace{Path: args[0].Text}, nil
	case "discard_endings":
		return &DiscardEndings{Path: args[0].Text}, nil
	case "mangle_dates":
		return &MangleDates{}, nil
	case "deleetify":
		return &DeLeetify{}, nil
	case "correct_spelling":
		return &CorrectSpelling{Oracle: deps.Oracle}, nil
	case "related":
		return &Related{Oracle: deps.Oracle}, nil

	case "m":
		return &M{Regexp: args[0].Text}, nil
	case "find_all":
		return &FindAll{Regexp: args[0].Text}, nil
	case "get_no":
		return &GetNumbers{}, nil
	case "get_sc":
		return &GetSpecialChars{}, nil
	case "segments":
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		return &Segments{MaxSegmentLength: n}, nil
	case "split":
		return &Split{SplitChar: args[0].Text}, nil
	case "sub_splits":
		return &SubSplits{SplitChar: args[0].Text}, nil
	case "deduplicate":
		return &Deduplicate{}, nil
	case "deduplicate_reversed":
		return &DeduplicateReversed{}, nil
	case "detriplicate":
		return &Detriplicate{}, nil
	case "cut":
		min, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		max, err := argInt(args[2])
		if err != nil {
			return nil, err
		}
		return &Cut{Operator: args[0].Text, Min: min, Max: max}, nil
	case "omit":
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		return &Omit{Pos: n}, nil
	case "dehex":
		return &DeHex{}, nil

	case "min":
		n, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		return &Min{Operator: args[0].Text, MinCount: n}, nil
	case "max":
		n, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		return &Max{Operator: args[0].Text, MaxCount: n}, nil
	case "has":
		n, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		return &Has{Operator: args[0].Text, HasCount: n}, nil
	case "min_length":
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		return &MinLength{MinLen: n}, nil
	case "max_length":
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		return &MaxLength{MaxLen: n}, nil
	case "is_regular_word":
		return &IsRegularWord{Oracle: deps.Oracle}, nil
	case "is_popular_word":
		return &IsPopularWord{Oracle: deps.Oracle}, nil
	case "is_pattern":
		return &IsPattern{}, nil
	case "is_sc":
		return &IsSpecialChars{}, nil
	case "is_walk":
		return &IsWalk{Layout: args[0].Text}, nil
	case "is_part_of":
		return &IsPartOf{Sequence: args[0].Text}, nil
	case "sieve":
		return &Sieve{Path: args[0].Text}, nil
	case "glist_in":
		entries, _ := deps.GlobalLists(args[0].Text)
		return &GListIn{ListName: args[0].Text, Entries: entries}, nil
	case "glist_drop":
		entries, _ := deps.GlobalLists(args[0].Text)
		return &GListDrop{ListName: args[0].Text, Entries: entries}, nil

	case "ilist_unique":
		return &IListUnique{}, nil
	case "ilist_select_longest":
		return &IListSelectLongest{}, nil
	case "ilist_concat":
		return &IListConcat{S: args[0].Text}, nil
	case "iset_unique":
		return &ISetUnique{}, nil
	case "iset_max":
		n, err := argInt(args[1])
		if err != nil {
			return nil, err
		}
		return &ISetMax{Operator: args[0].Text, MaxCount: n}, nil
	}

	return nil, fmt.Errorf("ops: no constructor registered for %q", op)
}

func argInt(a ast.Arg) (int, error) {
	n, err := strconv.Atoi(a.Text)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid integer: %v", a.Text, err)
	}
	return n, nil
}
