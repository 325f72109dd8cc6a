package engine

import "sort"

// orStep implements `or(cop1, cop2, ...)`: a filter accepting an entry if
// any branch accepts it. Always applicable (a filter never returns N/A).
// Grounded on dj_ops.py's Or.
type orStep struct {
	branches []*compiledPipeline
}

func (o *orStep) Run(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		for _, branch := range o.branches {
			if len(branch.runList([]string{e})) != 0 {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// nonEmptyStep implements `non_empty(on_none=.., on_empty=.., cop)`: a
// gate on cop's whole-list result, passing the ORIGINAL input list through
// unchanged when the gate is open. Grounded on dj_ops.py's NonEmpty.
type nonEmptyStep struct {
	cop             *compiledPipeline
	onNone, onEmpty bool
}

func (n *nonEmptyStep) Run(entries []string) []string {
	generated := n.cop.runList(entries)
	switch {
	case generated == nil:
		if n.onNone {
			return entries
		}
		return []string{}
	case len(generated) == 0:
		if n.onEmpty {
			return entries
		}
		return []string{}
	default:
		return entries
	}
}

// allStep implements `all(on_none=.., on_empty=.., gen_cop, test_cop)`:
// the same gate as non_empty on gen_cop's result, further requiring
// test_cop to accept every one of gen_cop's outputs. Grounded on
// dj_ops.py's All.
type allStep struct {
	gen, test       *compiledPipeline
	onNone, onEmpty bool
}

func (a *allStep) Run(entries []string) []string {
	generated := a.gen.runList(entries)
	switch {
	case generated == nil:
		if a.onNone {
			return entries
		}
		return []string{}
	case len(generated) == 0:
		if a.onEmpty {
			return entries
		}
		return []string{}
	}

	tested := a.test.runList(generated)
	testedSet := make(map[string]bool, len(tested))
	for _, t := range tested {
		testedSet[t] = true
	}
	for _, g := range generated {
		if !testedSet[g] {
			return []string{}
		}
	}
	return entries
}

// breakUpCandidates returns the length of every filter-accepted prefix of
// text, longest first.
func breakUpCandidates(text []rune, filter *compiledPipeline) []int {
	var lens []int
	for l := len(text); l >= 1; l-- {
		if len(filter.runList([]string{string(text[:l])})) != 0 {
			lens = append(lens, l)
		}
	}
	return lens
}

// breakUpAll collects every full partition of text into complete, into
// *out, recursing on each of breakUpCandidates's branches at every level.
func breakUpAll(text []rune, filter *compiledPipeline, complete []string, out *[][]string) {
	if len(text) == 0 {
		parts := make([]string, len(complete))
		copy(parts, complete)
		*out = append(*out, parts)
		return
	}
	for _, l := range breakUpCandidates(text, filter) {
		breakUpAll(text[l:], filter, append(complete, string(text[:l])), out)
	}
}

// breakUpStep implements `break_up(filter)`: an extractor producing the
// partition of an entry into filter-accepted substrings with the fewest
// parts, enumerating every partition and sorting by part count ascending
// per spec's redesign note (the source's greedy-first-match only
// approximates this). N/A if no partition exists.
type breakUpStep struct {
	filter *compiledPipeline
}

func (b *breakUpStep) process(e string) []string {
	var all [][]string
	breakUpAll([]rune(e), b.filter, nil, &all)
	if len(all) == 0 {
		return nil
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i]) < len(all[j]) })
	return all[0]
}
