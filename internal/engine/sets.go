package engine

import "dj/internal/diag"

// setArena is the named-set arena of spec §3/§9: a flat, name-keyed table
// avoiding the cyclic ownership a tree of set objects would need. Every
// set is cleared at the start of each input entry (spec §5, grounded on
// DJ.py's transform_entries calling _clear_sets() per entry) unless the
// program runs with -u, in which case sets still clear per entry — only
// the reporter registry persists across entries in unique mode.
type setArena struct {
	declared map[string]bool
	order    map[string][]string
	seen     map[string]map[string]bool
}

func newSetArena(names []string) *setArena {
	a := &setArena{
		declared: make(map[string]bool, len(names)),
		order:    make(map[string][]string, len(names)),
		seen:     make(map[string]map[string]bool, len(names)),
	}
	for _, n := range names {
		a.declared[n] = true
		a.order[n] = []string{}
		a.seen[n] = map[string]bool{}
	}
	return a
}

func (a *setArena) has(name string) bool { return a.declared[name] }

func (a *setArena) clear() {
	for name := range a.declared {
		a.order[name] = []string{}
		a.seen[name] = map[string]bool{}
	}
}

// union merges entries into the named set, preserving first-seen order
// and deduplicating (spec §3's "Named set" is a set, not a list).
func (a *setArena) union(name string, entries []string) {
	seen := a.seen[name]
	for _, e := range entries {
		if !seen[e] {
			seen[e] = true
			a.order[name] = append(a.order[name], e)
		}
	}
}

// snapshot returns the named set's current contents. The caller must not
// mutate the result.
func (a *setArena) snapshot(name string) []string { return a.order[name] }

// diffStrings returns entries minus remove, deduplicated, preserving
// entries's first-seen order. Grounded on dj_ops.py's
// StoreFilteredInSet.process_entries (set(entries).difference_update(...)).
func diffStrings(entries, remove []string) []string {
	removeSet := make(map[string]bool, len(remove))
	for _, r := range remove {
		removeSet[r] = true
	}
	seen := make(map[string]bool, len(entries))
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if removeSet[e] || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

// useSetStep implements `use <SET>`: replace the current EntryList with a
// snapshot of the named set's contents. Grounded on dj_ops.py's UseSet.
type useSetStep struct {
	name string
	sets *setArena
}

func (u *useSetStep) Run(_ []string) []string {
	snap := u.sets.snapshot(u.name)
	out := make([]string, len(snap))
	copy(out, snap)
	return out
}

// storeInStep implements `{ cop }> SET`: run cop; on success, union its
// output into SET; forward cop's output downstream unchanged, N/A
// included. Grounded on dj_ops.py's StoreInSet.
type storeInStep struct {
	setName string
	cop     *compiledPipeline
	sets    *setArena
	logger  *diag.Logger
}

func (s *storeInStep) Run(entries []string) []string {
	next := s.cop.runList(entries)
	if next != nil {
		s.sets.union(s.setName, next)
		s.logger.TraceStore(s.setName, next)
	}
	return next
}

// storeFilteredInStep implements `{ cop }!> SET`: run cop; union the
// entries cop removed (input minus output) into SET; forward cop's
// output. Grounded on dj_ops.py's StoreFilteredInSet.
type storeFilteredInStep struct {
	setName string
	cop     *compiledPipeline
	sets    *setArena
	logger  *diag.Logger
}

func (s *storeFilteredInStep) Run(entries []string) []string {
	next := s.cop.runList(entries)
	if next != nil {
		removed := diffStrings(entries, next)
		s.sets.union(s.setName, removed)
		s.logger.TraceStore(s.setName, removed)
	}
	return next
}

// storeNotApplicableInStep implements `{ cop }/> SET`: run cop against
// each entry individually; union the entries cop found N/A into SET;
// forward the concatenated non-N/A outputs (always applicable itself,
// even if that concatenation is empty). Grounded on dj_ops.py's
// StoreNotApplicableInSet.
type storeNotApplicableInStep struct {
	setName string
	cop     *compiledPipeline
	sets    *setArena
	logger  *diag.Logger
}

func (s *storeNotApplicableInStep) Run(entries []string) []string {
	var notApplicable, out []string
	for _, e := range entries {
		r := s.cop.runList([]string{e})
		if r == nil {
			notApplicable = append(notApplicable, e)
			continue
		}
		out = append(out, r...)
	}
	s.sets.union(s.setName, notApplicable)
	s.logger.TraceStore(s.setName, notApplicable)
	if out == nil {
		out = []string{}
	}
	return out
}
