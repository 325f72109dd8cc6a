package ops

import (
	"regexp"

	"dj/internal/config"
)

// FindAll extracts every match of Regexp. Grounded on
// operations/find_all.py.
type FindAll struct {
	noop
	Regexp string
	re     *regexp.Regexp
}

func (FindAll) Name() string       { return "find_all" }
func (FindAll) Category() Category { return CategoryExtractor }

func (f *FindAll) Init() error {
	re, err := regexp.Compile(f.Regexp)
	if err != nil {
		return initErrorf(f.Name(), "%q is an invalid regular expression: %v", f.Regexp, err)
	}
	f.re = re
	return nil
}

func (f *FindAll) Process(e string) []string {
	matches := f.re.FindAllString(e, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// M is an alias extractor for Regexp matches, kept for catalogue
// compatibility with find_all. Grounded on operations/m.py.
type M struct {
	noop
	Regexp string
	re     *regexp.Regexp
}

func (M) Name() string       { return "m" }
func (M) Category() Category { return CategoryExtractor }

func (m *M) Init() error {
	re, err := regexp.Compile(m.Regexp)
	if err != nil {
		return initErrorf(m.Name(), "invalid regular expression: %v", err)
	}
	m.re = re
	return nil
}

func (m *M) Process(e string) []string {
	matches := m.re.FindAllString(e, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// GetNumbers extracts every maximal run of digits. Grounded on
// operations/get_numbers.py.
type GetNumbers struct{ noop }

func (GetNumbers) Name() string       { return "get_numbers" }
func (GetNumbers) Category() Category { return CategoryExtractor }

var reNumbers = regexp.MustCompile(`[0-9]+`)

func (GetNumbers) Process(e string) []string {
	matches := reNumbers.FindAllString(e, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// GetSpecialChars extracts every maximal run of special characters.
// Grounded on operations/get_special_chars.py.
type GetSpecialChars struct{ noop }

func (GetSpecialChars) Name() string       { return "get_sc" }
func (GetSpecialChars) Category() Category { return CategoryExtractor }

var reSpecialChars = regexp.MustCompile(`[<>|,;.:_#'+*~@€²³` + "`" + `'^°!"§$%&/()\[\]{}\\\-]+`)

func (GetSpecialChars) Process(e string) []string {
	matches := reSpecialChars.FindAllString(e, -1)
	if len(matches) == 0 {
		return nil
	}
	return matches
}

// Sieve accepts only entries whose characters are all members of a
// fixed character set loaded from a file. Grounded on
// operations/sieve.py.
type Sieve struct {
	noop
	Path  string
	chars map[rune]bool
}

func (Sieve) Name() string       { return "sieve" }
func (Sieve) Category() Category { return CategoryFilter }

func (s *Sieve) Init() error {
	lines, err := readLines(s.Path)
	if err != nil {
		return initErrorf(s.Name(), "%v", err)
	}
	s.chars = map[rune]bool{}
	for _, line := range lines {
		for _, c := range line {
			s.chars[c] = true
		}
	}
	return nil
}

func (s *Sieve) Process(e string) []string {
	for _, c := range e {
		if !s.chars[c] {
			return []string{}
		}
	}
	return []string{e}
}

// GListIn passes on entries that are members of a named global entry
// list. Entries is resolved and populated by the engine from the list
// name before Init runs. Grounded on operations/glist_in.py.
type GListIn struct {
	noop
	ListName string
	Entries  []string
	entrySet map[string]bool
}

func (GListIn) Name() string       { return "glist_in" }
func (GListIn) Category() Category { return CategoryFilter }

func (g *GListIn) Init() error {
	if g.Entries == nil {
		return initErrorf(g.Name(), "global list %q does not exist", g.ListName)
	}
	g.entrySet = make(map[string]bool, len(g.Entries))
	for _, e := range g.Entries {
		g.entrySet[e] = true
	}
	return nil
}

func (g *GListIn) Process(e string) []string {
	if g.entrySet[e] {
		return []string{e}
	}
	return []string{}
}

// Refresh rebinds the membership set to entries's current contents.
// internal/engine calls this before every entry, since a global list
// backed by a named set can grow as earlier pipelines store into it
// (spec §5: "a later pipeline sees what earlier pipelines stored").
func (g *GListIn) Refresh(entries []string) {
	g.Entries = entries
	g.entrySet = make(map[string]bool, len(entries))
	for _, e := range entries {
		g.entrySet[e] = true
	}
}

// GListDrop discards every ending of an entry that matches a member of
// a named global entry list, keeping only endings that leave at least
// MIN_LENGTH characters behind. Grounded on operations/glist_drop.py;
// tunable via `config GListDrop MIN_LENGTH <n>`.
type GListDrop struct {
	noop
	ListName string
	Entries  []string
	entrySet map[string]bool
}

var glistDropMinLength = 4

func init() {
	config.Default.RegisterInt("GListDrop", "MIN_LENGTH", &glistDropMinLength)
}

func (GListDrop) Name() string       { return "glist_drop" }
func (GListDrop) Category() Category { return CategoryTransformer }

func (g *GListDrop) Init() error {
	if g.Entries == nil {
		return initErrorf(g.Name(), "list %q does not exist", g.ListName)
	}
	g.entrySet = make(map[string]bool, len(g.Entries))
	for _, e := range g.Entries {
		g.entrySet[e] = true
	}
	return nil
}

func (g *GListDrop) Process(e string) []string {
	r := []rune(e)
	var all []string
	for s := len(r) - 1; s >= glistDropMinLength; s-- {
		part := string(r[s:])
		if g.entrySet[part] {
			all = append(all, string(r[:s]))
		}
	}
	return all
}

// Refresh rebinds the membership set to entries's current contents; see
// GListIn.Refresh.
func (g *GListDrop) Refresh(entries []string) {
	g.Entries = entries
	g.entrySet = make(map[string]bool, len(entries))
	for _, e := range entries {
		g.entrySet[e] = true
	}
}
