package ops

import (
	"fmt"
	"strings"

	"dj/internal/config"
)

// Multiply repeats an entry Factor times. Grounded on
// operations/multiply.py.
type Multiply struct {
	noop
	Factor int
}

func (Multiply) Name() string       { return "multiply" }
func (Multiply) Category() Category { return CategoryTransformer }

func (m Multiply) Init() error {
	if m.Factor <= 0 {
		return initErrorf(m.Name(), "the multiplication factor has to be > 0")
	}
	return nil
}

func (m Multiply) Process(e string) []string {
	return []string{strings.Repeat(e, m.Factor)}
}

// Append appends S to the entry, or between each of its characters if
// Each is set. Grounded on operations/append.py.
type Append struct {
	noop
	Each bool
	S    string
}

func (Append) Name() string       { return "append" }
func (Append) Category() Category { return CategoryTransformer }

func (a Append) Init() error {
	if len(a.S) == 0 {
		return initErrorf(a.Name(), "useless append operation")
	}
	return nil
}

func (a Append) Process(e string) []string {
	if len(e) == 0 {
		return []string{e}
	}
	if a.Each {
		return []string{strings.Join(strings.Split(e, ""), a.S) + a.S}
	}
	return []string{e + a.S}
}

// Prepend prepends S to the entry, or between each of its characters if
// Each is set. Grounded on operations/prepend.py.
type Prepend struct {
	noop
	Each bool
	S    string
}

func (Prepend) Name() string       { return "prepend" }
func (Prepend) Category() Category { return CategoryTransformer }

func (p Prepend) Init() error {
	if len(p.S) == 0 {
		return initErrorf(p.Name(), "useless prepend operation")
	}
	return nil
}

func (p Prepend) Process(e string) []string {
	if len(e) == 0 {
		return []string{e}
	}
	if p.Each {
		return []string{p.S + strings.Join(strings.Split(e, ""), p.S)}
	}
	return []string{p.S + e}
}

// AsAppendHCRule renders the entry as a Hashcat append rule:
// "Test" -> "$T$e$s$t". Grounded on operations/as_append_hc_rule.py.
type AsAppendHCRule struct{ noop }

func (AsAppendHCRule) Name() string       { return "as_append_hc_rule" }
func (AsAppendHCRule) Category() Category { return CategoryTransformer }

func (AsAppendHCRule) Process(e string) []string {
	if len(e) == 0 {
		return []string{e}
	}
	return []string{"$" + strings.Join(strings.Split(e, ""), "$")}
}

// AsPrependHCRule renders the reversed entry as a Hashcat prepend rule:
// "Test" -> "^t^s^e^T". Grounded on operations/as_prepend_hc_rule.py.
type AsPrependHCRule struct{ noop }

func (AsPrependHCRule) Name() string       { return "as_prepend_hc_rule" }
func (AsPrependHCRule) Category() Category { return CategoryTransformer }

func (AsPrependHCRule) Process(e string) []string {
	if len(e) == 0 {
		return []string{e}
	}
	r := []rune(e)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = string(c)
	}
	return []string{"^" + strings.Join(parts, "^")}
}

// Number replaces each character that belongs to Chars by the cumulative
// 1-based count of matches seen so far. Grounded on operations/number.py.
type Number struct {
	noop
	Chars string
}

func (Number) Name() string       { return "number" }
func (Number) Category() Category { return CategoryTransformer }

func (n Number) Process(e string) []string {
	count := 0
	var b strings.Builder
	for _, c := range e {
		if strings.ContainsRune(n.Chars, c) {
			count++
			fmt.Fprintf(&b, "%d", count)
		} else {
			b.WriteRune(c)
		}
	}
	if count == 0 {
		return nil
	}
	return []string{b.String()}
}

// Map replaces every occurrence of SourceChar with each character of
// TargetChars in turn, emitting one variant per target character.
// Grounded on operations/map.py.
type Map struct {
	noop
	SourceChar  string
	TargetChars string
}

func (Map) Name() string       { return "map" }
func (Map) Category() Category { return CategoryTransformer }

func (m Map) Init() error {
	for _, c := range m.TargetChars {
		if strings.ContainsRune(m.SourceChar, c) {
			return initErrorf(m.Name(), "useless identity mapping %s [%s]", m.SourceChar, m.TargetChars)
		}
	}
	return nil
}

func (m Map) Process(e string) []string {
	if !strings.Contains(e, m.SourceChar) {
		return nil
	}
	seen := map[rune]bool{}
	var entries []string
	for _, c := range m.TargetChars {
		if seen[c] {
			continue
		}
		seen[c] = true
		entries = append(entries, strings.ReplaceAll(e, m.SourceChar, string(c)))
	}
	return entries
}

// PosMap replaces the character at every position, one position at a
// time, with each character of TargetChars. Grounded on
// operations/pos_map.py.
type PosMap struct {
	noop
	TargetChars string
}

func (PosMap) Name() string       { return "pos_map" }
func (PosMap) Category() Category { return CategoryTransformer }

func (p PosMap) Init() error {
	if len(p.TargetChars) == 0 {
		return initErrorf(p.Name(), "pos_map's target chars must not be empty")
	}
	return nil
}

func (p PosMap) Process(e string) []string {
	r := []rune(e)
	seen := map[rune]bool{}
	var targets []rune
	for _, c := range p.TargetChars {
		if seen[c] {
			continue
		}
		seen[c] = true
		targets = append(targets, c)
	}
	var entries []string
	for i := range r {
		for _, c := range targets {
			out := make([]rune, len(r))
			copy(out, r)
			out[i] = c
			entries = append(entries, string(out))
		}
	}
	return entries
}

// Replace applies a fixed one-key-to-one-value substitution table loaded
// from Path. Grounded on operations/replace.py.
type Replace struct {
	noop
	Path  string
	table map[string]string
	order []string
}

func (Replace) Name() string       { return "replace" }
func (Replace) Category() Category { return CategoryTransformer }

func (r *Replace) Init() error {
	lines, err := readLines(r.Path)
	if err != nil {
		return initErrorf(r.Name(), "%v", err)
	}
	r.table = map[string]string{}
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "# ") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return initErrorf(r.Name(), "malformed replacement line: %q", s)
		}
		key := unescapeResourceField(fields[0])
		value := unescapeResourceField(fields[1])
		if _, exists := r.table[key]; exists {
			return initErrorf(r.Name(), "the key (%s) is already used", key)
		}
		r.table[key] = value
		r.order = append(r.order, key)
	}
	return nil
}

func (r *Replace) Process(e string) []string {
	out := e
	for _, k := range r.order {
		out = strings.ReplaceAll(out, k, r.table[k])
	}
	if out == e {
		return nil
	}
	return []string{out}
}

// MultiReplace applies a multi-valued substitution table, up to
// APPLY_UP_TO_N_REPLACEMENTS simultaneous substitutions per output entry.
// Grounded on operations/multi_replace.py. Tunable via
// `config MultiReplace APPLY_UP_TO_N_REPLACEMENTS <n>`.
type MultiReplace struct {
	noop
	Path  string
	table map[string][]string
	order []string
}

var multiReplaceApplyUpToN = 2

func init() {
	config.Default.RegisterInt("MultiReplace", "APPLY_UP_TO_N_REPLACEMENTS", &multiReplaceApplyUpToN)
}

func (MultiReplace) Name() string       { return "multi_replace" }
func (MultiReplace) Category() Category { return CategoryTransformer }

func (m *MultiReplace) Init() error {
	if multiReplaceApplyUpToN < 1 {
		return initErrorf(m.Name(), "APPLY_UP_TO_N_REPLACEMENTS < 1")
	}
	lines, err := readLines(m.Path)
	if err != nil {
		return initErrorf(m.Name(), "%v", err)
	}
	m.table = map[string][]string{}
	for _, line := range lines {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		fields := strings.Fields(s)
		if len(fields) != 2 {
			return initErrorf(m.Name(), "contains invalid entry: %q", s)
		}
		key := unescapeResourceField(fields[0])
		value := unescapeResourceField(fields[1])
		if key == value {
			return initErrorf(m.Name(), "key == value: %q", s)
		}
		if _, ok := m.table[key]; !ok {
			m.order = append(m.order, key)
		}
		m.table[key] = append(m.table[key], value)
	}
	return nil
}

func (m *MultiReplace) Process(e string) []string {
	var all []string
	generations := make([][]string, multiReplaceApplyUpToN+1)

	for _, k := range m.order {
		for _, v := range m.table[k] {
			for depth := multiReplaceApplyUpToN - 1; depth >= 1; depth-- {
				for _, prior := range generations[depth] {
					next := strings.ReplaceAll(prior, k, v)
					if next != prior {
						all = append(all, next)
						generations[depth+1] = append(generations[depth+1], next)
					}
				}
			}
			next := strings.ReplaceAll(e, k, v)
			if next != e {
				all = append(all, next)
				generations[1] = append(generations[1], next)
			}
		}
	}
	if len(all) == 0 {
		return nil
	}
	return all
}

// DiscardEndings repeatedly drops the last space-delimited term of an
// entry while that term is a member of the endings file, along with its
// preceding whitespace. Grounded on operations/discard_endings.py.
type DiscardEndings struct {
	noop
	Path    string
	endings map[string]bool
}

func (DiscardEndings) Name() string       { return "discard_endings" }
func (DiscardEndings) Category() Category { return CategoryTransformer }

func (d *DiscardEndings) Init() error {
	lines, err := readLines(d.Path)
	if err != nil {
		return initErrorf(d.Name(), "%v", err)
	}
	d.endings = map[string]bool{}
	for _, l := range lines {
		d.endings[l] = true
	}
	return nil
}

func (d *DiscardEndings) Process(e string) []string {
	terms := strings.Fields(e)
	n := len(terms)
	for n > 0 && d.endings[terms[n-1]] {
		n--
	}
	if n == len(terms) {
		return nil
	}
	return []string{strings.Join(terms[:n], " ")}
}
