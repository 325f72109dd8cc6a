package oracle

import (
	"sort"
	"strings"
)

// WordListOracle is a deterministic, in-memory Oracle built from static
// word lists and neighbor tables — no model loading, no network access.
// It is the default oracle for tests and for runs that don't wire in a
// real dictionary/embedding backend.
type WordListOracle struct {
	vocab     map[string]map[string]bool
	neighbors map[string]map[string][]Similar
}

// NewWordListOracle builds an oracle from per-language word lists and
// per-model neighbor tables. Both maps may be nil/partial; unknown
// languages/models simply never match.
func NewWordListOracle(vocab map[string][]string, neighbors map[string]map[string][]Similar) *WordListOracle {
	o := &WordListOracle{
		vocab:     map[string]map[string]bool{},
		neighbors: neighbors,
	}
	if o.neighbors == nil {
		o.neighbors = map[string]map[string][]Similar{}
	}
	for lang, words := range vocab {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[w] = true
		}
		o.vocab[lang] = set
	}
	return o
}

func (o *WordListOracle) Contains(word, lang string) bool {
	return o.vocab[lang][word]
}

func (o *WordListOracle) VocabContains(word, model string) bool {
	for _, s := range o.neighbors[model] {
		for _, sim := range s {
			if sim.Word == word {
				return true
			}
		}
	}
	return false
}

// Suggest returns every vocabulary word of lang within Damerau-Levenshtein
// edit distance 1 of word, in lexicographic order.
func (o *WordListOracle) Suggest(word, lang string) []string {
	set := o.vocab[lang]
	if set == nil {
		return nil
	}
	var candidates []string
	for w := range set {
		if damerauLevenshtein(word, w) <= 1 {
			candidates = append(candidates, w)
		}
	}
	sort.Strings(candidates)
	return candidates
}

// MostSimilar looks up a precomputed neighbor list across every
// registered model and merges them, sorted by descending score.
func (o *WordListOracle) MostSimilar(word string, topN int) []Similar {
	var all []Similar
	for _, byWord := range o.neighbors {
		all = append(all, byWord[strings.ToLower(word)]...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if topN > 0 && len(all) > topN {
		all = all[:topN]
	}
	return all
}

// damerauLevenshtein computes the edit distance between a and b allowing
// insertions, deletions, substitutions and adjacent transpositions.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	d := make([][]int, la+2)
	for i := range d {
		d[i] = make([]int, lb+2)
	}
	maxDist := la + lb
	d[0][0] = maxDist
	for i := 0; i <= la; i++ {
		d[i+1][0] = maxDist
		d[i+1][1] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j+1] = maxDist
		d[1][j+1] = j
	}

	lastRow := map[rune]int{}
	for i := 1; i <= la; i++ {
		lastCol := 0
		for j := 1; j <= lb; j++ {
			i2 := lastRow[rb[j-1]]
			j2 := lastCol
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
				lastCol = j
			}
			del := d[i][j+1] + 1
			ins := d[i+1][j] + 1
			sub := d[i][j] + cost
			trans := d[i2][j2] + (i-i2-1) + 1 + (j-j2-1)
			min := del
			if ins < min {
				min = ins
			}
			if sub < min {
				min = sub
			}
			if trans < min {
				min = trans
			}
			d[i+1][j+1] = min
		}
		lastRow[ra[i-1]] = i
	}
	return d[la+1][lb+1]
}
