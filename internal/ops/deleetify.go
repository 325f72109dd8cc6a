package ops

import (
	"regexp"
	"strings"
)

// DeLeetify replaces leetspeak digits with the vowels they visually
// stand for (0->o, 1->i, 3->e, 4->a), trying every combination of one to
// three simultaneous substitutions. Grounded on operations/deleetify.py.
type DeLeetify struct{ noop }

func (DeLeetify) Name() string       { return "deleetify" }
func (DeLeetify) Category() Category { return CategoryTransformer }

var (
	reHasShortNumberRun = regexp.MustCompile(`^[^0-9]*[0134]{1,3}([^0-9]|$)`)
	reHasLetter         = regexp.MustCompile(`[a-zA-Z]`)
)

type leetPair struct{ digit, letter string }

var leetPairs = []leetPair{
	{"0", "o"},
	{"1", "i"},
	{"3", "e"},
	{"4", "a"},
}

// leetCombinations is every non-empty subset of leetPairs of size 1 to 3.
var leetCombinations = buildLeetCombinations()

func buildLeetCombinations() [][]leetPair {
	var combos [][]leetPair
	n := len(leetPairs)
	for size := 1; size <= 3 && size <= n; size++ {
		var choose func(start int, chosen []leetPair)
		choose = func(start int, chosen []leetPair) {
			if len(chosen) == size {
				combos = append(combos, append([]leetPair{}, chosen...))
				return
			}
			for i := start; i < n; i++ {
				choose(i+1, append(chosen, leetPairs[i]))
			}
		}
		choose(0, nil)
	}
	return combos
}

func (DeLeetify) Process(e string) []string {
	if !reHasShortNumberRun.MatchString(e) || !reHasLetter.MatchString(e) {
		return nil
	}

	seen := map[string]bool{}
	var entries []string
	for _, combo := range leetCombinations {
		out := e
		for _, p := range combo {
			out = strings.ReplaceAll(out, p.digit, p.letter)
		}
		if out != e && !seen[out] {
			seen[out] = true
			entries = append(entries, out)
		}
	}
	if len(entries) == 0 {
		return nil
	}
	return entries
}
