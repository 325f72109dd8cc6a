package ops

import (
	"strings"

	"dj/internal/config"
	"dj/internal/oracle"
)

// CorrectSpelling proposes spelling corrections at most one edit away
// from the entry, across every configured language. As soon as a
// suggestion differs from the entry only in capitalization, that single
// correction is returned alone. Grounded on operations/correct_spelling.py.
type CorrectSpelling struct {
	noop
	Oracle    oracle.Oracle
	Languages []string
}

// filterCorrectionsWithSpace drops corrections like "don't" -> "do not":
// splitting one entry into two is rarely a useful password guess.
var filterCorrectionsWithSpace = true

func init() {
	config.Default.RegisterBool("CorrectSpelling", "FILTER_CORRECTIONS_WITH_SPACE", &filterCorrectionsWithSpace)
}

func (CorrectSpelling) Name() string       { return "correct_spelling" }
func (CorrectSpelling) Category() Category { return CategoryTransformer }

func (c *CorrectSpelling) Init() error {
	if c.Oracle == nil {
		return initErrorf(c.Name(), "no lexical oracle configured")
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"en"}
	}
	return nil
}

func (c *CorrectSpelling) Process(e string) []string {
	lowerEntry := strings.ToLower(e)
	var words []string
	for _, lang := range c.Languages {
		for _, suggestion := range c.Oracle.Suggest(e, lang) {
			if suggestion == e {
				return []string{}
			}
			if strings.ToLower(suggestion) == lowerEntry {
				return []string{suggestion}
			}
			if filterCorrectionsWithSpace && strings.Contains(suggestion, " ") {
				continue
			}
			words = append(words, suggestion)
		}
	}
	if len(words) == 0 {
		return nil
	}
	return words
}

// Related returns the terms most related to an entry across every
// embedding model wired into the oracle, keeping everything at or above
// a relatedness score of MIN_RELATEDNESS+0.15 and at most MAX_RELATED
// terms down to MIN_RELATEDNESS itself. Grounded on operations/related.py;
// tunable via `config Related MIN_RELATEDNESS/MAX_RELATED/TOPN <value>`.
type Related struct {
	noop
	Oracle oracle.Oracle
}

var (
	relatedMinRelatedness = 0.6
	relatedMaxRelated     = 5
	relatedTopN           = 10
)

func init() {
	config.Default.RegisterFloat("Related", "MIN_RELATEDNESS", &relatedMinRelatedness)
	config.Default.RegisterInt("Related", "MAX_RELATED", &relatedMaxRelated)
	config.Default.RegisterInt("Related", "TOPN", &relatedTopN)
}

func (Related) Name() string       { return "related" }
func (Related) Category() Category { return CategoryTransformer }

func (r *Related) Init() error {
	if r.Oracle == nil {
		return initErrorf(r.Name(), "no lexical oracle configured")
	}
	if relatedMaxRelated > relatedTopN {
		return initErrorf(r.Name(), "MAX_RELATED must be <= TOPN")
	}
	return nil
}

func (r *Related) Process(e string) []string {
	similar := r.Oracle.MostSimilar(strings.ToLower(e), relatedTopN)

	keepAllRelatedness := relatedMinRelatedness + 0.15
	if keepAllRelatedness > 1.0 {
		keepAllRelatedness = 1.0
	}

	seen := map[string]bool{}
	var result []string
	for _, s := range similar {
		switch {
		case s.Score >= keepAllRelatedness:
			if !seen[s.Word] {
				seen[s.Word] = true
				result = append(result, s.Word)
			}
		case s.Score >= relatedMinRelatedness:
			if len(result) >= relatedMaxRelated {
				return result
			}
			if !seen[s.Word] {
				seen[s.Word] = true
				result = append(result, s.Word)
			}
		default:
			return result
		}
	}
	return result
}
