package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dj/internal/ops"
)

// TestKeepAlwaysModifierLaw checks `+op`'s law from spec §8: op(e) union
// {e}, re-materializing on N/A so the original entry survives even when
// op itself found nothing applicable.
func TestKeepAlwaysModifierLaw(t *testing.T) {
	alwaysNA := func(string) []string { return nil }
	assert.Equal(t, []string{"e"}, keepAlways(alwaysNA)("e"))

	doubles := func(s string) []string { return []string{s + s} }
	assert.Equal(t, []string{"e", "ee"}, keepAlways(doubles)("e"))
}

// TestKeepIfFilteredModifierLaw checks `*op`'s law: op(e) union {e} only
// when op(e) is applicable and non-empty; N/A and [] both pass through
// unchanged, never reintroducing e.
func TestKeepIfFilteredModifierLaw(t *testing.T) {
	alwaysNA := func(string) []string { return nil }
	assert.Nil(t, keepIfFiltered(alwaysNA)("e"))

	alwaysEmpty := func(string) []string { return []string{} }
	assert.Equal(t, []string{}, keepIfFiltered(alwaysEmpty)("e"))

	doubles := func(s string) []string { return []string{s + s} }
	assert.Equal(t, []string{"e", "ee"}, keepIfFiltered(doubles)("e"))
}

// TestNegateFilterLaw checks spec §8's `!F(e) = [e] <=> F(e) = []`.
func TestNegateFilterLaw(t *testing.T) {
	rejects := func(string) []string { return []string{} }
	assert.Equal(t, []string{"e"}, negateFilter(rejects)("e"))

	accepts := func(s string) []string { return []string{s} }
	assert.Equal(t, []string{}, negateFilter(accepts)("e"))
}

// TestElisionLawDropsEmptyAndIgnoredEntries checks spec §8's elision law:
// no operation downstream of another ever sees the empty string or an
// ignored entry. A probe step records exactly what it was handed.
func TestElisionLawDropsEmptyAndIgnoredEntries(t *testing.T) {
	var seen []string
	produceMixed := funcStep(func(entries []string) []string {
		return []string{"keep", "", "dropped", "also-keep"}
	})
	probe := funcStep(func(entries []string) []string {
		seen = entries
		return entries
	})

	pipeline := &compiledPipeline{
		steps: []compiledStep{
			{label: "produce", step: produceMixed},
			{label: "probe", step: probe},
		},
		ignored: map[string]bool{"dropped": true},
	}

	result := pipeline.runList([]string{"seed"})
	assert.Equal(t, []string{"keep", "also-keep"}, seen)
	assert.Equal(t, []string{"keep", "also-keep"}, result)
}

// TestElisionLawShortCircuitsOnEmptyResult checks the other half of the
// composition rule: if elision empties the list, the pipeline returns []
// immediately and no later step ever runs.
func TestElisionLawShortCircuitsOnEmptyResult(t *testing.T) {
	ran := false
	onlyIgnored := funcStep(func(entries []string) []string { return []string{"dropped"} })
	never := funcStep(func(entries []string) []string { ran = true; return entries })

	pipeline := &compiledPipeline{
		steps: []compiledStep{
			{label: "only-ignored", step: onlyIgnored},
			{label: "never", step: never},
		},
		ignored: map[string]bool{"dropped": true},
	}

	result := pipeline.runList([]string{"seed"})
	assert.Equal(t, []string{}, result)
	assert.False(t, ran)
}

// TestElisionLawShortCircuitsOnNA checks the first half: a step
// returning N/A aborts the whole pipeline before any later step runs.
func TestElisionLawShortCircuitsOnNA(t *testing.T) {
	ran := false
	na := funcStep(func(entries []string) []string { return nil })
	never := funcStep(func(entries []string) []string { ran = true; return entries })

	pipeline := &compiledPipeline{
		steps: []compiledStep{
			{label: "na", step: na},
			{label: "never", step: never},
		},
		ignored: map[string]bool{},
	}

	assert.Nil(t, pipeline.runList([]string{"seed"}))
	assert.False(t, ran)
}

// TestRemoveWsFoldWsIdempotentOnSpaceCollapsibleInput checks spec §8's
// `remove_ws . fold_ws is idempotent`: once remove_ws has stripped every
// whitespace character, fold_ws finds nothing left to collapse and
// reports N/A, so a second application changes nothing further.
func TestRemoveWsFoldWsIdempotentOnSpaceCollapsibleInput(t *testing.T) {
	once := ops.RemoveWhitespace{}.Process("a  b\tc")
	assert.Equal(t, []string{"abc"}, once)

	twice := ops.FoldWhitespace{}.Process(once[0])
	assert.Nil(t, twice)
}

// TestReverseReverseIsIdentity checks spec §8's `reverse . reverse` is
// identity. A palindrome is already N/A on the first pass; any other
// entry round-trips back to itself.
func TestReverseReverseIsIdentity(t *testing.T) {
	first := ops.Reverse{}.Process("abcd")
	assert.Equal(t, []string{"dcba"}, first)

	second := ops.Reverse{}.Process(first[0])
	assert.Equal(t, []string{"abcd"}, second)

	assert.Nil(t, ops.Reverse{}.Process("abba"))
}
