package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsWalkAcceptsKeyboardWalk(t *testing.T) {
	w := &IsWalk{Layout: "KEYBOARD_DE"}
	require.NoError(t, w.Init())
	assert.Equal(t, []string{"qwert"}, w.Process("qwert"))
}

func TestIsWalkRejectsShortEntry(t *testing.T) {
	w := &IsWalk{Layout: "KEYBOARD_DE"}
	require.NoError(t, w.Init())
	assert.Equal(t, []string{}, w.Process("qw"))
}

func TestIsWalkAllowsNonAdjacentSubWalks(t *testing.T) {
	w := &IsWalk{Layout: "KEYBOARD_DE"}
	require.NoError(t, w.Init())
	assert.Equal(t, []string{"qweasd"}, w.Process("qweasd"))
}

func TestIsWalkRejectsCharacterOutsideLayout(t *testing.T) {
	w := &IsWalk{Layout: "KEYBOARD_DE"}
	require.NoError(t, w.Init())
	assert.Equal(t, []string{}, w.Process("qw€rt"))
}

func TestIsWalkUnknownLayoutFailsInit(t *testing.T) {
	w := &IsWalk{Layout: "DVORAK"}
	require.Error(t, w.Init())
}

func TestIsPartOfAcceptsContiguousRun(t *testing.T) {
	p := &IsPartOf{Sequence: "abcdefghijklmnopqrstuvwxyz"}
	require.NoError(t, p.Init())
	assert.Equal(t, []string{"cde"}, p.Process("cde"))
}

func TestIsPartOfRejectsNonSequenceEntry(t *testing.T) {
	p := &IsPartOf{Sequence: "abcdefghijklmnopqrstuvwxyz"}
	require.NoError(t, p.Init())
	assert.Equal(t, []string{}, p.Process("xqz"))
}

func TestIsPartOfRejectsSequenceTooShort(t *testing.T) {
	p := &IsPartOf{Sequence: "a"}
	assert.Error(t, p.Init())
}

func TestIsPatternDetectsSingleCharacterRepetition(t *testing.T) {
	assert.Equal(t, []string{"aaaa"}, IsPattern{}.Process("aaaa"))
}

func TestIsPatternDetectsPairRepetition(t *testing.T) {
	assert.Equal(t, []string{"abab"}, IsPattern{}.Process("abab"))
}

func TestIsPatternRejectsIrregularEntry(t *testing.T) {
	assert.Equal(t, []string{}, IsPattern{}.Process("abcd"))
}

func TestIsPatternRejectsRepeatedTriple(t *testing.T) {
	assert.Equal(t, []string{}, IsPattern{}.Process("abcabc"))
}

func TestIsPatternRejectsShortEntries(t *testing.T) {
	assert.Equal(t, []string{}, IsPattern{}.Process("ab"))
}

func TestIsSpecialCharsAcceptsOnlySpecialChars(t *testing.T) {
	assert.Equal(t, []string{"!!!"}, IsSpecialChars{}.Process("!!!"))
	assert.Equal(t, []string{}, IsSpecialChars{}.Process("a!!"))
}
