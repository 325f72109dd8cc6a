package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAllExtractsEveryMatch(t *testing.T) {
	f := &FindAll{Regexp: "[A-Z][a-z]*"}
	require.NoError(t, f.Init())
	assert.Equal(t, []string{"New", "York", "City"}, f.Process("NewYorkCity"))
}

func TestFindAllInvalidRegexpFailsInit(t *testing.T) {
	f := &FindAll{Regexp: "[A-Z"}
	assert.Error(t, f.Init())
}

func TestGetNumbersExtractsDigitRuns(t *testing.T) {
	assert.Equal(t, []string{"123", "45"}, GetNumbers{}.Process("abc123def45"))
}

func TestGetNumbersReturnsNilWithoutDigits(t *testing.T) {
	assert.Nil(t, GetNumbers{}.Process("abcdef"))
}

func TestGetSpecialCharsExtractsSymbolRuns(t *testing.T) {
	assert.Equal(t, []string{"!!", "."}, GetSpecialChars{}.Process("a!!b.c"))
}

func TestSieveAcceptsOnlyConfiguredChars(t *testing.T) {
	s := &Sieve{chars: map[rune]bool{'a': true, 'b': true}}
	assert.Equal(t, []string{"aab"}, s.Process("aab"))
	assert.Equal(t, []string{}, s.Process("aabc"))
}

func TestGListInMatchesMembership(t *testing.T) {
	g := &GListIn{ListName: "common", Entries: []string{"password", "letmein"}}
	require.NoError(t, g.Init())
	assert.Equal(t, []string{"password"}, g.Process("password"))
	assert.Equal(t, []string{}, g.Process("hunter2"))
}

func TestGListInMissingListFailsInit(t *testing.T) {
	g := &GListIn{ListName: "missing"}
	assert.Error(t, g.Init())
}

func TestGListDropDropsMatchingEnding(t *testing.T) {
	g := &GListDrop{ListName: "suffixes", Entries: []string{"1234"}}
	require.NoError(t, g.Init())
	assert.Equal(t, []string{"password"}, g.Process("password1234"))
}
