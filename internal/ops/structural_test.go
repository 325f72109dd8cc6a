package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeduplicateExtractsRepeatedHalf(t *testing.T) {
	assert.Equal(t, []string{"Test"}, Deduplicate{}.Process("TestTest"))
}

func TestDeduplicateRejectsOddLength(t *testing.T) {
	assert.Nil(t, Deduplicate{}.Process("Tests"))
}

func TestDeduplicateXyXyExtractsXy(t *testing.T) {
	assert.Equal(t, []string{"xy"}, Deduplicate{}.Process("xyxy"))
}

func TestDeduplicateReversedExtractsMirroredHalf(t *testing.T) {
	assert.Equal(t, []string{"test"}, DeduplicateReversed{}.Process("testtset"))
}

func TestDetriplicateExtractsRepeatedThird(t *testing.T) {
	assert.Equal(t, []string{"Test"}, Detriplicate{}.Process("TestTestTest"))
}

func TestSplitDropsEmptySegments(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Split{SplitChar: "-"}.Process("-a-b-"))
}

func TestSplitReturnsNilWhenSeparatorAbsent(t *testing.T) {
	assert.Nil(t, Split{SplitChar: "-"}.Process("ab"))
}

func TestSubSplitsBuildsContiguousGroupings(t *testing.T) {
	entries := SubSplits{SplitChar: "-"}.Process("Abc-def-ghi")
	assert.Contains(t, entries, "Abc-def")
	assert.Contains(t, entries, "def-ghi")
	assert.Contains(t, entries, "Abc")
	assert.Contains(t, entries, "def")
	assert.Contains(t, entries, "ghi")
}

func TestSegmentsExtractsEveryWindow(t *testing.T) {
	s := &Segments{MaxSegmentLength: 2}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	entries := s.Process("abcd")
	assert.Contains(t, entries, "ab")
	assert.Contains(t, entries, "bc")
	assert.Contains(t, entries, "cd")
	assert.Contains(t, entries, "a")
	assert.Contains(t, entries, "d")
}
