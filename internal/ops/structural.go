package ops

import (
	"strings"

	"dj/internal/config"
)

// Deduplicate extracts the first half of an entry that is an exact
// duplication of a sequence, e.g. "TestTest" -> "Test". Grounded on
// operations/deduplicate.py.
type Deduplicate struct{ noop }

func (Deduplicate) Name() string       { return "deduplicate" }
func (Deduplicate) Category() Category { return CategoryExtractor }

func (Deduplicate) Process(e string) []string {
	r := []rune(e)
	length := len(r)
	if length%2 == 1 {
		return nil
	}
	half := length / 2
	first, second := string(r[:half]), string(r[length-half:])
	if first == second {
		return []string{first}
	}
	return nil
}

// DeduplicateReversed extracts the first half of an entry whose second
// half is the first half reversed, e.g. "testtset" -> "test". Grounded
// on operations/deduplicate_reversed.py.
type DeduplicateReversed struct{ noop }

func (DeduplicateReversed) Name() string       { return "deduplicate_reversed" }
func (DeduplicateReversed) Category() Category { return CategoryTransformer }

func (DeduplicateReversed) Process(e string) []string {
	r := []rune(e)
	length := len(r)
	if length%2 == 1 {
		return nil
	}
	half := length / 2
	first := string(r[:half])
	secondRunes := append([]rune{}, r[length-half:]...)
	for i, j := 0, len(secondRunes)-1; i < j; i, j = i+1, j-1 {
		secondRunes[i], secondRunes[j] = secondRunes[j], secondRunes[i]
	}
	if first == string(secondRunes) {
		return []string{first}
	}
	return nil
}

// Detriplicate extracts the first third of an entry that is a triple
// repetition, e.g. "TestTestTest" -> "Test". Grounded on
// operations/detriplicate.py.
type Detriplicate struct{ noop }

func (Detriplicate) Name() string       { return "detriplicate" }
func (Detriplicate) Category() Category { return CategoryExtractor }

func (Detriplicate) Process(e string) []string {
	r := []rune(e)
	length := len(r)
	if length%3 != 0 {
		return nil
	}
	third := length / 3
	first := string(r[:third])
	second := string(r[third : 2*third])
	last := string(r[length-third:])
	if first == second && second == last {
		return []string{first}
	}
	return nil
}

// Segments extracts every substring of entry between MIN_LENGTH and
// MaxSegmentLength characters long, longest first. Grounded on
// operations/segments.py; MIN_LENGTH is tunable via
// `config Segments MIN_LENGTH <n>`.
type Segments struct {
	noop
	MaxSegmentLength int
}

var segmentsMinLength = 1

func init() {
	config.Default.RegisterInt("Segments", "MIN_LENGTH", &segmentsMinLength)
}

func (Segments) Name() string       { return "segments" }
func (Segments) Category() Category { return CategoryExtractor }

func (s *Segments) Init() error {
	if s.MaxSegmentLength < 1 {
		return initErrorf(s.Name(), "MAX_SEGMENT_LENGTH is too small (%d)", s.MaxSegmentLength)
	}
	if segmentsMinLength < 1 {
		return initErrorf(s.Name(), "MIN_LENGTH has to be equal or larger than 1")
	}
	return nil
}

func (s *Segments) Process(e string) []string {
	r := []rune(e)
	if len(r) < segmentsMinLength {
		return nil
	}
	var segments []string
	for l := s.MaxSegmentLength; l >= segmentsMinLength; l-- {
		for i := 0; i <= len(r)-l; i++ {
			segments = append(segments, string(r[i:i+l]))
		}
	}
	return segments
}

// Split breaks an entry into non-empty pieces around SplitChar. Grounded
// on operations/split.py.
type Split struct {
	noop
	SplitChar string
}

func (Split) Name() string       { return "split" }
func (Split) Category() Category { return CategoryTransformer }

func (s Split) Process(e string) []string {
	all := strings.Split(e, s.SplitChar)
	if len(all) == 1 {
		return nil
	}
	var segments []string
	for _, seg := range all {
		if len(seg) > 0 {
			segments = append(segments, seg)
		}
	}
	return segments
}

// SubSplits breaks an entry around SplitChar (dropping empty segments)
// and emits, joined by SplitChar: every leading group of at least two but
// not all segments, then every trailing group of at least two but not all
// segments, then each single segment. Groups that touch neither end are
// not emitted. Grounded on operations/sub_splits.py.
type SubSplits struct {
	noop
	SplitChar string
}

func (SubSplits) Name() string       { return "sub_splits" }
func (SubSplits) Category() Category { return CategoryTransformer }

func (s SubSplits) Process(e string) []string {
	all := strings.Split(e, s.SplitChar)
	if len(all) == 1 {
		return nil
	}

	var segments []string
	for _, seg := range all {
		if len(seg) > 0 {
			segments = append(segments, seg)
		}
	}
	count := len(segments)
	if count == 0 {
		return []string{}
	}

	var entries []string
	for i := 2; i < count; i++ {
		entries = append(entries, strings.Join(segments[0:i], s.SplitChar))
	}
	for i := 1; i < count-1; i++ {
		entries = append(entries, strings.Join(segments[i:count], s.SplitChar))
	}
	entries = append(entries, segments...)
	return entries
}
