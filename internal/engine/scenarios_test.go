package engine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj/internal/oracle"
	"dj/internal/parser"
)

// runProgram parses and builds source, feeds entries through it in order,
// and returns everything `report` printed to stdout, one line per string
// (spec §8's concrete end-to-end scenarios).
func runProgram(t *testing.T, source string, entries []string) []string {
	t.Helper()
	result := parser.ParseProgram(source)
	require.Empty(t, result.Errors)

	var buf bytes.Buffer
	prog, err := build(result.Program, Options{Oracle: oracle.NewWordListOracle(nil, nil)}, newReporterRegistryTo(&buf, false))
	require.NoError(t, err)
	defer prog.Close()

	for _, e := range entries {
		if prog.IsIgnored(e) {
			continue
		}
		prog.ProcessEntry(e)
	}

	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestScenarioReportRemoveWsCapitalizeReport(t *testing.T) {
	lines := runProgram(t, "report remove_ws capitalize report", []string{"TestTest", "Dies ist ein Test"})
	assert.Equal(t, []string{"TestTest", "Dies ist ein Test", "Diesisteintest"}, lines)
}

// TestScenarioMangleDates exercises spec §8 scenario 2 as written, with
// no explicit `report`: the parser's implicit-report rule (resolveImplicitReports)
// appends one to any pipeline that doesn't already end in a reporter.
func TestScenarioMangleDates(t *testing.T) {
	lines := runProgram(t, "mangle_dates", []string{"7.4.85"})
	assert.Equal(t, []string{"7485", "85", "1985", "07041985", "070485", "0407"}, lines)
}

// TestScenarioMapPosMapIsWalkDeleetify exercises spec §8 scenarios 3-6
// through the full engine, relying on the same implicit-report rule.
func TestScenarioMapPosMapIsWalkDeleetify(t *testing.T) {
	lines := runProgram(t, `map a [14]`, []string{"arm"})
	assert.ElementsMatch(t, []string{"1rm", "4rm"}, lines)

	lines = runProgram(t, `pos_map [xy]`, []string{"ab"})
	assert.Equal(t, []string{"xb", "yb", "ax", "ay"}, lines)

	lines = runProgram(t, `is_walk "KEYBOARD_DE"`, []string{"asdf", "8w1"})
	assert.Equal(t, []string{"asdf"}, lines)

	lines = runProgram(t, "deleetify", []string{"t3st"})
	assert.Contains(t, lines, "test")

	none := runProgram(t, "deleetify", []string{"0123"})
	assert.Nil(t, none)
}

func TestDeterminismSameProgramSameInputByteIdentical(t *testing.T) {
	source := "report remove_ws capitalize report"
	entries := []string{"TestTest", "Dies ist ein Test"}
	first := runProgram(t, source, entries)
	second := runProgram(t, source, entries)
	assert.Equal(t, first, second)
}
