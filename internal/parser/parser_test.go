package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj/internal/ast"
	"dj/internal/parser"
)

func TestParseSimplePipelineGetsImplicitReport(t *testing.T) {
	res := parser.ParseProgram("lower capitalize")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Pipelines, 1)

	ops := res.Program.Pipelines[0].Ops
	require.Len(t, ops, 3)
	assert.Equal(t, "report", ops[2].(*ast.Call).Name)
}

func TestParsePipelineEndingInReportHasNoDuplicate(t *testing.T) {
	res := parser.ParseProgram("report remove_ws capitalize report")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Pipelines, 1)
	assert.Len(t, res.Program.Pipelines[0].Ops, 4)
}

func TestParseModifiersAttachToCalls(t *testing.T) {
	res := parser.ParseProgram("+lower *capitalize !is_sc report")
	require.Empty(t, res.Errors)

	ops := res.Program.Pipelines[0].Ops
	assert.Equal(t, byte('+'), ops[0].(*ast.Call).Modifier)
	assert.Equal(t, byte('*'), ops[1].(*ast.Call).Modifier)
	assert.Equal(t, byte('!'), ops[2].(*ast.Call).Modifier)
}

func TestParseCallArguments(t *testing.T) {
	res := parser.ParseProgram(`map a [14]`)
	require.Empty(t, res.Errors)

	call := res.Program.Pipelines[0].Ops[0].(*ast.Call)
	require.Len(t, call.Args, 2)
	assert.Equal(t, ast.ArgIdent, call.Args[0].Kind)
	assert.Equal(t, "a", call.Args[0].Text)
	assert.Equal(t, ast.ArgCharset, call.Args[1].Kind)
	assert.Equal(t, "14", call.Args[1].Text)
}

func TestParseOptionalArgPresentAndAbsent(t *testing.T) {
	withPos := parser.ParseProgram("lower 2")
	require.Empty(t, withPos.Errors)
	require.Len(t, withPos.Program.Pipelines[0].Ops[0].(*ast.Call).Args, 1)

	withoutPos := parser.ParseProgram("lower")
	require.Empty(t, withoutPos.Errors)
	assert.Empty(t, withoutPos.Program.Pipelines[0].Ops[0].(*ast.Call).Args)
}

func TestParseAppendWithAndWithoutEach(t *testing.T) {
	withEach := parser.ParseProgram(`append each "x"`)
	require.Empty(t, withEach.Errors)
	require.Len(t, withEach.Program.Pipelines[0].Ops[0].(*ast.Call).Args, 2)

	withoutEach := parser.ParseProgram(`append "x"`)
	require.Empty(t, withoutEach.Errors)
	require.Len(t, withoutEach.Program.Pipelines[0].Ops[0].(*ast.Call).Args, 1)
}

func TestParseSetRedirection(t *testing.T) {
	res := parser.ParseProgram(`{ lower }> SET1`)
	require.Empty(t, res.Errors)

	redirect := res.Program.Pipelines[0].Ops[0].(*ast.SetRedirect)
	assert.Equal(t, ast.StoreIn, redirect.Mode)
	assert.Equal(t, "SET1", redirect.Set)
	assert.Equal(t, "lower", redirect.Inner.(*ast.Call).Name)
}

func TestParseUseAsFirstOperation(t *testing.T) {
	res := parser.ParseProgram(`use CITIES lower`)
	require.Empty(t, res.Errors)

	use, ok := res.Program.Pipelines[0].Ops[0].(*ast.UseSet)
	require.True(t, ok)
	assert.Equal(t, "CITIES", use.Name)
}

func TestParseMisplacedUseIsRejected(t *testing.T) {
	res := parser.ParseProgram(`lower use CITIES`)
	require.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Program.Pipelines)
}

func TestParseCombinatorOr(t *testing.T) {
	res := parser.ParseProgram(`or(is_sc, min length 3)`)
	require.Empty(t, res.Errors)

	c := res.Program.Pipelines[0].Ops[0].(*ast.Combinator)
	assert.Equal(t, "or", c.Name)
	require.Len(t, c.Subops, 2)
	assert.Equal(t, "is_sc", c.Subops[0].(*ast.Call).Name)
	assert.Equal(t, "min", c.Subops[1].(*ast.Call).Name)
}

func TestParseCombinatorNonEmptyKeywordArgs(t *testing.T) {
	res := parser.ParseProgram(`non_empty(on_none=true, on_empty=false, is_sc)`)
	require.Empty(t, res.Errors)

	c := res.Program.Pipelines[0].Ops[0].(*ast.Combinator)
	assert.Equal(t, "true", c.KWArgs["on_none"])
	assert.Equal(t, "false", c.KWArgs["on_empty"])
	require.Len(t, c.Subops, 1)
}

func TestParseMacroDefinitionAndCall(t *testing.T) {
	res := parser.ParseProgram("def CLEANUP lower capitalize\ndo CLEANUP")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Macros, 1)

	macro := res.Program.Macros[0]
	assert.Equal(t, "CLEANUP", macro.Name)
	assert.Len(t, macro.Pipeline.Ops, 2, "macro bodies get no implicit report")

	call := res.Program.Pipelines[0].Ops[0].(*ast.MacroCall)
	assert.Equal(t, "CLEANUP", call.Name)
}

func TestParseHeaderDirectives(t *testing.T) {
	res := parser.ParseProgram("ignore \"ignored.txt\"\nset CITIES\nconfig Related MIN_RELATEDNESS 0.75\nlower")
	require.Empty(t, res.Errors)

	require.Len(t, res.Program.Ignores, 1)
	assert.Equal(t, "ignored.txt", res.Program.Ignores[0].Path)
	require.Len(t, res.Program.Sets, 1)
	assert.Equal(t, "CITIES", res.Program.Sets[0].Name)
	require.Len(t, res.Program.Configs, 1)
	assert.Equal(t, "Related", res.Program.Configs[0].Module)
	assert.Equal(t, "0.75", res.Program.Configs[0].Value)
}

func TestParseDirectiveAfterPipelineIsFatal(t *testing.T) {
	res := parser.ParseProgram("lower\nset CITIES")
	require.NotEmpty(t, res.Errors)
	assert.True(t, res.Errors[0].Fatal)
}

func TestParseLineContinuation(t *testing.T) {
	res := parser.ParseProgram("lower\n\\ capitalize")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Pipelines, 1)
	assert.Len(t, res.Program.Pipelines[0].Ops, 3) // lower, capitalize, implicit report
}

func TestParseBlankAndCommentLinesAreSkipped(t *testing.T) {
	res := parser.ParseProgram("# a comment\n\nlower")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Pipelines, 1)
}

func TestParseUnknownOperationIsReported(t *testing.T) {
	res := parser.ParseProgram("frobnicate")
	require.NotEmpty(t, res.Errors)
	assert.Empty(t, res.Program.Pipelines)
}
