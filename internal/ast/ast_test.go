package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dj/internal/ast"
)

func TestPipelineStringJoinsOpsWithSpaces(t *testing.T) {
	pl := &ast.Pipeline{
		Ops: []ast.Operation{
			&ast.Call{Name: "lower"},
			&ast.Call{Modifier: '+', Name: "capitalize"},
			&ast.Call{Name: "report"},
		},
	}
	assert.Equal(t, "lower +capitalize report", pl.String())
}

func TestCallStringRendersArgs(t *testing.T) {
	c := &ast.Call{
		Name: "map",
		Args: []ast.Arg{
			{Kind: ast.ArgIdent, Text: "a"},
			{Kind: ast.ArgCharset, Text: "14"},
		},
	}
	assert.Equal(t, "map a [14]", c.String())
}

func TestSetRedirectStringUsesCorrectArrow(t *testing.T) {
	r := &ast.SetRedirect{
		Mode:  ast.StoreNotApplicableIn,
		Inner: &ast.Call{Name: "lower"},
		Set:   "REJECTS",
	}
	assert.Equal(t, "{ lower }/> REJECTS", r.String())
}

func TestCombinatorStringRendersNestedCops(t *testing.T) {
	c := &ast.Combinator{
		Name:   "or",
		Subops: []ast.Operation{&ast.Call{Name: "is_sc"}, &ast.Call{Name: "min", Args: []ast.Arg{{Kind: ast.ArgIdent, Text: "length"}, {Kind: ast.ArgInt, Text: "3"}}}},
	}
	assert.Equal(t, "or(is_sc, min length 3)", c.String())
}

func TestMacroCallAndUseSetString(t *testing.T) {
	assert.Equal(t, "do CLEANUP", (&ast.MacroCall{Name: "CLEANUP"}).String())
	assert.Equal(t, "use GERMAN_CITIES", (&ast.UseSet{Name: "GERMAN_CITIES"}).String())
}
