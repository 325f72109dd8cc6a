package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dj/internal/lexer"
	"dj/internal/token"
)

func kinds(t *testing.T, toks []token.Token) []token.Kind {
	t.Helper()
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestTokenizeSimplePipeline(t *testing.T) {
	toks, err := lexer.Tokenize(1, `lower capitalize report`)
	require.NoError(t, err)

	assert.Equal(t, []token.Kind{token.IDENT, token.IDENT, token.IDENT, token.EOF}, kinds(t, toks))
	assert.Equal(t, "lower", toks[0].Literal)
	assert.Equal(t, "capitalize", toks[1].Literal)
	assert.Equal(t, "report", toks[2].Literal)
}

func TestTokenizeModifiersAndArgs(t *testing.T) {
	toks, err := lexer.Tokenize(1, `+lower 2 *min length 3 !is_sc`)
	require.NoError(t, err)

	got := kinds(t, toks)
	want := []token.Kind{
		token.MODIFIER, token.IDENT, token.INT,
		token.MODIFIER, token.IDENT, token.IDENT, token.INT,
		token.MODIFIER, token.IDENT,
		token.EOF,
	}
	assert.Equal(t, want, got)
}

func TestTokenizeQuotedStringWithEscapes(t *testing.T) {
	toks, err := lexer.Tokenize(1, `replace "a.txt" append "\"quoted\\"`)
	require.NoError(t, err)

	require.Len(t, toks, 5) // replace STRING append STRING EOF
	assert.Equal(t, token.STRING, toks[1].Kind)
	assert.Equal(t, `"a.txt"`, toks[1].Literal)
	assert.Equal(t, token.STRING, toks[3].Kind)
	assert.Equal(t, `"\"quoted\\"`, toks[3].Literal)
}

func TestTokenizeSetRedirectionArrows(t *testing.T) {
	cases := []struct {
		name string
		line string
		want token.Kind
	}{
		{"store_in", `{ lower }> SET1`, token.ARROW},
		{"store_filtered_in", `{ lower }!> SET1`, token.ARROW},
		{"store_not_applicable_in", `{ lower }/> SET1`, token.ARROW},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			toks, err := lexer.Tokenize(1, tc.line)
			require.NoError(t, err)
			require.True(t, len(toks) >= 2)
			assert.Equal(t, token.LBRACE, toks[0].Kind)
			var sawArrow bool
			for _, tok := range toks {
				if tok.Kind == token.ARROW {
					sawArrow = true
				}
			}
			assert.True(t, sawArrow, "expected an ARROW token in %q", tc.line)
		})
	}
}

func TestTokenizeComment(t *testing.T) {
	toks, err := lexer.Tokenize(1, `report # everything goes`)
	require.NoError(t, err)

	require.Len(t, toks, 3)
	assert.Equal(t, token.COMMENT, toks[1].Kind)
	assert.Equal(t, "# everything goes", toks[1].Literal)
}

func TestTokenizeCharsetArgument(t *testing.T) {
	toks, err := lexer.Tokenize(1, `map a [14]`)
	require.NoError(t, err)

	require.Len(t, toks, 4)
	assert.Equal(t, token.CHARSET, toks[2].Kind)
	assert.Equal(t, "[14]", toks[2].Literal)
}

func TestTokenizeCombinatorCallSyntax(t *testing.T) {
	toks, err := lexer.Tokenize(1, `or(min length 3, is_sc)`)
	require.NoError(t, err)

	want := []token.Kind{
		token.IDENT, token.LPAREN,
		token.IDENT, token.IDENT, token.INT, token.COMMA,
		token.IDENT, token.RPAREN,
		token.EOF,
	}
	assert.Equal(t, want, kinds(t, toks))
}

func TestTokenizeKeywordArgEquals(t *testing.T) {
	toks, err := lexer.Tokenize(1, `non_empty(on_none=true, on_empty=false, is_sc)`)
	require.NoError(t, err)

	var sawEquals int
	for _, tok := range toks {
		if tok.Kind == token.EQUALS {
			sawEquals++
		}
	}
	assert.Equal(t, 2, sawEquals)
}

func TestTokenizeFloatBeforeInt(t *testing.T) {
	toks, err := lexer.Tokenize(1, `config Related MIN_RELATEDNESS 0.75`)
	require.NoError(t, err)

	last := toks[len(toks)-2]
	assert.Equal(t, token.FLOAT, last.Kind)
	assert.Equal(t, "0.75", last.Literal)
}
