// Package lexer tokenizes one logical line of a transform program.
//
// Line continuation ("\ " at the start of a line, per spec §4.5) is resolved
// before a line reaches this package: internal/parser joins continuation
// lines into one logical line and feeds the joined text to Tokenize.
package lexer

import (
	"github.com/alecthomas/participle/v2/lexer"

	"dj/internal/token"
)

// Rules is the participle stateful-lexer definition for one DSL line.
// Order matters: rules are tried in order, so Arrow must precede the
// single-character IDENT fallback (which would otherwise take its "}"),
// and Float must precede Int (which would otherwise stop at the "."). There
// are no negative numeric literals in this grammar, so Modifier/Int/Float
// don't collide.
var Rules = lexer.MustStateful(lexer.Rules{
	"Root": {
		{string(token.COMMENT), `#[^\n]*`, nil},
		{string(token.STRING), `"(\\.|[^"\\])*"`, nil},
		{string(token.CHARSET), `\[[^\]]*\]`, nil},
		{string(token.ARROW), `\}!>|\}/>|\}>`, nil},
		{string(token.LBRACE), `\{`, nil},
		{string(token.LPAREN), `\(`, nil},
		{string(token.RPAREN), `\)`, nil},
		{string(token.COMMA), `,`, nil},
		{string(token.EQUALS), `=`, nil},
		{string(token.FLOAT), `[0-9]+\.[0-9]+`, nil},
		{string(token.INT), `[0-9]+`, nil},
		{string(token.MODIFIER), `[+*!]`, nil},
		// \s, \t (space/tab escapes outside quotes, spec §6.2), ordinary
		// identifiers, and — as a fallback — any single non-whitespace
		// character, so a bare one-character separator ("split .") still
		// lexes as one IDENT-kind token.
		{string(token.IDENT), `\\[st]|[A-Za-z_][A-Za-z0-9_]*|[^\s]`, nil},
		{string(token.WHITESPACE), `[ \t]+`, nil},
	},
})

// symbols maps participle's internal TokenType back to our token.Kind, set
// up once from Rules' registered symbol table.
var symbols = lexer.SymbolsByName(Rules)

// Tokenize lexes a single logical line (1-based lineNo for diagnostics) into
// a flat list of Tokens, dropping whitespace and terminated by an EOF token.
// Comments are kept (the parser drops a trailing comment token itself, so
// "pipeline # comment" and a comment-only line share one code path).
func Tokenize(lineNo int, line string) ([]token.Token, error) {
	lex, err := Rules.LexString("", line)
	if err != nil {
		return nil, err
	}

	kindOf := make(map[lexer.TokenType]token.Kind, len(symbols))
	for name, tt := range symbols {
		kindOf[tt] = token.Kind(name)
	}

	var out []token.Token
	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			out = append(out, token.Token{Kind: token.EOF, Line: lineNo, Column: tok.Pos.Column})
			break
		}
		kind := kindOf[tok.Type]
		if kind == token.WHITESPACE {
			continue
		}
		out = append(out, token.Token{
			Kind:    kind,
			Literal: tok.Value,
			Line:    lineNo,
			Column:  tok.Pos.Column,
		})
	}
	return out, nil
}
