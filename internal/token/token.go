// Package token defines the lexical token kinds of the transform-program
// language: the flat, line-oriented DSL that names operations, pipelines,
// macros and sets (see internal/ast).
package token

// Kind identifies the lexical class of a Token. Names match the rule names
// the lexer registers with participle, so Kind(tok.Type.String()) round-trips.
type Kind string

const (
	ILLEGAL Kind = "ILLEGAL"
	EOF     Kind = "EOF"

	COMMENT Kind = "COMMENT"
	STRING  Kind = "STRING"

	// IDENT covers operation names, macro/set references and keywords alike;
	// the parser tells them apart by casing and position, not by token kind
	// (lowercase "report", "min", "use" vs uppercase "GERMAN_CITIES").
	IDENT Kind = "IDENT"
	INT   Kind = "INT"
	FLOAT Kind = "FLOAT"

	MODIFIER Kind = "MODIFIER" // +, *, !
	LBRACE   Kind = "LBRACE"   // {
	ARROW    Kind = "ARROW"    // }>  }!>  }/>
	CHARSET  Kind = "CHARSET"  // [xy], [14] — bracketed inline character list
	LPAREN   Kind = "LPAREN"   // (
	RPAREN   Kind = "RPAREN"   // )
	COMMA    Kind = "COMMA"    // ,
	EQUALS   Kind = "EQUALS"   // = (combinator keyword args: on_none=true)

	WHITESPACE Kind = "WHITESPACE"
)

// Token is one lexeme produced by internal/lexer, with its source position
// for diagnostics (internal/errdiag).
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Column  int
}

// Keyword-like identifiers. These are ordinary IDENT tokens; the parser
// recognizes them by literal text at the point where a keyword is legal
// (header vs. body), mirroring the DSL grammar's own keyword placement
// rules rather than reserving words globally.
const (
	KeywordDef    = "def"
	KeywordIgnore = "ignore"
	KeywordSet    = "set"
	KeywordConfig = "config"
	KeywordUse    = "use"
	KeywordDo     = "do"
	KeywordOr     = "or"
)

// IsKeyword reports whether literal starts a header directive line (def,
// ignore, set, config). "use" and "do" are body-level operation keywords —
// recognized by internal/parser.parseOperation, not here — since a pipeline
// is legally allowed to start with either.
func IsKeyword(literal string) bool {
	switch literal {
	case KeywordDef, KeywordIgnore, KeywordSet, KeywordConfig:
		return true
	default:
		return false
	}
}

// IsSetName reports whether literal is shaped like a set/macro identifier:
// a non-empty run of uppercase ASCII letters (and digits/underscore after
// the first character), per the grammar's IDENT = [A-Z]+ production.
func IsSetName(literal string) bool {
	if literal == "" {
		return false
	}
	for i, r := range literal {
		switch {
		case r >= 'A' && r <= 'Z':
			continue
		case i > 0 && (r == '_' || (r >= '0' && r <= '9')):
			continue
		default:
			return false
		}
	}
	return true
}
