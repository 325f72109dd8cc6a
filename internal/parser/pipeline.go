package parser

import (
	"strings"

	"dj/internal/ast"
	"dj/internal/errdiag"
	"dj/internal/token"
)

// parsePipeline consumes operations until EOF. It never consumes a
// trailing comment token as an operation — a comment ends the pipeline.
func (p *parser) parsePipeline() (*ast.Pipeline, bool) {
	startPos := pos(p.peek())
	pl := &ast.Pipeline{Pos: startPos}

	for !p.isAtEnd() && !p.check(token.COMMENT) {
		op, ok := p.parseOperation()
		if !ok {
			return pl, false
		}
		pl.Ops = append(pl.Ops, op)
	}
	if len(pl.Ops) == 0 {
		tok := p.peek()
		p.errors = append(p.errors, ParseError{
			Line: tok.Line, Column: tok.Column,
			Code: errdiag.ErrorMalformedArguments, Message: "empty pipeline",
		})
		return pl, false
	}
	return pl, true
}

// parseOperation parses one pipeline step: a modified/unmodified call, a
// set redirection, a combinator, `do NAME`, or `use SET`.
func (p *parser) parseOperation() (ast.Operation, bool) {
	if p.check(token.LBRACE) {
		return p.parseSetRedirect()
	}

	var modifier byte
	if p.check(token.MODIFIER) {
		modifier = p.advance().Literal[0]
	}

	name, ok := p.consume(token.IDENT, "expected an operation name")
	if !ok {
		return nil, false
	}

	switch name.Literal {
	case token.KeywordUse:
		if modifier != 0 {
			p.errors = append(p.errors, ParseError{
				Line: name.Line, Column: name.Column,
				Code: errdiag.ErrorModifierCategoryMismatch, Message: "use cannot take a modifier",
			})
			return nil, false
		}
		set, ok := p.consume(token.IDENT, "expected a set name after use")
		if !ok {
			return nil, false
		}
		return &ast.UseSet{Pos: pos(name), Name: set.Literal}, true

	case token.KeywordDo:
		if modifier != 0 {
			p.errors = append(p.errors, ParseError{
				Line: name.Line, Column: name.Column,
				Code: errdiag.ErrorModifierCategoryMismatch, Message: "do cannot take a modifier",
			})
			return nil, false
		}
		macro, ok := p.consume(token.IDENT, "expected a macro name after do")
		if !ok {
			return nil, false
		}
		return &ast.MacroCall{Pos: pos(name), Name: macro.Literal}, true
	}

	if combinatorNames[name.Literal] {
		return p.parseCombinator(name, modifier)
	}

	return p.parseCall(name, modifier)
}

func (p *parser) parseCall(name token.Token, modifier byte) (ast.Operation, bool) {
	spec, known := argSpecs[name.Literal]
	if !known {
		p.errors = append(p.errors, ParseError{
			Line: name.Line, Column: name.Column,
			Code: errdiag.ErrorUnknownOperation, Message: "unknown operation " + name.Literal,
		})
		return nil, false
	}

	call := &ast.Call{Pos: pos(name), Modifier: modifier, Name: name.Literal}
	for _, slot := range spec {
		arg, ok, present := p.parseArg(slot)
		if !ok {
			p.errors = append(p.errors, ParseError{
				Line: name.Line, Column: name.Column,
				Code: errdiag.ErrorMalformedArguments, Message: "malformed arguments to " + name.Literal,
			})
			return nil, false
		}
		if present {
			call.Args = append(call.Args, arg)
		}
	}
	return call, true
}

// parseArg consumes one argument slot. The returned bool is false only on a
// hard parse failure (required slot missing); an absent optional slot
// returns (zero, true, false).
func (p *parser) parseArg(slot argSlot) (ast.Arg, bool, bool) {
	var want token.Kind
	switch slot.kind {
	case slotString:
		want = token.STRING
	case slotInt:
		want = token.INT
	case slotFloat:
		want = token.FLOAT
	case slotCharset:
		want = token.CHARSET
	default:
		want = token.IDENT
	}

	if !p.check(want) {
		if slot.optional {
			return ast.Arg{}, true, false
		}
		return ast.Arg{}, false, false
	}
	tok := p.advance()
	text := tok.Literal
	switch slot.kind {
	case slotString:
		text = unquote(text)
	case slotCharset:
		text = strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
	}
	return ast.Arg{Pos: pos(tok), Kind: argKind(slot.kind), Text: text}, true, true
}

// parseSetRedirect parses `{ <cop> }>|}!>|}/> SET`.
func (p *parser) parseSetRedirect() (ast.Operation, bool) {
	lbrace := p.advance() // consume {
	inner, ok := p.parseOperation()
	if !ok {
		return nil, false
	}
	arrow, ok := p.consume(token.ARROW, "expected }> / }!> / }/> after { cop")
	if !ok {
		return nil, false
	}
	set, ok := p.consume(token.IDENT, "expected a set name after the arrow")
	if !ok {
		return nil, false
	}

	var mode ast.RedirectMode
	switch arrow.Literal {
	case "}!>":
		mode = ast.StoreFilteredIn
	case "}/>":
		mode = ast.StoreNotApplicableIn
	default:
		mode = ast.StoreIn
	}
	return &ast.SetRedirect{Pos: pos(lbrace), Mode: mode, Inner: inner, Set: set.Literal}, true
}

// parseCombinator parses `name(arg, key=val, ..., cop...)`. Positional
// non-cop arguments and nested operation arguments may be interleaved in
// any order; an argument is treated as a nested operation iff its first
// token is a modifier or a known operation/combinator/keyword name.
func (p *parser) parseCombinator(name token.Token, modifier byte) (ast.Operation, bool) {
	if modifier != 0 {
		p.errors = append(p.errors, ParseError{
			Line: name.Line, Column: name.Column,
			Code: errdiag.ErrorModifierCategoryMismatch, Message: "combinators cannot take a modifier",
		})
		return nil, false
	}
	if _, ok := p.consume(token.LPAREN, "expected ( after "+name.Literal); !ok {
		return nil, false
	}

	c := &ast.Combinator{Pos: pos(name), Name: name.Literal, KWArgs: map[string]string{}}

	for !p.check(token.RPAREN) {
		if p.isAtEnd() {
			p.errors = append(p.errors, ParseError{
				Line: name.Line, Column: name.Column,
				Code: errdiag.ErrorMalformedArguments, Message: "unterminated " + name.Literal + "(...)",
			})
			return nil, false
		}

		if p.isKeywordArg() {
			key := p.advance()
			p.advance() // =
			val := p.advance()
			c.KWArgs[key.Literal] = val.Literal
		} else if p.check(token.MODIFIER) || p.isOperationStart() {
			sub, ok := p.parseOperation()
			if !ok {
				return nil, false
			}
			c.Subops = append(c.Subops, sub)
		} else {
			tok := p.advance()
			c.PosArgs = append(c.PosArgs, ast.Arg{Pos: pos(tok), Kind: ast.ArgIdent, Text: tok.Literal})
		}

		if p.check(token.COMMA) {
			p.advance()
		}
	}
	p.advance() // )
	return c, true
}

func (p *parser) isKeywordArg() bool {
	return p.check(token.IDENT) &&
		p.current+1 < len(p.tokens) &&
		p.tokens[p.current+1].Kind == token.EQUALS
}

func (p *parser) isOperationStart() bool {
	if !p.check(token.IDENT) {
		return false
	}
	name := p.peek().Literal
	if _, known := argSpecs[name]; known {
		return true
	}
	return combinatorNames[name] || name == token.KeywordUse || name == token.KeywordDo
}
