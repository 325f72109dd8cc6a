// Package parser turns transform-program source text into an *ast.Program
// (spec §3 "Program (TDUnit)", §4.5 "Parser"). It is line-oriented: each
// logical line (after line-continuation joining) is tokenized and parsed
// independently, so a malformed line is skipped and the rest of the
// program is still read (spec §7.1), except for the fatal header errors
// described on ParseError, which stop the parse.
package parser

import (
	"fmt"
	"strings"

	"dj/internal/ast"
	"dj/internal/errdiag"
	"dj/internal/lexer"
	"dj/internal/token"
)

// Result is everything ParseProgram produces: the program model built so
// far (even a partially-broken source yields whatever parsed cleanly) plus
// every line-level error encountered.
type Result struct {
	Program *ast.Program
	Errors  []ParseError
}

// ParseProgram parses a whole transform-program source file.
func ParseProgram(source string) Result {
	p := &parseState{
		program: &ast.Program{},
		macros:  map[string]*ast.MacroDef{},
	}
	for _, ll := range joinContinuations(source) {
		p.parseLine(ll)
		if p.fatal {
			break
		}
	}
	p.resolveImplicitReports()
	return Result{Program: p.program, Errors: p.errors}
}

// logicalLine is one continuation-joined source line and the 1-based line
// number of its first physical line (used for diagnostics).
type logicalLine struct {
	line int
	text string
}

// joinContinuations merges "\ "-prefixed continuation lines (spec §4.5)
// into the logical line they continue.
func joinContinuations(source string) []logicalLine {
	raw := strings.Split(source, "\n")
	var out []logicalLine
	for i, phys := range raw {
		lineNo := i + 1
		if strings.HasPrefix(phys, `\ `) && len(out) > 0 {
			cont := strings.TrimPrefix(phys, `\ `)
			out[len(out)-1].text += " " + cont
			continue
		}
		out = append(out, logicalLine{line: lineNo, text: phys})
	}
	return out
}

type parseState struct {
	program      *ast.Program
	macros       map[string]*ast.MacroDef
	errors       []ParseError
	seenPipeline bool
	fatal        bool
}

func (p *parseState) errorf(line, col int, code, format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Line: line, Column: col, Code: code,
		Message: fmt.Sprintf(format, args...),
	})
}

func (p *parseState) fatalf(line, col int, code, format string, args ...any) {
	p.errors = append(p.errors, ParseError{
		Line: line, Column: col, Code: code,
		Message: fmt.Sprintf(format, args...), Fatal: true,
	})
	p.fatal = true
}

func (p *parseState) parseLine(ll logicalLine) {
	toks, err := lexer.Tokenize(ll.line, ll.text)
	if err != nil {
		p.errorf(ll.line, 1, errdiag.ErrorMalformedString, "%v", err)
		return
	}
	if len(toks) == 0 || toks[0].Kind == token.EOF || toks[0].Kind == token.COMMENT {
		return // blank or comment-only line
	}

	pt := &parser{tokens: toks}

	if pt.check(token.IDENT) && token.IsKeyword(pt.peek().Literal) {
		p.parseDirective(pt, ll.line)
		return
	}

	p.seenPipeline = true
	pl, ok := pt.parsePipeline()
	for _, e := range pt.errors {
		p.errors = append(p.errors, e)
	}
	if !ok {
		return
	}
	if err := checkUsePlacement(pl); err != nil {
		p.errors = append(p.errors, *err)
		return
	}
	p.program.Pipelines = append(p.program.Pipelines, pl)
}

func (p *parseState) parseDirective(pt *parser, line int) {
	kw := pt.advance()
	switch kw.Literal {
	case token.KeywordIgnore:
		if p.seenPipeline {
			p.fatalf(line, kw.Column, errdiag.ErrorDirectiveOutOfOrder, "ignore must precede all pipelines")
			return
		}
		str, ok := pt.consume(token.STRING, "expected a quoted path after ignore")
		if !ok {
			p.errorf(line, kw.Column, errdiag.ErrorMalformedArguments, "malformed ignore directive")
			return
		}
		p.program.Ignores = append(p.program.Ignores, &ast.IgnoreDirective{
			Pos:  pos(kw), Path: unquote(str.Literal),
		})

	case token.KeywordSet:
		if p.seenPipeline {
			p.fatalf(line, kw.Column, errdiag.ErrorDirectiveOutOfOrder, "set must precede all pipelines")
			return
		}
		name, ok := pt.consume(token.IDENT, "expected a set name after set")
		if !ok {
			p.errorf(line, kw.Column, errdiag.ErrorMalformedArguments, "malformed set directive")
			return
		}
		p.program.Sets = append(p.program.Sets, &ast.SetDecl{Pos: pos(kw), Name: name.Literal})

	case token.KeywordConfig:
		if p.seenPipeline {
			p.fatalf(line, kw.Column, errdiag.ErrorDirectiveOutOfOrder, "config must precede all pipelines")
			return
		}
		module, okM := pt.consume(token.IDENT, "expected a module name")
		field, okF := pt.consume(token.IDENT, "expected a field name")
		value := pt.advance()
		if !okM || !okF || value.Kind == token.EOF {
			p.fatalf(line, kw.Column, errdiag.ErrorMalformedArguments, "malformed config directive")
			return
		}
		p.program.Configs = append(p.program.Configs, &ast.ConfigDirective{
			Pos: pos(kw), Module: module.Literal, Field: field.Literal, Value: value.Literal,
		})

	case token.KeywordDef:
		if p.seenPipeline {
			p.fatalf(line, kw.Column, errdiag.ErrorDirectiveOutOfOrder, "def must precede all pipelines")
			return
		}
		name, ok := pt.consume(token.IDENT, "expected a macro name after def")
		if !ok {
			p.fatalf(line, kw.Column, errdiag.ErrorMalformedArguments, "malformed def directive")
			return
		}
		body, bodyOK := pt.parsePipeline()
		for _, e := range pt.errors {
			p.errors = append(p.errors, e)
		}
		if !bodyOK {
			p.fatalf(line, kw.Column, errdiag.ErrorMalformedArguments, "malformed macro body for %s", name.Literal)
			return
		}
		if err := checkUsePlacement(body); err != nil {
			p.errors = append(p.errors, *err)
			return
		}
		m := &ast.MacroDef{Pos: pos(kw), Name: name.Literal, Pipeline: body}
		p.program.Macros = append(p.program.Macros, m)
		p.macros[name.Literal] = m
	}
}

// resolveImplicitReports appends `report` to any top-level pipeline that
// doesn't already end in a reporter, directly or through a chain of `do`
// calls (spec §4.5). Macro bodies never get this treatment.
func (p *parseState) resolveImplicitReports() {
	for _, pl := range p.program.Pipelines {
		if len(pl.Ops) == 0 {
			continue
		}
		last := pl.Ops[len(pl.Ops)-1]
		if !endsInReporter(last, p.macros, map[string]bool{}) {
			pl.Ops = append(pl.Ops, &ast.Call{Name: "report"})
		}
	}
}

func endsInReporter(op ast.Operation, macros map[string]*ast.MacroDef, visited map[string]bool) bool {
	switch v := op.(type) {
	case *ast.Call:
		return v.Name == "report" || v.Name == "write"
	case *ast.MacroCall:
		if visited[v.Name] {
			return false
		}
		visited[v.Name] = true
		m := macros[v.Name]
		if m == nil || len(m.Pipeline.Ops) == 0 {
			return false
		}
		return endsInReporter(m.Pipeline.Ops[len(m.Pipeline.Ops)-1], macros, visited)
	default:
		return false
	}
}

// checkUsePlacement enforces that `use` appears only as the first operation
// of a pipeline (spec §3 invariants), a purely structural check the parser
// can make without knowing any operation's runtime category.
func checkUsePlacement(pl *ast.Pipeline) *ParseError {
	for i, op := range pl.Ops {
		if u, ok := op.(*ast.UseSet); ok && i != 0 {
			return &ParseError{
				Line: u.Pos.Line, Column: u.Pos.Column,
				Code:    errdiag.ErrorMisplacedUse,
				Message: "use is only valid as the first operation of a pipeline",
			}
		}
	}
	return nil
}

func pos(t token.Token) ast.Position { return ast.Position{Line: t.Line, Column: t.Column} }

func unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`)
	return r.Replace(lit)
}
