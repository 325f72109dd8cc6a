package engine

import (
	"fmt"

	"dj/internal/ast"
	"dj/internal/errdiag"
)

// BuildError is an Init-time failure (spec §7.2): Build stops at the first
// one and reports it before any dictionary entry is read.
type BuildError struct {
	Diagnostic errdiag.Diagnostic
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s", e.Diagnostic.Code, e.Diagnostic.Message)
}

func buildErrorf(pos ast.Position, code, format string, args ...any) error {
	return &BuildError{Diagnostic: errdiag.Diagnostic{
		Severity: errdiag.SeverityInit,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: errdiag.Position{Line: pos.Line, Column: pos.Column},
		Length:   1,
	}}
}
