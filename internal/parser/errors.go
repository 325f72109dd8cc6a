package parser

import "fmt"

// ParseError is one line-level failure (spec §7.1): the offending line is
// skipped and parsing continues, unless Fatal is set (a malformed def or
// config directive, or any header directive after the first pipeline,
// aborts the whole parse; a malformed ignore or set line does not).
type ParseError struct {
	Line    int
	Column  int
	Code    string
	Message string
	Fatal   bool
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Code, e.Message)
}
