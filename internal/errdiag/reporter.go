package errdiag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Severity is one of the four error kinds of spec §7, in order of severity.
type Severity string

const (
	SeverityParse   Severity = "parse error"
	SeverityInit    Severity = "init error"
	SeverityRuntime Severity = "runtime error"
	SeverityIO      Severity = "io error"
)

// Position locates a diagnostic in a transform-program source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
}

// Diagnostic is a single reported problem. Parse and init diagnostics carry
// a Position (spec §7.1, §7.2); runtime and I/O diagnostics usually don't,
// since they happen well after parsing, against a specific dictionary entry
// or output file instead.
type Diagnostic struct {
	Severity Severity
	Code     string // e.g. E0001, see codes.go
	Message  string
	Position Position // zero value if not applicable
	Length   int      // width of the offending span, for the caret marker
	Notes    []string
}

// Reporter renders diagnostics against one source text, Rust-compiler style.
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for the given transform-program source.
func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders a diagnostic as a multi-line string ready to print to stderr.
func (r *Reporter) Format(d Diagnostic) string {
	var out strings.Builder

	levelColor := severityColor(d.Severity)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if d.Code != "" {
		out.WriteString(fmt.Sprintf("[error] %s[%s]: %s\n", levelColor(string(d.Severity)), d.Code, d.Message))
	} else {
		out.WriteString(fmt.Sprintf("[error] %s: %s\n", levelColor(string(d.Severity)), d.Message))
	}

	if d.Position.Line <= 0 {
		out.WriteString("\n")
		return out.String()
	}

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	out.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, d.Position.Line, d.Position.Column))
	out.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line-1 >= 1 && d.Position.Line-1 <= len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			dim(fmt.Sprintf("%*d", width, d.Position.Line-1)), dim("│"), r.lines[d.Position.Line-2]))
	}

	if d.Position.Line >= 1 && d.Position.Line <= len(r.lines) {
		out.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, d.Position.Line)), dim("│"), r.lines[d.Position.Line-1]))
		out.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker(d.Position.Column, d.Length)))
	}

	for _, n := range d.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		out.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), n))
	}

	out.WriteString("\n")
	return out.String()
}

func severityColor(s Severity) func(a ...interface{}) string {
	switch s {
	case SeverityParse, SeverityInit:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	case SeverityRuntime:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int) string {
	if length <= 0 {
		length = 1
	}
	spaces := strings.Repeat(" ", maxInt(0, column-1))
	markerColor := color.New(color.FgRed, color.Bold).SprintFunc()
	return spaces + markerColor(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3
	}
	return width
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
