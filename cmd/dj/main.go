// Command dj applies a transform program (spec §3) to a dictionary of
// entries, producing mangled candidate passwords. See spec §6.1 for the
// flag surface; grounded on original_source/dj.py's argparse-based CLI
// and the teacher's cmd/kanso-cli for the Go CLI shape.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dj/internal/diag"
	"dj/internal/driver"
	"dj/internal/engine"
	"dj/internal/errdiag"
	"dj/internal/oracle"
	"dj/internal/parser"
)

const (
	exitNoProgram    = -1
	exitParseFailure = -2
	exitInitFailure  = 1
)

var (
	flagOperationsFile string
	flagDictionaryFile string
	flagVerbose        bool
	flagTraceOps       bool
	flagProgress       bool
	flagPace           bool
	flagUnique         bool
)

var rootCmd = &cobra.Command{
	Use:   "dj [OPS...]",
	Short: "Generate an attack dictionary from a plain wordlist",
	Long: `dj applies a transform program to every entry of a dictionary,
producing mangled candidate passwords. The program comes from -o, trailing
positional operation tokens, or both (the positional tokens are appended
after the file's contents).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&flagOperationsFile, "operations", "o", "", "transform-program file")
	rootCmd.Flags().StringVarP(&flagDictionaryFile, "dictionary", "d", "", "input dictionary (default: stdin)")
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print general trace information")
	rootCmd.Flags().BoolVarP(&flagTraceOps, "trace_ops", "t", false, "print extensive per-operation trace information")
	rootCmd.Flags().BoolVarP(&flagProgress, "progress", "p", false, "print detailed progress information")
	rootCmd.Flags().BoolVar(&flagPace, "pace", false, "print rolling throughput information")
	rootCmd.Flags().BoolVarP(&flagUnique, "unique", "u", false, "report each entry only once, across the whole run")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if ee, ok := err.(*exitError); ok {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, "[error]", err)
		os.Exit(exitInitFailure)
	}
}

// exitError carries one of spec §6.1's exact exit codes through cobra's
// error-returning RunE, so main can select it without cobra's own
// usage/error printing getting in the way (SilenceErrors above).
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit %d", e.code) }

func run(cmd *cobra.Command, adhocOps []string) error {
	logger := diag.New(flagVerbose, flagTraceOps, flagProgress, flagPace)

	source, err := loadSource(flagOperationsFile, adhocOps)
	if err != nil {
		fmt.Fprintln(os.Stderr, "[error]", err)
		return &exitError{exitInitFailure}
	}
	if source == "" {
		fmt.Fprintln(os.Stderr, "[error] arguments missing; use -h for help")
		return &exitError{exitNoProgram}
	}

	result := parser.ParseProgram(source)
	if len(result.Errors) > 0 {
		reporter := errdiag.NewReporter(flagOperationsFile, source)
		for _, pe := range result.Errors {
			fmt.Fprint(os.Stderr, reporter.Format(toDiagnostic(pe)))
		}
		return &exitError{exitParseFailure}
	}

	prog, err := engine.Build(result.Program, engine.Options{
		Oracle: oracle.NewWordListOracle(nil, nil),
		Unique: flagUnique,
		Logger: logger,
	})
	if err != nil {
		printBuildError(flagOperationsFile, source, err)
		return &exitError{exitInitFailure}
	}
	defer prog.Close()

	if err := driver.Run(prog, driver.Options{
		DictionaryPath: flagDictionaryFile,
		Pace:           flagPace,
		Logger:         logger,
	}); err != nil {
		fmt.Fprintln(os.Stderr, "[error]", err)
		return &exitError{exitInitFailure}
	}

	return nil
}

// loadSource assembles the raw transform-program text: the -o file's
// contents, then the ad-hoc positional operation tokens joined by a
// space and appended as a trailing line, matching dj.py's
// raw_td_file/adhoc_operations concatenation.
func loadSource(path string, adhocOps []string) (string, error) {
	var b strings.Builder
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		b.Write(content)
	}
	if len(adhocOps) > 0 {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(adhocOps, " "))
	}
	return b.String(), nil
}

func toDiagnostic(pe parser.ParseError) errdiag.Diagnostic {
	return errdiag.Diagnostic{
		Severity: errdiag.SeverityParse,
		Code:     pe.Code,
		Message:  pe.Message,
		Position: errdiag.Position{Line: pe.Line, Column: pe.Column},
		Length:   1,
	}
}

func printBuildError(filename, source string, err error) {
	reporter := errdiag.NewReporter(filename, source)
	if be, ok := err.(*engine.BuildError); ok {
		fmt.Fprint(os.Stderr, reporter.Format(be.Diagnostic))
		return
	}
	fmt.Fprintln(os.Stderr, "[error]", err)
}
