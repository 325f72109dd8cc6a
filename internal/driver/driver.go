// Package driver is the runtime loop of spec §5 ("Flow: F reads entries;
// for each entry it presents it (after ignore-filtering) to every
// top-level pipeline"): it owns the dictionary input source, counts and
// paces entries, and drives one *engine.Program across every line.
// Grounded on original_source/dj.py's transform_entries.
package driver

import (
	"bufio"
	"io"
	"os"
	"time"

	"dj/internal/diag"
	"dj/internal/engine"
)

// Options configures one run of Run.
type Options struct {
	// DictionaryPath is the input dictionary file; empty means stdin,
	// matching dj.py's `-d`/`--dictionary` default.
	DictionaryPath string
	Pace           bool
	Logger         *diag.Logger
}

// Run reads entries from opts.DictionaryPath (or stdin), strips line
// endings, and feeds each one to prog, skipping entries the program's
// ignore files named (spec §5). It reports a rolling entries/second rate
// every 5 seconds when opts.Pace is set, same cadence as dj.py's
// report_pace.
func Run(prog *engine.Program, opts Options) error {
	in, closeIn, err := openInput(opts.DictionaryPath)
	if err != nil {
		return err
	}
	defer closeIn()

	count := 0
	lastCount := 0
	start := time.Now()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry := scanner.Text()
		count++

		if prog.IsIgnored(entry) {
			opts.Logger.Ignoring(entry)
			continue
		}

		opts.Logger.Progress(entry)
		prog.ProcessEntry(entry)

		if opts.Pace && time.Since(start) > 5*time.Second {
			elapsed := time.Since(start).Seconds()
			rate := float64(count-lastCount) / elapsed
			opts.Logger.Pace(count, rate)
			lastCount = count
			start = time.Now()
		}
	}
	return scanner.Err()
}

func openInput(path string) (io.Reader, func() error, error) {
	if path == "" {
		return os.Stdin, func() error { return nil }, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
