package ops

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// locateResource resolves a resource path the way operations/*.py's
// locate_resource does: absolute paths and paths that exist relative to
// the working directory are used as-is, otherwise the path is tried
// relative to the directory holding the running executable.
func locateResource(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	exe, err := os.Executable()
	if err == nil {
		alt := filepath.Join(filepath.Dir(exe), path)
		if _, err := os.Stat(alt); err == nil {
			return alt, nil
		}
	}
	return path, nil
}

// ReadLines exposes readLines to internal/engine, which loads the `ignore`
// directive's file the same way every resource-backed operation here does.
func ReadLines(path string) ([]string, error) { return readLines(path) }

// readLines reads a UTF-8 text file one right-stripped line at a time
// (spec §6.3's resource-file convention), skipping nothing itself — blank
// line and comment filtering are each caller's own responsibility.
func readLines(path string) ([]string, error) {
	resolved, err := locateResource(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(resolved)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r\n"))
	}
	return lines, scanner.Err()
}

// unescapeResourceField reverses the \s/\#/\\ escape scheme (spec §6.2)
// used in replacement-table and similar resource files.
func unescapeResourceField(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 's':
				b.WriteByte(' ')
				i++
				continue
			case '#':
				b.WriteByte('#')
				i++
				continue
			case '\\':
				b.WriteByte('\\')
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
