// Package keyboards ships the adjacency tables the is_walk filter needs
// to recognize keyboard/pin-pad walks such as "qwerty" or "2580".
package keyboards

import (
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed layouts.yaml
var layoutsYAML []byte

// Direction maps every character of a layout to the characters reachable
// from it by one step, e.g. the row to its left/right or the column
// above/below.
type Direction map[string][]string

// Layout is a named keyboard or pin-pad, decomposed into one Direction
// per movement axis. A walk only needs adjacency in *some* direction.
type Layout map[string]Direction

var layouts map[string]Layout

func init() {
	if err := yaml.Unmarshal(layoutsYAML, &layouts); err != nil {
		panic("keyboards: malformed embedded layouts.yaml: " + err.Error())
	}
}

// Lookup returns the named layout ("KEYBOARD_DE", "PIN_PAD", ...) and
// whether it exists.
func Lookup(name string) (Layout, bool) {
	l, ok := layouts[name]
	return l, ok
}

// Adjacent reports whether b is reachable from a in one step along any
// direction of the layout. ok is false if a isn't part of the layout at
// all, matching the original's "character outside the keyboard" signal.
func (l Layout) Adjacent(a, b string) (adjacent bool, ok bool) {
	for _, dir := range l {
		neighbors, known := dir[a]
		if !known {
			continue
		}
		ok = true
		for _, n := range neighbors {
			if n == b {
				return true, true
			}
		}
	}
	return false, ok
}
