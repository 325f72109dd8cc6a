package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeLeetifyReplacesDigitsWithVowels(t *testing.T) {
	entries := DeLeetify{}.Process("T3st")
	assert.Contains(t, entries, "Test")
}

func TestDeLeetifyRejectsEntryWithoutDigits(t *testing.T) {
	assert.Nil(t, DeLeetify{}.Process("Test"))
}

func TestDeLeetifyRejectsEntryWithoutLetters(t *testing.T) {
	assert.Nil(t, DeLeetify{}.Process("1304"))
}

func TestDeLeetifyTriesMultipleSimultaneousSubstitutions(t *testing.T) {
	entries := DeLeetify{}.Process("H3ll0")
	assert.Contains(t, entries, "Hello")
}
