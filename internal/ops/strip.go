package ops

import "strings"

// stripTrim implements the shared "trim a char class off both ends, and
// tell N/A from entry-was-all-stripped-chars apart" contract used by
// every strip_* operation (operations/strip_ws.py, strip_no.py,
// strip_sc.py, strip_numbers_and_special_chars.py, strip.py): nil if
// nothing was trimmed, []string{} if the whole entry was trimmed away,
// [stripped] otherwise.
func stripTrim(entry string, cutset func(rune) bool) []string {
	stripped := strings.TrimFunc(entry, cutset)
	if stripped == entry {
		return nil
	}
	if len(stripped) == 0 {
		return []string{}
	}
	return []string{stripped}
}

func isASCIIDigit(r rune) bool { return r >= '0' && r <= '9' }

func isAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isASCIIDigit(r)
}

// specialChars is the ASCII/Latin-1 special-character set used throughout
// the catalogue (is_sc, remove_sc, get_sc, strip_sc family), taken
// verbatim from operations/is_sc.py / remove_sc.py's regexp character
// class.
const specialChars = "^<>|,;.:_#'+*~@€²³`'^°!\"§$%&/()[]{}\\-"

func isSpecialChar(r rune) bool {
	return strings.ContainsRune(specialChars, r)
}

// StripWhitespace trims leading/trailing whitespace. Grounded on
// operations/strip_ws.py.
type StripWhitespace struct{ noop }

func (StripWhitespace) Name() string       { return "strip_ws" }
func (StripWhitespace) Category() Category { return CategoryTransformer }
func (StripWhitespace) Process(e string) []string {
	return stripTrim(e, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f' })
}

// StripNumbers trims leading/trailing ASCII digits. Grounded on
// operations/strip_no.py.
type StripNumbers struct{ noop }

func (StripNumbers) Name() string       { return "strip_no" }
func (StripNumbers) Category() Category { return CategoryTransformer }
func (StripNumbers) Process(e string) []string {
	return stripTrim(e, isASCIIDigit)
}

// StripSpecialChars trims leading/trailing non-alphanumeric runes.
// Grounded on operations/strip_sc.py.
type StripSpecialChars struct{ noop }

func (StripSpecialChars) Name() string       { return "strip_sc" }
func (StripSpecialChars) Category() Category { return CategoryTransformer }
func (StripSpecialChars) Process(e string) []string {
	return stripTrim(e, func(r rune) bool { return !isAlnum(r) })
}

// StripNumbersAndSpecialChars trims leading/trailing digits and special
// characters. Grounded on operations/strip_numbers_and_special_chars.py.
type StripNumbersAndSpecialChars struct{ noop }

func (StripNumbersAndSpecialChars) Name() string       { return "strip_numbers_and_sc" }
func (StripNumbersAndSpecialChars) Category() Category { return CategoryTransformer }
func (StripNumbersAndSpecialChars) Process(e string) []string {
	return stripTrim(e, func(r rune) bool { return isASCIIDigit(r) || isSpecialChar(r) })
}

// Strip trims a caller-supplied set of characters off both ends.
// Grounded on operations/strip.py.
type Strip struct {
	noop
	Chars string
}

func (Strip) Name() string       { return "strip" }
func (Strip) Category() Category { return CategoryTransformer }

func (s Strip) Init() error {
	if len(s.Chars) == 0 {
		return initErrorf(s.Name(), "nothing to strip")
	}
	if hasDuplicateRunes(s.Chars) {
		return initErrorf(s.Name(), "char set contains duplicates")
	}
	return nil
}

func (s Strip) Process(e string) []string {
	return stripTrim(e, func(r rune) bool { return strings.ContainsRune(s.Chars, r) })
}

func hasDuplicateRunes(s string) bool {
	seen := map[rune]bool{}
	for _, r := range s {
		if seen[r] {
			return true
		}
		seen[r] = true
	}
	return false
}

// RemoveWhitespace removes all whitespace from anywhere in the entry.
// Grounded on operations/remove_ws.py.
type RemoveWhitespace struct{ noop }

func (RemoveWhitespace) Name() string       { return "remove_ws" }
func (RemoveWhitespace) Category() Category { return CategoryTransformer }

func (RemoveWhitespace) Process(e string) []string {
	fields := strings.Fields(e)
	if len(fields) == 0 {
		return []string{}
	}
	joined := strings.Join(fields, "")
	if len(fields) == 1 && joined == e {
		return nil
	}
	return []string{joined}
}

// RemoveSpecialChars removes every special character. Grounded on
// operations/remove_sc.py.
type RemoveSpecialChars struct{ noop }

func (RemoveSpecialChars) Name() string       { return "remove_sc" }
func (RemoveSpecialChars) Category() Category { return CategoryTransformer }

func (RemoveSpecialChars) Process(e string) []string {
	return removeRunesWhere(e, isSpecialChar)
}

// RemoveNumbers removes every ASCII digit. Grounded on
// operations/remove_numbers.py.
type RemoveNumbers struct{ noop }

func (RemoveNumbers) Name() string       { return "remove_numbers" }
func (RemoveNumbers) Category() Category { return CategoryTransformer }

func (RemoveNumbers) Process(e string) []string {
	return removeRunesWhere(e, isASCIIDigit)
}

// removeRunesWhere deletes every rune matching drop and tells N/A (none
// matched), entry-consisted-only-of-dropped-runes ([]string{}), and a
// genuine change ([result]) apart.
func removeRunesWhere(e string, drop func(rune) bool) []string {
	var b strings.Builder
	removedAny := false
	for _, r := range e {
		if drop(r) {
			removedAny = true
			continue
		}
		b.WriteRune(r)
	}
	if !removedAny {
		return nil
	}
	result := b.String()
	if len(result) == 0 {
		return []string{}
	}
	return []string{result}
}

// Remove deletes every occurrence of any character in Chars. Grounded on
// operations/remove.py.
type Remove struct {
	noop
	Chars string
}

func (Remove) Name() string       { return "remove" }
func (Remove) Category() Category { return CategoryTransformer }

func (r Remove) Init() error {
	if len(r.Chars) == 0 {
		return initErrorf(r.Name(), "invalid length for chars")
	}
	if hasDuplicateRunes(r.Chars) {
		return initErrorf(r.Name(), "specified set contains duplicates")
	}
	return nil
}

func (r Remove) Process(e string) []string {
	return removeRunesWhere(e, func(c rune) bool { return strings.ContainsRune(r.Chars, c) })
}
