// Package pattern turns free-text transaction descriptions into the
// normalized matching keys stored by classification rules.
package pattern

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultMaxWords is the number of leading words kept by Derive when the
// caller does not configure a different limit.
const DefaultMaxWords = 5

// Normalize uppercases text with full Unicode case mapping (so "ß" becomes
// "SS"), drops every rune that is not an ASCII letter, a digit or whitespace,
// and collapses whitespace runs to a single space. Accented letters and
// symbols are removed, not transliterated.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	text = strings.TrimSpace(cases.Upper(language.Und).String(text))

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	// Fields splits on whitespace runs and drops the ends, which covers both
	// the collapse and the final trim.
	return strings.Join(strings.Fields(b.String()), " ")
}

// Derive builds a rule pattern from a transaction description: the
// normalized text truncated to its first maxWords words. A non-positive
// maxWords falls back to DefaultMaxWords. An empty result means no pattern
// is available and no rule should be created.
func Derive(description string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultMaxWords
	}

	normalized := Normalize(description)
	if normalized == "" {
		return ""
	}

	words := strings.Split(normalized, " ")
	if len(words) > maxWords {
		words = words[:maxWords]
	}
	return strings.Join(words, " ")
}

// Matches reports whether a rule pattern applies to a description. Both are
// normalized first; the pattern matches when its words appear as a
// contiguous run of whole words in the description. "PAGO" therefore
// matches "DEBITO PAGO LUZ" but not "PAGOS VARIOS".
func Matches(pattern, description string) bool {
	p := strings.Fields(Normalize(pattern))
	if len(p) == 0 {
		return false
	}
	d := strings.Fields(Normalize(description))

	for i := 0; i+len(p) <= len(d); i++ {
		if equalWords(d[i:i+len(p)], p) {
			return true
		}
	}
	return false
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
