package nlp

import (
	"strings"
	"unicode"
)

// Tokenize splits lower-cased text into word tokens. Every Unicode
// punctuation or symbol rune separates words, hyphens included, except '+',
// '#' and '.', so "c++", "c#" and "node.js" survive. Dots, '+' and '#' at the
// start of a token and dots at its end are stripped.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSeparator)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimLeft(f, ".+#")
		f = strings.TrimRight(f, ".")
		if hasWordRune(f) {
			out = append(out, f)
		}
	}
	return out
}

func isSeparator(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '+', '#', '.':
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
