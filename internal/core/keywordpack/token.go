package keywordpack

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// isWord reports whether r is considered a word character for boundary checks.
// Letters, numbers, combining marks (Mn), and connector punctuation (Pc, e.g.
// underscore) count as word characters; hyphen and most punctuation do not
func isWord(r rune) bool {
	if r == utf8.RuneError || r == 0 {
		return false
	}
	return unicode.IsLetter(r) ||
		unicode.IsNumber(r) ||
		unicode.In(r, unicode.Mn, unicode.Pc)
}

// boundaryOK reports whether [start,end) sits on word boundaries in s,
// so "income" does not match inside "outcomes"
func boundaryOK(s string, start, end int) bool {
	var prev, next rune
	if start > 0 {
		prev, _ = utf8.DecodeLastRuneInString(s[:start])
	}
	if end < len(s) {
		next, _ = utf8.DecodeRuneInString(s[end:])
	}
	return !isWord(prev) && !isWord(next)
}

// containsToken reports whether term occurs in s on word boundaries
func containsToken(s, term string) bool {
	if term == "" {
		return false
	}
	off := 0
	for {
		i := strings.Index(s[off:], term)
		if i < 0 {
			return false
		}
		start := off + i
		end := start + len(term)
		if boundaryOK(s, start, end) {
			return true
		}
		off = start + 1
	}
}
