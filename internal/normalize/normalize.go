// Package normalize prepares free-text work-order fields for keyword
// matching and embedding lookups.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "manutenção"
// becomes "manutencao".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Text lower-cases, removes diacritics, replaces anything outside
// [a-z0-9 ] with a space and collapses whitespace. Idempotent; empty in,
// empty out.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsAny reports whether the normalized form of s contains any of
// the (already normalized) keyword stems.
func ContainsAny(s string, keywords []string) bool {
	n := Text(s)
	for _, kw := range keywords {
		if kw != "" && strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
