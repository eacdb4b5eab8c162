package recommend

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips diacritics, so "Noite" and "NOITE" match
// "noite" and "Marcánte" matches "marcante".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// mentions reports whether the folded answer contains any folded keyword.
func mentions(answer string, keywords ...string) bool {
	a := Fold(answer)
	if a == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(a, Fold(k)) {
			return true
		}
	}
	return false
}
