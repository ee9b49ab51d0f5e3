package teams

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripAccents removes combining marks, so "Pérez Núñez" becomes "Perez Nunez". Case,
// spacing and line breaks are kept.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lowercases s, strips diacritics and collapses whitespace, so "  Club  América"
// and "club america" compare equal.
func Fold(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(StripAccents(s))), " ")
}
