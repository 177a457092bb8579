package systems

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// NormalizeRune folds full/half-width variants, composes to NFC and upper-cases
// Answer strings are stored in this form, so typed runes compare directly
func NormalizeRune(r rune) rune {
	s := width.Fold.String(string(r))
	s = norm.NFC.String(s)
	folded, _ := utf8.DecodeRuneInString(s)
	if folded == utf8.RuneError {
		folded = r
	}
	return unicode.ToUpper(folded)
}
