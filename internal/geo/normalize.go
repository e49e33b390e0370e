package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldMarks decomposes characters and drops combining marks so that accented
// and unaccented spellings collapse to the same form.
var foldMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts a province or canton name into its canonical lookup form:
// lower-cased, diacritics stripped, surrounding whitespace removed. The same
// function is applied to reference data and to incoming addresses so that
// "San José" and "san jose" resolve identically.
func Normalize(value string) string {
	folded, _, err := transform.String(foldMarks, value)
	if err != nil {
		folded = value
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
