package lexicon

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)
	stripHTML     = bluemonday.StrictPolicy()
)

// PlainText strips markup from submitted text and decodes entities so that
// "<b>k</b>ill" and "&lt;kill&gt;" are judged as what a reader would see.
func PlainText(text string) string {
	return html.UnescapeString(stripHTML.Sanitize(text))
}

// Tokenize splits free-form text into lower-case tokens with diacritics
// folded away, so "Kíll" and "kill" produce the same token.
func Tokenize(text string) []string {
	// transform chains carry state and must not be shared between goroutines
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	bare := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(fold, bare)
	if err != nil {
		folded = bare
	}
	return strings.Fields(folded)
}

// tokenWindow renders tokens as a space-delimited string with sentinels at
// both ends, so a phrase matches only on whole-token boundaries.
func tokenWindow(tokens []string) string {
	return " " + strings.Join(tokens, " ") + " "
}
