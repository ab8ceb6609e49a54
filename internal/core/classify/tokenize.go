package classify

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var fold = cases.Fold()

// normalize applies NFKC then a full case fold, so fullwidth and mixed-case
// forms of a token collapse to one vocab entry
func normalize(s string) string {
	return fold.String(norm.NFKC.String(s))
}

// Tokenize splits normalized text into classifier tokens: runs of ASCII
// letters/digits become word tokens, any other letter or digit (CJK included)
// is a token on its own, everything else separates
func Tokenize(text string) []string {
	s := normalize(text)

	var tokens []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			tokens = append(tokens, word.String())
			word.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			word.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			flush()
			tokens = append(tokens, string(r))
		default:
			flush()
		}
	}
	flush()

	return tokens
}
