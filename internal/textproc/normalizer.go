// Package textproc turns raw document text into normalized token streams
// for the feature vectorizer.
package textproc

import (
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const minTokenLength = 2

// diacriticStripper removes combining marks so accented terms fold onto
// their ASCII forms before tokenization.
var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize converts raw text into a normalized token sequence:
// lowercasing, diacritic folding, punctuation stripping, small standalone
// number removal, stopword removal, short-token filtering and optional
// Snowball stemming. It is a pure function and never fails; empty or
// whitespace-only input yields an empty (non-nil) slice.
func Normalize(text string, useStemming bool) []string {
	tokens := Tokenize(text)

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if len(tok) < minTokenLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if isSmallNumber(tok) {
			continue
		}
		if useStemming {
			if stemmed, err := snowball.Stem(tok, "english", false); err == nil && stemmed != "" {
				tok = stemmed
			}
		}
		out = append(out, tok)
	}
	return out
}

// Tokenize lowercases, folds diacritics and splits text on every
// non-alphanumeric rune. Currency amounts keep their digits; punctuation
// becomes a word boundary.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	text = strings.ToLower(text)
	if folded, _, err := transform.String(diacriticStripper, text); err == nil {
		text = folded
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}

	return strings.Fields(b.String())
}

// isSmallNumber reports whether the token is a standalone one- or
// two-digit number. Longer digit runs (invoice numbers, amounts) are kept
// because they carry document-type signal.
func isSmallNumber(tok string) bool {
	if len(tok) > 2 {
		return false
	}
	for _, r := range tok {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
