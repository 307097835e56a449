// Package patterns implements the rule-based half of the hybrid engine:
// per-category regex and keyword rules with weight tiers and anti-pattern
// penalties. Keyword rules are matched through an Aho-Corasick automaton
// so a document is scanned once regardless of rule count.
package patterns

import (
	"strings"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/papertrail/classifier/internal/domain"
)

const estimatedKeywordsPerRule = 8

// keywordEngine matches the keyword-backed subset of a rule library in a
// single pass. It is rebuilt whenever the owning Scorer's rule set changes,
// so it carries no lock of its own.
type keywordEngine struct {
	matcher   *ahocorasick.Matcher
	keywords  []string
	kwToRules map[string][]string // normalized keyword -> rule names
}

func newKeywordEngine(rules []domain.PatternRule) *keywordEngine {
	e := &keywordEngine{
		keywords:  make([]string, 0, len(rules)*estimatedKeywordsPerRule),
		kwToRules: make(map[string][]string),
	}

	for _, rule := range rules {
		for _, kw := range rule.Keywords {
			normalized := normalizeKeyword(kw)
			if normalized == "" {
				continue
			}
			if _, seen := e.kwToRules[normalized]; !seen {
				e.keywords = append(e.keywords, normalized)
			}
			e.kwToRules[normalized] = append(e.kwToRules[normalized], rule.Name)
		}
	}

	if len(e.keywords) > 0 {
		e.matcher = ahocorasick.NewStringMatcher(e.keywords)
	}
	return e
}

// matchedRules returns the names of keyword rules with at least one keyword
// present in the normalized text. Repeated hits of the same rule collapse
// into a single entry.
func (e *keywordEngine) matchedRules(normalizedText string) map[string]bool {
	if e.matcher == nil {
		return nil
	}

	hits := e.matcher.Match([]byte(normalizedText))
	if len(hits) == 0 {
		return nil
	}

	matched := make(map[string]bool)
	for _, hitIndex := range hits {
		if hitIndex >= len(e.keywords) {
			continue
		}
		for _, name := range e.kwToRules[e.keywords[hitIndex]] {
			matched[name] = true
		}
	}
	return matched
}

func normalizeKeyword(kw string) string {
	return strings.ToLower(strings.TrimSpace(kw))
}

// normalizeText lowercases and replaces non-alphanumeric runes with spaces
// so keyword matching sees clean word boundaries. Regex rules run against
// the raw text instead; several rely on punctuation such as currency signs.
func normalizeText(text string) string {
	text = strings.ToLower(text)

	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result.WriteRune(r)
		} else {
			result.WriteByte(' ')
		}
	}
	return result.String()
}
