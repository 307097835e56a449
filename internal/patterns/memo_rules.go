package patterns

import (
	"regexp"

	"github.com/papertrail/classifier/internal/domain"
)

// Memo rules lean on header structure, so the multiline regexes anchor on
// line starts in the raw text.
var memoRules = []domain.PatternRule{
	{
		Name:     "memo_title",
		Category: domain.CategoryMemo,
		Pattern:  regexp.MustCompile(`(?im)^\s*(memo|memorandum|internal memo)\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "memo_header_fields",
		Category: domain.CategoryMemo,
		Pattern:  regexp.MustCompile(`(?im)^\s*(to|from|re|subject|date)\s*:`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "memo_directive",
		Category: domain.CategoryMemo,
		Pattern:  regexp.MustCompile(`(?i)\b(effective (immediately|as of)|please be advised|all (staff|employees))\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "memo_announcement",
		Category: domain.CategoryMemo,
		Pattern:  regexp.MustCompile(`(?i)\b(we are (pleased|excited) to announce|this is to inform)\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "memo_office_terms",
		Category: domain.CategoryMemo,
		Keywords: []string{"reminder", "fyi", "action required", "heads up", "department"},
		Weight:   domain.WeightLow,
	},
	{
		Name:        "memo_not_billing",
		Category:    domain.CategoryMemo,
		Pattern:     regexp.MustCompile(`(?i)\b(invoice number|amount due|payment terms)\b`),
		AntiPattern: true,
	},
}
