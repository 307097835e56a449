package patterns

import (
	"regexp"

	"github.com/papertrail/classifier/internal/domain"
)

// Legal rules target court filings and formal legal correspondence rather
// than commercial contracts, which have their own category.
var legalRules = []domain.PatternRule{
	{
		Name:     "legal_case_caption",
		Category: domain.CategoryLegal,
		Pattern:  regexp.MustCompile(`(?i)\b(plaintiff|defendant|petitioner|respondent)s?\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "legal_case_number",
		Category: domain.CategoryLegal,
		Pattern:  regexp.MustCompile(`(?i)\b(case|docket)\s*(no\.?|number|#)\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "legal_court",
		Category: domain.CategoryLegal,
		Pattern:  regexp.MustCompile(`(?i)\b(district|superior|supreme|appellate|circuit) court\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "legal_citation",
		Category: domain.CategoryLegal,
		Pattern:  regexp.MustCompile(`(?i)(pursuant to|\bu\.s\.c\.|§\s*\d+|\bstatute\b)`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "legal_proceedings",
		Category: domain.CategoryLegal,
		Pattern:  regexp.MustCompile(`(?i)\b(motion to|hereby ordered|subpoena|deposition|hearing (date|scheduled))\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "legal_counsel_terms",
		Category: domain.CategoryLegal,
		Keywords: []string{"attorney", "counsel", "jurisdiction", "litigation", "affidavit"},
		Weight:   domain.WeightLow,
	},
	{
		Name:        "legal_not_marketing",
		Category:    domain.CategoryLegal,
		Pattern:     regexp.MustCompile(`(?i)\b(subscribe|newsletter|special offer|unsubscribe)\b`),
		AntiPattern: true,
	},
}
