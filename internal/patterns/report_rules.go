package patterns

import (
	"regexp"

	"github.com/papertrail/classifier/internal/domain"
)

// Report rules target analytical structure: summaries, findings, and
// quantitative language.
var reportRules = []domain.PatternRule{
	{
		Name:     "report_title",
		Category: domain.CategoryReport,
		Pattern:  regexp.MustCompile(`(?i)\b(annual|quarterly|monthly|status|progress|technical) report\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "report_executive_summary",
		Category: domain.CategoryReport,
		Pattern:  regexp.MustCompile(`(?i)\b(executive summary|key findings|summary of (findings|results))\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "report_structure",
		Category: domain.CategoryReport,
		Pattern:  regexp.MustCompile(`(?i)\b(table of contents|appendix [a-z]|methodology|conclusion(s)? and recommendations)\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "report_quantitative",
		Category: domain.CategoryReport,
		Pattern:  regexp.MustCompile(`\d+(\.\d+)?\s?%`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "report_analysis_terms",
		Category: domain.CategoryReport,
		Keywords: []string{"findings", "analysis", "metrics", "year over year", "benchmark", "trend"},
		Weight:   domain.WeightLow,
	},
	{
		Name:     "report_figures",
		Category: domain.CategoryReport,
		Pattern:  regexp.MustCompile(`(?i)\b(figure|table|chart)\s+\d+\b`),
		Weight:   domain.WeightLow,
	},
	{
		Name:        "report_not_contract",
		Category:    domain.CategoryReport,
		Pattern:     regexp.MustCompile(`(?i)\b(in witness whereof|hereinafter)\b`),
		AntiPattern: true,
	},
}
