package patterns

import (
	"regexp"

	"github.com/papertrail/classifier/internal/domain"
)

// Contract rules key on agreement boilerplate and execution language.
var contractRules = []domain.PatternRule{
	{
		Name:     "contract_agreement_phrase",
		Category: domain.CategoryContract,
		Pattern:  regexp.MustCompile(`(?i)\bthis (agreement|contract) (is (made|entered)|shall)\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "contract_parties",
		Category: domain.CategoryContract,
		Pattern:  regexp.MustCompile(`(?i)\b(between .{1,80}\band\b .{1,80}\(.{0,30}(party|parties)|the parties (agree|hereto))`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "contract_witness_clause",
		Category: domain.CategoryContract,
		Pattern:  regexp.MustCompile(`(?i)\bin witness whereof\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "contract_term_termination",
		Category: domain.CategoryContract,
		Pattern:  regexp.MustCompile(`(?i)\b(term and termination|terminate this agreement|effective date of this agreement)\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "contract_legalese",
		Category: domain.CategoryContract,
		Pattern:  regexp.MustCompile(`(?i)\b(hereinafter|whereas|heretofore|thereunder|herein)\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "contract_clause_terms",
		Category: domain.CategoryContract,
		Keywords: []string{"indemnif", "governing law", "confidentiality", "severability", "force majeure", "warranty"},
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "contract_execution_terms",
		Category: domain.CategoryContract,
		Keywords: []string{"signature", "executed", "undersigned", "counterparts"},
		Weight:   domain.WeightLow,
	},
	{
		Name:        "contract_not_billing",
		Category:    domain.CategoryContract,
		Pattern:     regexp.MustCompile(`(?i)\b(invoice number|amount due|remit payment)\b`),
		AntiPattern: true,
	},
}
