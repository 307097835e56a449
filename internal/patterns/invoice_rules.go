package patterns

import (
	"regexp"

	"github.com/papertrail/classifier/internal/domain"
)

// Invoice rules key on billing identifiers and payment language. The
// currency-amount regex runs against raw text because normalization strips
// the dollar sign.
var invoiceRules = []domain.PatternRule{
	{
		Name:     "invoice_number",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`(?i)\binvoice\s*(number|no\.?|#|id)\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "invoice_amount_due",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`(?i)\b(amount due|total due|balance due|total amount)\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "invoice_payment_terms",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`(?i)\b(payment terms|net\s*(15|30|45|60|90)|due (date|upon receipt))\b`),
		Weight:   domain.WeightHigh,
	},
	{
		Name:     "invoice_remit",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`(?i)\b(remit (to|payment)|bill to|billed to|payable to)\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "invoice_po_reference",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`(?i)\b(purchase order|p\.?o\.?\s*(number|no\.?|#))\b`),
		Weight:   domain.WeightMedium,
	},
	{
		Name:     "invoice_currency_amount",
		Category: domain.CategoryInvoice,
		Pattern:  regexp.MustCompile(`[$€£]\s?[\d,]+(\.\d{2})?`),
		Weight:   domain.WeightLow,
	},
	{
		Name:     "invoice_line_item_terms",
		Category: domain.CategoryInvoice,
		Keywords: []string{"subtotal", "sales tax", "unit price", "quantity", "line item"},
		Weight:   domain.WeightLow,
	},
	{
		Name:        "invoice_not_quote",
		Category:    domain.CategoryInvoice,
		Pattern:     regexp.MustCompile(`(?i)\b(quotation|price quote|estimate only|packing slip|pro forma)\b`),
		AntiPattern: true,
	},
}
