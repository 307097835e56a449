package model

import "github.com/papertrail/classifier/internal/domain"

// LabeledDocument is one training example.
type LabeledDocument struct {
	Text     string
	Category domain.Category
}

// seedCorpus is the embedded training set used when no bundle is supplied.
// Each example is a condensed bag of terms characteristic of its category.
var seedCorpus = []LabeledDocument{
	// Invoices: financial billing documents.
	{"invoice payment due amount total tax billing address customer account number remit net days", domain.CategoryInvoice},
	{"bill invoice date amount due payment terms billing subtotal sales tax professional services", domain.CategoryInvoice},
	{"invoice total amount tax payment billing customer account receivable thirty days receipt", domain.CategoryInvoice},
	{"monthly invoice services rendered billing period subtotal tax total due payment terms", domain.CategoryInvoice},
	{"invoice number date bill customer description quantity rate amount subtotal tax total", domain.CategoryInvoice},
	{"service invoice professional consultation billing address payment due receipt remittance", domain.CategoryInvoice},

	// Memos: internal communication and policy updates.
	{"memorandum staff members policy update effective date implementation department heads", domain.CategoryMemo},
	{"internal memo regarding meeting agenda discussion points action items staff announcement", domain.CategoryMemo},
	{"memo budget allocation department meeting notes quarterly planning review session", domain.CategoryMemo},
	{"memorandum policy changes effective immediately all employees human resources department", domain.CategoryMemo},
	{"internal memo meeting scheduled conference room agenda items quarterly review staff", domain.CategoryMemo},
	{"memo regarding remote work policy hybrid model core hours collaboration equipment stipend", domain.CategoryMemo},
	{"memorandum announcement new procedures training sessions communication tools project management", domain.CategoryMemo},
	{"internal memo from management regarding updated policies effective date implementation", domain.CategoryMemo},

	// Legal: court documents, notices, proceedings.
	{"legal notice court case defendant plaintiff breach contract damages attorney", domain.CategoryLegal},
	{"legal document court superior justice notice proceedings defendant response required", domain.CategoryLegal},
	{"legal action commenced breach employment contract violation non disclosure agreement", domain.CategoryLegal},
	{"notice legal proceedings court case plaintiff defendant damages injunctive relief", domain.CategoryLegal},
	{"legal notice employment dispute court superior business affairs defendant", domain.CategoryLegal},
	{"legal document attorney client privilege confidential communication court proceedings", domain.CategoryLegal},

	// Reports: analysis, findings, performance metrics.
	{"quarterly performance report executive summary financial analysis revenue growth metrics", domain.CategoryReport},
	{"report analysis findings conclusions recommendations data results performance indicators", domain.CategoryReport},
	{"annual report financial performance revenue profit margin customer satisfaction market share", domain.CategoryReport},
	{"quarterly report departmental performance sales marketing operations customer service", domain.CategoryReport},
	{"performance report key metrics revenue growth profit margin customer acquisition retention", domain.CategoryReport},
	{"financial report executive summary quarterly analysis revenue expenses profit recommendations", domain.CategoryReport},

	// Contracts: agreements, terms, parties, signatures.
	{"service agreement provider client terms conditions compensation termination governing law", domain.CategoryContract},
	{"contract agreement parties terms conditions signature effective date witness", domain.CategoryContract},
	{"employment contract salary benefits terms conditions agreement twelve months notice", domain.CategoryContract},
	{"service contract software development technical consulting services monthly fee", domain.CategoryContract},
	{"agreement entered provider client services outlined exhibit attached incorporated", domain.CategoryContract},
	{"contract terms payment schedule deliverables obligations effective date signature", domain.CategoryContract},

	// Other: general correspondence and miscellany.
	{"general document information text content miscellaneous correspondence communication", domain.CategoryOther},
	{"letter correspondence communication general information document material content", domain.CategoryOther},
	{"notes information general content document text material miscellaneous data", domain.CategoryOther},
	{"general correspondence letter communication information document content material", domain.CategoryOther},
	{"miscellaneous document general information content text material data notes", domain.CategoryOther},
}

// SeedCorpus returns a copy of the embedded training corpus.
func SeedCorpus() []LabeledDocument {
	out := make([]LabeledDocument, len(seedCorpus))
	copy(out, seedCorpus)
	return out
}
