package domain

import (
	"regexp"
	"time"
)

// Weight tiers for positive pattern rules.
const (
	WeightHigh   = 0.4
	WeightMedium = 0.3
	WeightLow    = 0.15
)

// AntiPatternPenalty is subtracted from a category's normalized pattern
// score once per matched anti-pattern rule.
const AntiPatternPenalty = 0.15

// PatternRule is a weighted matcher tied to exactly one category. A rule
// matches through either a compiled regex or a keyword set (at least one
// keyword present in the text). Positive rules contribute their weight
// once per document; anti-pattern rules subtract a fixed penalty.
type PatternRule struct {
	Name     string
	Category Category
	// Exactly one of Pattern or Keywords is set.
	Pattern  *regexp.Regexp
	Keywords []string
	Weight   float64
	// AntiPattern marks a negative-evidence rule; Weight is ignored and
	// the fixed penalty applies instead.
	AntiPattern bool
}

// KeywordRule is a user-defined keyword rule persisted in the database and
// merged into the rule library at startup.
type KeywordRule struct {
	ID        int64     `db:"id"         json:"id"`
	RuleName  string    `db:"rule_name"  json:"rule_name"`
	Category  string    `db:"category"   json:"category"`
	Keywords  []string  `db:"-"          json:"keywords"`
	Weight    float64   `db:"weight"     json:"weight"`
	Anti      bool      `db:"anti"       json:"anti"`
	Enabled   bool      `db:"enabled"    json:"enabled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
