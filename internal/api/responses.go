package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/papertrail/classifier/internal/domain"
)

var errEmptyKeywords = errors.New("keywords must contain at least one non-empty entry")

func errInvalidCategory(cat string) error {
	return fmt.Errorf("unknown category %q", cat)
}

// maxBatchSize bounds the number of documents accepted per batch request.
const maxBatchSize = 100

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text     string `json:"text" binding:"required"`
	Filename string `json:"filename"`
}

// BatchClassifyRequest is the body of POST /api/v1/classify/batch.
type BatchClassifyRequest struct {
	Documents []ClassifyRequest `json:"documents" binding:"required"`
}

// BatchClassifyResponse carries the per-document results in request order.
type BatchClassifyResponse struct {
	Count   int                            `json:"count"`
	Results []*domain.ClassificationResult `json:"results"`
}

// RuleRequest is the body for creating or updating a keyword rule. Weight is
// a tier label rather than a raw number.
type RuleRequest struct {
	RuleName string   `json:"rule_name" binding:"required"`
	Category string   `json:"category" binding:"required"`
	Keywords []string `json:"keywords" binding:"required"`
	Weight   string   `json:"weight"`
	Anti     bool     `json:"anti"`
	Enabled  *bool    `json:"enabled"`
}

// RuleResponse is the API shape of a stored keyword rule.
type RuleResponse struct {
	ID        int64    `json:"id"`
	RuleName  string   `json:"rule_name"`
	Category  string   `json:"category"`
	Keywords  []string `json:"keywords"`
	Weight    string   `json:"weight"`
	Anti      bool     `json:"anti"`
	Enabled   bool     `json:"enabled"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
}

// StatsResponse summarizes classification activity and engine state.
type StatsResponse struct {
	TotalClassified int            `json:"total_classified"`
	ByCategory      map[string]int `json:"by_category"`
	ActiveRules     int            `json:"active_rules"`
	EngineVersion   string         `json:"engine_version"`
}

// Weight tier labels accepted by the rules API.
const (
	weightLabelHigh   = "high"
	weightLabelMedium = "medium"
	weightLabelLow    = "low"
)

func weightFromLabel(label string) (float64, error) {
	switch label {
	case weightLabelHigh:
		return domain.WeightHigh, nil
	case weightLabelMedium, "":
		return domain.WeightMedium, nil
	case weightLabelLow:
		return domain.WeightLow, nil
	default:
		return 0, fmt.Errorf("unknown weight %q, expected high, medium or low", label)
	}
}

func labelFromWeight(w float64) string {
	switch {
	case w >= domain.WeightHigh:
		return weightLabelHigh
	case w >= domain.WeightMedium:
		return weightLabelMedium
	default:
		return weightLabelLow
	}
}

func toRuleResponse(rule *domain.KeywordRule) RuleResponse {
	return RuleResponse{
		ID:        rule.ID,
		RuleName:  rule.RuleName,
		Category:  rule.Category,
		Keywords:  rule.Keywords,
		Weight:    labelFromWeight(rule.Weight),
		Anti:      rule.Anti,
		Enabled:   rule.Enabled,
		CreatedAt: rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt: rule.UpdatedAt.Format(time.RFC3339),
	}
}
