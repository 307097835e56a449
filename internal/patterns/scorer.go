package patterns

import (
	"strings"
	"sync"

	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/logger"
)

// Scorer evaluates the rule library against raw document text and produces
// one normalized score per category. Scoring is order-independent: positive
// contributions are summed and normalized first, anti-pattern penalties are
// subtracted strictly afterwards.
type Scorer struct {
	mu       sync.RWMutex
	builtin  []domain.PatternRule
	user     []domain.PatternRule
	engine   *keywordEngine
	maxScore map[domain.Category]float64
	logger   logger.Logger
}

// NewScorer builds a Scorer over the built-in rule library.
func NewScorer(rules []domain.PatternRule, log logger.Logger) *Scorer {
	s := &Scorer{
		builtin: rules,
		logger:  log,
	}
	// No lock needed in constructor, the scorer is not yet shared.
	s.rebuildLocked()

	if log != nil {
		log.Info("pattern scorer initialized",
			logger.Int("rules", len(rules)))
	}
	return s
}

// rebuildLocked recomputes the keyword automaton and per-category score
// ceilings. MUST be called with s.mu held (or from the constructor).
func (s *Scorer) rebuildLocked() {
	all := s.allRulesLocked()
	s.engine = newKeywordEngine(all)

	s.maxScore = make(map[domain.Category]float64, domain.NumCategories)
	for _, rule := range all {
		if rule.AntiPattern {
			continue
		}
		s.maxScore[rule.Category] += rule.Weight
	}
}

func (s *Scorer) allRulesLocked() []domain.PatternRule {
	all := make([]domain.PatternRule, 0, len(s.builtin)+len(s.user))
	all = append(all, s.builtin...)
	all = append(all, s.user...)
	return all
}

// UpdateUserRules hot-swaps the user-defined rule set and rebuilds the
// automaton atomically. Built-in rules are unaffected.
func (s *Scorer) UpdateUserRules(rules []domain.PatternRule) {
	s.mu.Lock()
	s.user = rules
	s.rebuildLocked()
	ruleCount := len(s.builtin) + len(s.user)
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Info("pattern scorer rules updated",
			logger.Int("user_rules", len(rules)),
			logger.Int("total_rules", ruleCount))
	}
}

// RuleCount returns the number of active rules, built-in plus user-defined.
func (s *Scorer) RuleCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.builtin) + len(s.user)
}

// Score evaluates every rule against the text. Each positive rule
// contributes its weight tier at most once; the per-category sum is divided
// by the category's maximum attainable score, then a fixed penalty is
// subtracted once per matched anti-pattern rule and the result is floored
// at zero. Empty or whitespace-only text yields the all-zero vector.
func (s *Scorer) Score(rawText string) domain.ScoreVector {
	scores := domain.NewScoreVector()
	if strings.TrimSpace(rawText) == "" {
		return scores
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := normalizeText(rawText)
	keywordHits := s.engine.matchedRules(normalized)

	positive := make(map[domain.Category]float64, domain.NumCategories)
	penalties := make(map[domain.Category]int, domain.NumCategories)
	for _, rule := range s.allRulesLocked() {
		if !ruleMatches(rule, rawText, keywordHits) {
			continue
		}
		if rule.AntiPattern {
			penalties[rule.Category]++
		} else {
			positive[rule.Category] += rule.Weight
		}
	}

	for _, cat := range domain.Categories() {
		ceiling := s.maxScore[cat]
		if ceiling <= 0 {
			continue
		}
		score := positive[cat]/ceiling - float64(penalties[cat])*domain.AntiPatternPenalty
		if score < 0 {
			score = 0
		}
		scores[cat] = score
	}
	return scores
}

func ruleMatches(rule domain.PatternRule, rawText string, keywordHits map[string]bool) bool {
	if rule.Pattern != nil {
		return rule.Pattern.MatchString(rawText)
	}
	return keywordHits[rule.Name]
}
