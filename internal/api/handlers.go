// Package api exposes the classification engine over HTTP: classify
// endpoints, keyword-rule management, and history queries.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/papertrail/classifier/internal/classifier"
	"github.com/papertrail/classifier/internal/database"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/patterns"
	"github.com/papertrail/classifier/internal/processor"
)

// Logger is the minimal logging interface the handlers need.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Handler holds the dependencies for all API endpoints.
type Handler struct {
	engine  *classifier.Engine
	batch   *processor.BatchProcessor
	rules   *database.RulesRepository
	history *database.HistoryRepository
	logger  Logger
}

// NewHandler creates an API handler. The rules and history repositories may
// be nil when the service runs without a database; the affected endpoints
// then return 503.
func NewHandler(
	engine *classifier.Engine,
	batch *processor.BatchProcessor,
	rules *database.RulesRepository,
	history *database.HistoryRepository,
	log Logger,
) *Handler {
	return &Handler{
		engine:  engine,
		batch:   batch,
		rules:   rules,
		history: history,
		logger:  log,
	}
}

// Classify handles POST /api/v1/classify.
func (h *Handler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	doc := domain.NewDocument(uuid.NewString(), req.Filename, req.Text)
	result := h.engine.Classify(c.Request.Context(), doc)
	h.saveResult(c, result)

	c.JSON(http.StatusOK, result)
}

// ClassifyBatch handles POST /api/v1/classify/batch.
func (h *Handler) ClassifyBatch(c *gin.Context) {
	var req BatchClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	if len(req.Documents) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "documents must not be empty"})
		return
	}
	if len(req.Documents) > maxBatchSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "batch size " + strconv.Itoa(len(req.Documents)) + " exceeds limit " + strconv.Itoa(maxBatchSize),
		})
		return
	}

	docs := make([]*domain.Document, len(req.Documents))
	for i, d := range req.Documents {
		docs[i] = domain.NewDocument(uuid.NewString(), d.Filename, d.Text)
	}

	items, err := h.batch.Process(c.Request.Context(), docs)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "batch aborted: " + err.Error()})
		return
	}

	results := make([]*domain.ClassificationResult, len(items))
	for i, item := range items {
		results[i] = item.Result
		h.saveResult(c, item.Result)
	}

	c.JSON(http.StatusOK, BatchClassifyResponse{Count: len(results), Results: results})
}

// GetClassification handles GET /api/v1/classify/:document_id, returning
// the stored record for a previously classified document.
func (h *Handler) GetClassification(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	record, err := h.history.GetByDocumentID(c.Request.Context(), c.Param("document_id"))
	if err != nil {
		if errors.Is(err, database.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
			return
		}
		h.logger.Error("classification lookup failed", "document_id", c.Param("document_id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up classification"})
		return
	}
	c.JSON(http.StatusOK, record)
}

// ListRules handles GET /api/v1/rules. The optional enabled query parameter
// filters by state.
func (h *Handler) ListRules(c *gin.Context) {
	if !h.requireRules(c) {
		return
	}

	var enabled *bool
	if raw := c.Query("enabled"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enabled must be true or false"})
			return
		}
		enabled = &v
	}

	rules, err := h.rules.List(c.Request.Context(), enabled)
	if err != nil {
		h.logger.Error("list rules failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list rules"})
		return
	}

	out := make([]RuleResponse, len(rules))
	for i := range rules {
		out[i] = toRuleResponse(&rules[i])
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "rules": out})
}

// CreateRule handles POST /api/v1/rules.
func (h *Handler) CreateRule(c *gin.Context) {
	if !h.requireRules(c) {
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	rule, err := h.ruleFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.rules.Create(c.Request.Context(), rule); err != nil {
		h.logger.Error("create rule failed", "rule", rule.RuleName, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create rule"})
		return
	}

	h.reloadRules(c)
	c.JSON(http.StatusCreated, toRuleResponse(rule))
}

// UpdateRule handles PUT /api/v1/rules/:id.
func (h *Handler) UpdateRule(c *gin.Context) {
	if !h.requireRules(c) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	var req RuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	rule, err := h.ruleFromRequest(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rule.ID = id

	if err := h.rules.Update(c.Request.Context(), rule); err != nil {
		h.logger.Error("update rule failed", "id", id, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.reloadRules(c)
	c.JSON(http.StatusOK, toRuleResponse(rule))
}

// DeleteRule handles DELETE /api/v1/rules/:id.
func (h *Handler) DeleteRule(c *gin.Context) {
	if !h.requireRules(c) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	if err := h.rules.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	h.reloadRules(c)
	c.Status(http.StatusNoContent)
}

// GetHistory handles GET /api/v1/history.
func (h *Handler) GetHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "history storage not configured"})
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = v
	}

	records, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("history query failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query history"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(records), "history": records})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	stats := StatsResponse{
		ByCategory:    map[string]int{},
		ActiveRules:   h.engine.RuleCount(),
		EngineVersion: h.engine.Version(),
	}

	if h.history != nil {
		counts, err := h.history.CountByCategory(c.Request.Context())
		if err != nil {
			h.logger.Error("stats query failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query stats"})
			return
		}
		stats.ByCategory = counts
		for _, n := range counts {
			stats.TotalClassified += n
		}
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) ruleFromRequest(req *RuleRequest) (*domain.KeywordRule, error) {
	if !domain.ValidCategory(req.Category) {
		return nil, errInvalidCategory(req.Category)
	}
	weight, err := weightFromLabel(req.Weight)
	if err != nil {
		return nil, err
	}
	keywords := make([]string, 0, len(req.Keywords))
	for _, kw := range req.Keywords {
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil, errEmptyKeywords
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	return &domain.KeywordRule{
		RuleName: req.RuleName,
		Category: req.Category,
		Keywords: keywords,
		Weight:   weight,
		Anti:     req.Anti,
		Enabled:  enabled,
	}, nil
}

// reloadRules pushes the current enabled rule set from the database into the
// running engine so mutations take effect without a restart.
func (h *Handler) reloadRules(c *gin.Context) {
	rows, err := h.rules.ListEnabled(c.Request.Context())
	if err != nil {
		h.logger.Error("rule reload failed", "error", err)
		return
	}
	h.engine.UpdateRules(patterns.FromKeywordRules(rows))
	h.logger.Info("rules reloaded", "user_rules", len(rows), "total_rules", h.engine.RuleCount())
}

func (h *Handler) requireRules(c *gin.Context) bool {
	if h.rules == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "rule storage not configured"})
		return false
	}
	return true
}

func (h *Handler) saveResult(c *gin.Context, result *domain.ClassificationResult) {
	if h.history == nil {
		return
	}
	if err := h.history.SaveResult(c.Request.Context(), result); err != nil {
		h.logger.Warn("history save failed", "document_id", result.DocumentID, "error", err)
	}
}
