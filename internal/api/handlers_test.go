package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/classifier/internal/auth"
	"github.com/papertrail/classifier/internal/classifier"
	"github.com/papertrail/classifier/internal/database"
	"github.com/papertrail/classifier/internal/domain"
	"github.com/papertrail/classifier/internal/logger"
	"github.com/papertrail/classifier/internal/model"
	"github.com/papertrail/classifier/internal/patterns"
	"github.com/papertrail/classifier/internal/processor"
	"github.com/papertrail/classifier/internal/telemetry"
)

// Prometheus collectors register globally, so the provider is shared across
// all tests in this package.
var testTelemetry = telemetry.NewProvider()

const invoiceText = `INVOICE #2024-0042
Bill To: Acme Corporation
Invoice Number: INV-2024-0042
Payment Due Date: 2024-03-15
Subtotal: $4,500.00
Tax: $360.00
Amount Due: $4,860.00
Please remit payment within 30 days.`

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type testEnv struct {
	router  *gin.Engine
	handler *Handler
	history *database.HistoryRepository
	engine  *classifier.Engine
}

func newTestEnv(t *testing.T, jwtSecret string) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle, err := model.TrainSeed(true)
	require.NoError(t, err)

	scorer := patterns.NewScorer(patterns.DefaultRules(), logger.NewNop())
	engine := classifier.NewEngine(bundle, scorer, logger.NewNop(), nil, classifier.Config{Version: "test"})
	batch := processor.NewBatchProcessor(engine, 2, nopLogger{}, nil)

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(db))

	history := database.NewHistoryRepository(db)
	handler := NewHandler(engine, batch, database.NewRulesRepository(db), history, nopLogger{})

	router := gin.New()
	RegisterRoutes(router, handler, testTelemetry, jwtSecret)

	return &testEnv{router: router, handler: handler, history: history, engine: engine}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func TestClassifyEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{
		Text:     invoiceText,
		Filename: "invoice.txt",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[domain.ClassificationResult](t, rec)
	assert.Equal(t, domain.CategoryInvoice, result.Category)
	assert.Greater(t, result.Confidence, 0.5)
	assert.Equal(t, "invoice.txt", result.Filename)
	assert.Len(t, result.Breakdown, domain.NumCategories)

	records, err := env.history.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "invoice", records[0].Category)
}

func TestGetClassificationByDocumentID(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Text: invoiceText}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[domain.ClassificationResult](t, rec)

	rec = env.do(t, http.MethodGet, "/api/v1/classify/"+result.DocumentID, nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	record := decode[domain.ClassificationRecord](t, rec)
	assert.Equal(t, result.DocumentID, record.DocumentID)
	assert.Equal(t, "invoice", record.Category)

	rec = env.do(t, http.MethodGet, "/api/v1/classify/not-a-real-id", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassifyRejectsMissingText(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/classify", map[string]string{"filename": "x.txt"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClassifyBatchPreservesOrder(t *testing.T) {
	env := newTestEnv(t, "")

	req := BatchClassifyRequest{Documents: []ClassifyRequest{
		{Text: invoiceText, Filename: "a.txt"},
		{Text: "quarterly report with executive summary and key findings", Filename: "b.txt"},
		// Whitespace passes the required binding but is empty to the
		// engine, which answers with the neutral result.
		{Text: "   ", Filename: "c.txt"},
	}}
	rec := env.do(t, http.MethodPost, "/api/v1/classify/batch", req, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[BatchClassifyResponse](t, rec)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "a.txt", resp.Results[0].Filename)
	assert.Equal(t, "b.txt", resp.Results[1].Filename)
	assert.Equal(t, "c.txt", resp.Results[2].Filename)
	assert.Equal(t, domain.CategoryInvoice, resp.Results[0].Category)
	assert.Equal(t, domain.CategoryOther, resp.Results[2].Category)
}

func TestClassifyBatchSizeLimit(t *testing.T) {
	env := newTestEnv(t, "")

	docs := make([]ClassifyRequest, maxBatchSize+1)
	for i := range docs {
		docs[i] = ClassifyRequest{Text: fmt.Sprintf("document %d", i)}
	}
	rec := env.do(t, http.MethodPost, "/api/v1/classify/batch", BatchClassifyRequest{Documents: docs}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuleLifecycleReloadsEngine(t *testing.T) {
	env := newTestEnv(t, "")
	baseline := env.engine.RuleCount()

	rec := env.do(t, http.MethodPost, "/api/v1/rules", RuleRequest{
		RuleName: "custom_receipt",
		Category: "invoice",
		Keywords: []string{"zorble flange"},
		Weight:   "high",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[RuleResponse](t, rec)
	assert.Equal(t, "high", created.Weight)
	assert.True(t, created.Enabled)
	assert.Equal(t, baseline+1, env.engine.RuleCount())

	// The new keyword now contributes pattern evidence.
	classifyRec := env.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{
		Text: "please process the zorble flange immediately",
	}, "")
	require.Equal(t, http.StatusOK, classifyRec.Code)
	result := decode[domain.ClassificationResult](t, classifyRec)
	assert.Greater(t, result.Breakdown[domain.CategoryInvoice].PatternScore, 0.0)

	// Disable it via update and the engine drops back to the baseline.
	disabled := false
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/rules/%d", created.ID), RuleRequest{
		RuleName: "custom_receipt",
		Category: "invoice",
		Keywords: []string{"zorble flange"},
		Weight:   "high",
		Enabled:  &disabled,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, baseline, env.engine.RuleCount())

	rec = env.do(t, http.MethodGet, "/api/v1/rules?enabled=false", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/rules/%d", created.ID), nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/rules/%d", created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRuleValidation(t *testing.T) {
	env := newTestEnv(t, "")

	tests := []struct {
		name string
		req  RuleRequest
	}{
		{"unknown category", RuleRequest{RuleName: "r", Category: "spam", Keywords: []string{"x"}}},
		{"unknown weight", RuleRequest{RuleName: "r", Category: "memo", Keywords: []string{"x"}, Weight: "huge"}},
		{"empty keywords", RuleRequest{RuleName: "r", Category: "memo", Keywords: []string{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/api/v1/rules", tt.req, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestRuleMutationsRequireToken(t *testing.T) {
	const secret = "test-secret"
	env := newTestEnv(t, secret)

	req := RuleRequest{RuleName: "r", Category: "memo", Keywords: []string{"team lunch"}}

	rec := env.do(t, http.MethodPost, "/api/v1/rules", req, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/rules", req, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := auth.GenerateToken(secret, "admin", "admin", time.Hour)
	require.NoError(t, err)
	rec = env.do(t, http.MethodPost, "/api/v1/rules", req, token)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Reads stay open.
	rec = env.do(t, http.MethodGet, "/api/v1/rules", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStatsReflectActivity(t *testing.T) {
	env := newTestEnv(t, "")

	for i := 0; i < 3; i++ {
		rec := env.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Text: invoiceText}, "")
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := env.do(t, http.MethodGet, "/api/v1/stats", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	stats := decode[StatsResponse](t, rec)
	assert.Equal(t, 3, stats.TotalClassified)
	assert.Equal(t, 3, stats.ByCategory["invoice"])
	assert.Equal(t, "test", stats.EngineVersion)
	assert.Greater(t, stats.ActiveRules, 0)
}

func TestHistoryEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodPost, "/api/v1/classify", ClassifyRequest{Text: invoiceText, Filename: "inv.txt"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/history?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "inv.txt")

	rec = env.do(t, http.MethodGet, "/api/v1/history?limit=zero", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, "")

	rec := env.do(t, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
