package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LovationAdmin/stress-api/middleware"
	"github.com/LovationAdmin/stress-api/models"
	"github.com/LovationAdmin/stress-api/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAnalyzer struct {
	analysis  *models.StressAnalysis
	health    []models.DailyStressResult
	financial []models.DailyFinancialStressResult
	err       error
	userID    int
}

func (f *fakeAnalyzer) AnalyzeStress(ctx context.Context, userID int) (*models.StressAnalysis, error) {
	f.userID = userID
	return f.analysis, f.err
}

func (f *fakeAnalyzer) DailyHealthStress(ctx context.Context, userID int) ([]models.DailyStressResult, error) {
	f.userID = userID
	return f.health, f.err
}

func (f *fakeAnalyzer) DailyFinancialStress(ctx context.Context) ([]models.DailyFinancialStressResult, error) {
	return f.financial, f.err
}

func newTestRouter(svc StressAnalyzer) *gin.Engine {
	r := gin.New()
	h := NewStressHandler(svc)
	r.POST("/analyze-stress", h.AnalyzeStress)
	r.POST("/analyze-daily-health-stress", h.AnalyzeDailyHealthStress)
	r.POST("/analyze-daily-financial-stress", h.AnalyzeDailyFinancialStress)
	r.GET("/health", Health)
	return r
}

func perform(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeStress_OK(t *testing.T) {
	svc := &fakeAnalyzer{analysis: &models.StressAnalysis{
		FinancialStress: models.StressHigh,
		MentalStress: models.HealthStressLevels{
			HeartRateStress:     models.StressLow,
			SleepStress:         models.StressMedium,
			BloodPressureStress: models.StressHigh,
		},
	}}

	rec := perform(newTestRouter(svc), http.MethodPost, "/analyze-stress")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "high", body["financial_stress"])
	assert.Equal(t, map[string]any{
		"heart_rate_stress":     "low",
		"sleep_stress":          "medium",
		"blood_pressure_stress": "high",
	}, body["mental_stress"])
	assert.Equal(t, 0, svc.userID)
}

func TestAnalyzeStress_EchoesRequestID(t *testing.T) {
	svc := &fakeAnalyzer{analysis: &models.StressAnalysis{FinancialStress: models.StressLow}}
	r := gin.New()
	r.Use(middleware.RequestID())
	r.POST("/analyze-stress", NewStressHandler(svc).AnalyzeStress)

	rec := perform(r, http.MethodPost, "/analyze-stress")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["request_id"])
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), body["request_id"])
}

func TestParseErrorHidesDetail(t *testing.T) {
	err := &services.ParseError{Line: 3, Column: "Balance (£)", Err: errors.New(`invalid amount "abc"`)}
	rec := perform(newTestRouter(&fakeAnalyzer{err: err}), http.MethodPost, "/analyze-daily-financial-stress")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"failed to parse transactions"}`, rec.Body.String())
}

func TestAnalyzeDailyHealthStress_UserIDQuery(t *testing.T) {
	svc := &fakeAnalyzer{health: []models.DailyStressResult{{Date: "2025-03-01"}}}
	r := newTestRouter(svc)

	rec := perform(r, http.MethodPost, "/analyze-daily-health-stress?user_id=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, svc.userID)

	rec = perform(r, http.MethodPost, "/analyze-daily-health-stress?user_id=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodPost, "/analyze-daily-health-stress?user_id=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeDailyFinancialStress_OK(t *testing.T) {
	svc := &fakeAnalyzer{financial: []models.DailyFinancialStressResult{
		{Date: "01/03/2025", FinancialStress: models.StressLow},
		{Date: "02/03/2025", FinancialStress: models.StressHigh},
	}}

	rec := perform(newTestRouter(svc), http.MethodPost, "/analyze-daily-financial-stress")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"date":"01/03/2025","financial_stress":"low"},
		{"date":"02/03/2025","financial_stress":"high"}
	]`, rec.Body.String())
}

func TestErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", services.ErrSourceNotFound, http.StatusInternalServerError},
		{"parse", &services.ParseError{Line: 3, Column: "Balance (£)", Err: errors.New("bad")}, http.StatusInternalServerError},
		{"upstream", &services.UpstreamError{Service: "health service", StatusCode: 503, Err: errors.New("down")}, http.StatusBadGateway},
		{"empty window", services.ErrEmptyWindow, http.StatusUnprocessableEntity},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := perform(newTestRouter(&fakeAnalyzer{err: tc.err}), http.MethodPost, "/analyze-stress")
			assert.Equal(t, tc.code, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHealth(t *testing.T) {
	rec := perform(newTestRouter(&fakeAnalyzer{}), http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
