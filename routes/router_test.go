package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

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

type upstreams struct {
	health *httptest.Server
	openai *httptest.Server
}

func startUpstreams(t *testing.T, narrative string) upstreams {
	t.Helper()

	health := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"dailyData":[
			{"date":"2025-03-01","heartRate":100,"sleepHours":7,"systolicPressure":120,"diastolicPressure":80},
			{"date":"2025-03-02","heartRate":80,"sleepHours":5.5,"systolicPressure":141,"diastolicPressure":90}
		]}`)
	}))
	t.Cleanup(health.Close)

	openai := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"c1","object":"chat.completion","model":"gpt-4.1",
			"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, narrative)
	}))
	t.Cleanup(openai.Close)

	return upstreams{health: health, openai: openai}
}

func writeStatement(t *testing.T, rows int) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("\xEF\xBB\xBFDate,Description,Type,Money In (£),Money Out (£),Balance (£)\n")
	for i := 1; i <= rows; i++ {
		fmt.Fprintf(&b, "%02d/03/2025,Payment %d,FPI,\"1,%03d.00\",200.00,\"5,000.00\"\n", i, i, i)
	}
	path := filepath.Join(t.TempDir(), "Statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o600))
	return path
}

func newRouter(t *testing.T, up upstreams, statement string) *gin.Engine {
	t.Helper()

	svc := services.NewStressService(
		statement,
		10,
		services.NewHealthClient(up.health.URL, 5*time.Second),
		services.NewOpenAIAssessor(services.OpenAIAssessorConfig{
			APIKey:  "sk-test",
			BaseURL: up.openai.URL + "/v1",
			Timeout: 5 * time.Second,
		}),
		services.NewKeywordClassifier(),
	)
	return NewRouter(svc, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		RateLimiter:    middleware.NewRateLimiter(100),
	})
}

func post(r http.Handler, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"ignored":true}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_AnalyzeStress(t *testing.T) {
	r := newRouter(t, startUpstreams(t, "Clear signs of stress and some anxiety."), writeStatement(t, 3))

	rec := post(r, "/analyze-stress")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	requestID := rec.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, requestID)

	var got models.StressAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, requestID, got.RequestID)
	assert.Equal(t, models.StressHigh, got.FinancialStress)
	// means: hr 90, sleep 6.25, systolic 130.5
	assert.Equal(t, models.HealthStressLevels{
		HeartRateStress:     models.StressMedium,
		SleepStress:         models.StressMedium,
		BloodPressureStress: models.StressMedium,
	}, got.MentalStress)
}

func TestRouter_DailyHealthStress(t *testing.T) {
	r := newRouter(t, startUpstreams(t, "calm"), writeStatement(t, 1))

	rec := post(r, "/analyze-daily-health-stress")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `[
		{"date":"2025-03-01","stress_levels":{"heart_rate_stress":"medium","sleep_stress":"low","blood_pressure_stress":"low"}},
		{"date":"2025-03-02","stress_levels":{"heart_rate_stress":"low","sleep_stress":"high","blood_pressure_stress":"high"}}
	]`, rec.Body.String())
}

func TestRouter_DailyFinancialStress(t *testing.T) {
	r := newRouter(t, startUpstreams(t, "calm"), writeStatement(t, 15))

	rec := post(r, "/analyze-daily-financial-stress")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got []models.DailyFinancialStressResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 10)
	for i, res := range got {
		assert.Equal(t, fmt.Sprintf("%02d/03/2025", i+1), res.Date)
		// net cash flow is 801..810
		assert.Equal(t, models.StressMedium, res.FinancialStress)
	}
}

func TestRouter_MissingStatement(t *testing.T) {
	r := newRouter(t, startUpstreams(t, "calm"), filepath.Join(t.TempDir(), "missing.csv"))

	rec := post(r, "/analyze-daily-financial-stress")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "transaction source not found")
}

func TestRouter_HealthUpstreamDown(t *testing.T) {
	up := startUpstreams(t, "calm")
	up.health.Close()
	r := newRouter(t, up, writeStatement(t, 1))

	rec := post(r, "/analyze-daily-health-stress")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRouter_HealthAndCORS(t *testing.T) {
	r := newRouter(t, startUpstreams(t, "calm"), writeStatement(t, 1))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
