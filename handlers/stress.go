package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/LovationAdmin/stress-api/middleware"
	"github.com/LovationAdmin/stress-api/models"
	"github.com/LovationAdmin/stress-api/services"
	"github.com/LovationAdmin/stress-api/utils"

	"github.com/gin-gonic/gin"
)

// StressAnalyzer is what the handlers need from the stress service.
type StressAnalyzer interface {
	AnalyzeStress(ctx context.Context, userID int) (*models.StressAnalysis, error)
	DailyHealthStress(ctx context.Context, userID int) ([]models.DailyStressResult, error)
	DailyFinancialStress(ctx context.Context) ([]models.DailyFinancialStressResult, error)
}

type StressHandler struct {
	Service StressAnalyzer
}

func NewStressHandler(service StressAnalyzer) *StressHandler {
	return &StressHandler{Service: service}
}

// AnalyzeStress handles POST /analyze-stress. The request body is ignored.
func (h *StressHandler) AnalyzeStress(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	analysis, err := h.Service.AnalyzeStress(c.Request.Context(), userID)
	utils.LogAnalysis(requestID, "analyze-stress", 1, err)
	if err != nil {
		respondError(c, err)
		return
	}

	analysis.RequestID = requestID
	c.JSON(http.StatusOK, analysis)
}

// AnalyzeDailyHealthStress handles POST /analyze-daily-health-stress.
func (h *StressHandler) AnalyzeDailyHealthStress(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	results, err := h.Service.DailyHealthStress(c.Request.Context(), userID)
	utils.LogAnalysis(requestID, "daily-health-stress", len(results), err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// AnalyzeDailyFinancialStress handles POST /analyze-daily-financial-stress.
func (h *StressHandler) AnalyzeDailyFinancialStress(c *gin.Context) {
	requestID := middleware.GetRequestID(c)

	results, err := h.Service.DailyFinancialStress(c.Request.Context())
	utils.LogAnalysis(requestID, "daily-financial-stress", len(results), err)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// parseUserID reads the optional user_id query parameter. Zero means
// "use the configured default".
func parseUserID(c *gin.Context) (int, bool) {
	raw := c.Query("user_id")
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be a positive integer"})
		return 0, false
	}
	return id, true
}

// respondError maps service errors onto HTTP responses.
func respondError(c *gin.Context, err error) {
	var (
		parseErr    *services.ParseError
		upstreamErr *services.UpstreamError
	)

	// Details stay in the logs written by LogAnalysis.

	switch {
	case errors.Is(err, services.ErrSourceNotFound):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "transaction source not found"})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to parse transactions"})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamErr.Service + " unavailable", "status": upstreamErr.StatusCode})
	case errors.Is(err, services.ErrEmptyWindow):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no health samples available"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
