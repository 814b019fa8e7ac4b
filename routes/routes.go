package routes

import (
	"github.com/LovationAdmin/stress-api/handlers"

	"github.com/gin-gonic/gin"
)

// SetupHealthRoutes sets up the public liveness route.
func SetupHealthRoutes(r gin.IRoutes) {
	r.GET("/health", handlers.Health)
}

// SetupStressRoutes sets up the analysis routes. Request bodies are not read.
func SetupStressRoutes(r gin.IRoutes, service handlers.StressAnalyzer) {
	h := handlers.NewStressHandler(service)

	r.POST("/analyze-stress", h.AnalyzeStress)
	r.POST("/analyze-daily-health-stress", h.AnalyzeDailyHealthStress)
	r.POST("/analyze-daily-financial-stress", h.AnalyzeDailyFinancialStress)
}
