package routes

import (
	"time"

	"github.com/LovationAdmin/stress-api/handlers"
	"github.com/LovationAdmin/stress-api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterOptions struct {
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
}

// NewRouter builds the gin engine with the full middleware chain.
func NewRouter(service handlers.StressAnalyzer, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	SetupHealthRoutes(router)

	api := router.Group("/")
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Middleware())
	}
	SetupStressRoutes(api, service)

	return router
}
