package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LovationAdmin/stress-api/config"
	"github.com/LovationAdmin/stress-api/handlers"
	"github.com/LovationAdmin/stress-api/middleware"
	"github.com/LovationAdmin/stress-api/routes"
	"github.com/LovationAdmin/stress-api/services"
	"github.com/LovationAdmin/stress-api/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	cfg.Print()

	gin.SetMode(cfg.GinMode)
	utils.InitLogger(cfg.LogLevel, cfg.IsProduction())

	healthClient := services.NewHealthClient(cfg.HealthServiceURL, cfg.HealthTimeout)
	assessor := services.NewOpenAIAssessor(services.OpenAIAssessorConfig{
		APIKey:    cfg.OpenAIAPIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.OpenAIModel,
		MaxTokens: cfg.OpenAIMaxTokens,
		Timeout:   cfg.OpenAITimeout,
	})
	stressService := services.NewStressService(
		cfg.TransactionsPath,
		cfg.DefaultUserID,
		healthClient,
		assessor,
		services.NewKeywordClassifier(),
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)
	stopCleanup := make(chan struct{})
	go limiter.RunCleanup(time.Minute, stopCleanup)

	router := routes.NewRouter(stressService, routes.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// An analysis may wait on both outbound calls.
		WriteTimeout: cfg.HealthTimeout + cfg.OpenAITimeout + 10*time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		utils.LogStartup("stress-api", handlers.Version, cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log().Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	utils.Log().Info().Msg("Shutting down gracefully...")
	close(stopCleanup)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Log().Error().Err(err).Msg("Shutdown error")
	}
	utils.Log().Info().Msg("Shutdown complete")
}
