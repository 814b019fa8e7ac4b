package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const Version = "1.0.0"

// Health is the liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": Version,
		"time":    time.Now().Format(time.RFC3339),
	})
}
