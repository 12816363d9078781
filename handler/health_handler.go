package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthChecker interface {
	Check(ctx context.Context) error
}

type HealthHandler struct {
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker) *HealthHandler {
	return &HealthHandler{checker: checker}
}

// Health GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.checker.Check(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "DOWN",
			"database": "error: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"database": "connected",
	})
}
