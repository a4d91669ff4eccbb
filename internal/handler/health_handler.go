package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger is anything that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store  Pinger
	board  Pinger
	logger *zap.Logger
}

func NewHealthHandler(store, board Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		board:  board,
		logger: logger,
	}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "board-web",
	})
}

// Ready checks the view-state store and the board API
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", "session store"), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "session store unavailable",
			})
			return
		}
	}

	if h.board != nil {
		if err := h.board.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.String("dependency", "board-api"), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  "board-api unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ready",
		"service": "board-web",
	})
}
