package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hitechhomes/internal/model"
)

// ChatStatsReader serves chatbot aggregates for the admin dashboard
type ChatStatsReader interface {
	GetChatStats(ctx context.Context) (*model.ChatStats, error)
}

// StatsHandler handles admin analytics HTTP requests
type StatsHandler struct {
	store ChatStatsReader
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(store ChatStatsReader) *StatsHandler {
	return &StatsHandler{store: store}
}

// ChatStats handles GET /api/admin/chat-stats
func (h *StatsHandler) ChatStats(c *gin.Context) {
	stats, err := h.store.GetChatStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
