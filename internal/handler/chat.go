package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hitechhomes/internal/model"
	"hitechhomes/internal/service"
)

const apologyReply = "I apologize, but I encountered an error. Please try again or contact our support team."

// ChatHandler handles chatbot HTTP requests
type ChatHandler struct {
	chatService *service.ChatService
	log         zerolog.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, log: log}
}

// HandleMessage handles POST /api/chatbot/message
func (h *ChatHandler) HandleMessage(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Message is required",
		})
		return
	}

	// The pipeline degrades internally; this guard covers anything it missed
	// so the user still gets a reply string.
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Msg("chat handler panicked")
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Failed to process message",
				"reply":   apologyReply,
			})
		}
	}()

	response := h.chatService.HandleMessage(c.Request.Context(), req)
	c.JSON(http.StatusOK, response)
}
