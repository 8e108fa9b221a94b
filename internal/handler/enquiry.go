package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"hitechhomes/internal/model"
)

// EnquiryStore persists visitor contact requests
type EnquiryStore interface {
	InsertEnquiry(ctx context.Context, e model.EnquiryRequest) error
}

// EnquiryHandler handles enquiry HTTP requests
type EnquiryHandler struct {
	store EnquiryStore
}

// NewEnquiryHandler creates a new enquiry handler
func NewEnquiryHandler(store EnquiryStore) *EnquiryHandler {
	return &EnquiryHandler{store: store}
}

// Submit handles POST /api/enquiries
func (h *EnquiryHandler) Submit(c *gin.Context) {
	var req model.EnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := h.store.InsertEnquiry(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit enquiry"})
		return
	}

	c.JSON(http.StatusOK, model.EnquiryResponse{
		Success: true,
		Message: "Enquiry submitted successfully. Our team will reach out shortly.",
	})
}
