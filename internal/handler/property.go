package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hitechhomes/internal/model"
)

// PropertyReader is the read-only catalog capability the listing endpoints use
type PropertyReader interface {
	FindProperties(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
	CountProperties(ctx context.Context, f model.PropertyFilter) (int, error)
	GetPropertyByID(ctx context.Context, id int64) (*model.Property, error)
}

// PropertyHandler handles property catalog HTTP requests
type PropertyHandler struct {
	store        PropertyReader
	defaultLimit int
	maxLimit     int
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(store PropertyReader, defaultLimit, maxLimit int) *PropertyHandler {
	return &PropertyHandler{store: store, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// List handles GET /api/properties
func (h *PropertyHandler) List(c *gin.Context) {
	filter := model.PropertyFilter{
		Sort:  model.SortNewest,
		Limit: h.defaultLimit,
	}

	if v := c.Query("bhk"); v != "" {
		bhk, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bhk"})
			return
		}
		filter.BHK = &bhk
	}
	if v := c.Query("city"); v != "" {
		city := v
		filter.City = &city
	}
	if v := c.Query("min_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
			return
		}
		filter.PriceMin = &p
	}
	if v := c.Query("max_price"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
			return
		}
		filter.PriceMax = &p
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if filter.Limit > h.maxLimit {
		filter.Limit = h.maxLimit
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	properties, err := h.store.FindProperties(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	total, err := h.store.CountProperties(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"properties": properties,
		"total":      total,
	})
}

// Get handles GET /api/properties/:id
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid property ID"})
		return
	}

	property, err := h.store.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get property"})
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}
