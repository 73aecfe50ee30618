package settings

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askcontract/internal/api/httpx"
	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/repository"
)

// Handler handles settings API requests
type Handler struct {
	settingsRepo *repository.SettingsRepository
}

// NewHandler creates a new settings handler
func NewHandler(settingsRepo *repository.SettingsRepository) *Handler {
	return &Handler{settingsRepo: settingsRepo}
}

// RegisterRoutes registers settings routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.Get)
	r.PUT("", h.Update)
}

// Get returns the stored settings with the API key masked.
func (h *Handler) Get(c *gin.Context) {
	settings, err := h.settingsRepo.Get()
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":       settings.Provider,
		"theme":          settings.Theme,
		"language":       settings.Language,
		"api_key_is_set": settings.APIKey != "",
	})
}

// Update stores new settings. An empty api_key keeps the stored one, so a
// client can round-trip the masked Get response without wiping its key.
// Provider changes take effect on the next model call, never on an in-flight
// one.
func (h *Handler) Update(c *gin.Context) {
	var req domain.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Provider != "openai" && req.Provider != "gemini" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider must be openai or gemini"})
		return
	}

	if req.APIKey == "" {
		current, err := h.settingsRepo.Get()
		if err != nil {
			httpx.Error(c, err)
			return
		}
		req.APIKey = current.APIKey
	}

	if err := h.settingsRepo.Save(&req); err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings saved"})
}
