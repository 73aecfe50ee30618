package api

import (
	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askcontract/internal/api/chat"
	"github.com/liliang-cn/askcontract/internal/api/contracts"
	"github.com/liliang-cn/askcontract/internal/api/middleware"
	"github.com/liliang-cn/askcontract/internal/api/settings"
	"github.com/liliang-cn/askcontract/internal/repository"
	"github.com/liliang-cn/askcontract/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	analysisService *service.AnalysisService,
	chatService *service.ChatService,
	settingsRepo *repository.SettingsRepository,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API (optionally requires API key)
	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.Auth(cfg.APIKey))

	contractsHandler := contracts.NewHandler(analysisService)
	contractsGroup := apiGroup.Group("/contracts")
	contractsHandler.RegisterRoutes(contractsGroup)

	chatHandler := chat.NewHandler(chatService)
	chatHandler.RegisterRoutes(contractsGroup)

	settingsHandler := settings.NewHandler(settingsRepo)
	settingsGroup := apiGroup.Group("/settings")
	settingsHandler.RegisterRoutes(settingsGroup)

	return r
}
