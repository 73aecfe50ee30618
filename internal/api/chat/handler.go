package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askcontract/internal/api/httpx"
	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/service"
)

// Handler handles chat API requests
type Handler struct {
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(chatService *service.ChatService) *Handler {
	return &Handler{chatService: chatService}
}

// RegisterRoutes registers chat routes under the contracts group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/:id/chat", h.Ask)
	r.GET("/:id/chat", h.GetSession)
	r.DELETE("/:id/chat", h.DeleteSession)
}

// Ask sends a question about a contract and returns the assistant's reply.
func (h *Handler) Ask(c *gin.Context) {
	var req domain.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chatService.Ask(c.Request.Context(), c.Param("id"), req.Message)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// GetSession returns the contract's session with all messages.
func (h *Handler) GetSession(c *gin.Context) {
	session, err := h.chatService.GetSession(c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// DeleteSession removes the contract's session.
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.chatService.DeleteSession(c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session deleted"})
}
