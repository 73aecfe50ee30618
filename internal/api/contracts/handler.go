package contracts

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askcontract/internal/api/httpx"
	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/liliang-cn/askcontract/internal/extract"
	"github.com/liliang-cn/askcontract/internal/service"
)

// maxUploadBytes caps accepted uploads at 10MB.
const maxUploadBytes = 10 << 20

// Handler handles contract API requests
type Handler struct {
	analysisService *service.AnalysisService
}

// NewHandler creates a new contracts handler
func NewHandler(analysisService *service.AnalysisService) *Handler {
	return &Handler{analysisService: analysisService}
}

// RegisterRoutes registers contract routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Analyze)
	r.POST("/riskscan", h.RiskScan)
	r.POST("/compare", h.Compare)
	r.GET("", h.List)
	r.GET("/:id", h.Get)
	r.PATCH("/:id", h.Update)
	r.DELETE("/:id", h.Delete)
	r.POST("/:id/reality", h.RealityCheck)
}

// Analyze uploads a contract and runs the full analysis pipeline.
func (h *Handler) Analyze(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	contract, err := h.analysisService.Analyze(c.Request.Context(), upload)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// RiskScan uploads a contract and runs the adversarial risk scan only.
func (h *Handler) RiskScan(c *gin.Context) {
	upload, ok := h.readUpload(c)
	if !ok {
		return
	}

	contract, err := h.analysisService.DetectRisks(c.Request.Context(), upload)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, contract)
}

func (h *Handler) readUpload(c *gin.Context) (extract.Upload, bool) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return extract.Upload{}, false
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds 10MB limit"})
		return extract.Upload{}, false
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return extract.Upload{}, false
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read uploaded file"})
		return extract.Upload{}, false
	}

	return extract.Upload{Name: file.Filename, Data: data}, true
}

func (h *Handler) List(c *gin.Context) {
	var filter domain.ContractFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contracts, err := h.analysisService.ListContracts(filter)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"contracts": contracts})
}

func (h *Handler) Get(c *gin.Context) {
	contract, err := h.analysisService.GetContract(c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	if contract == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contract not found"})
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *Handler) Update(c *gin.Context) {
	var req domain.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contract, err := h.analysisService.UpdateContract(c.Param("id"), &req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, contract)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.analysisService.DeleteContract(c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contract deleted"})
}

// Compare runs a comparison between two stored contracts.
func (h *Handler) Compare(c *gin.Context) {
	var req domain.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analysisService.Compare(c.Request.Context(), req.Contract1ID, req.Contract2ID)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RealityCheck analyzes the gap between a contract and the described reality.
func (h *Handler) RealityCheck(c *gin.Context) {
	var req domain.RealityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.analysisService.RealityCheck(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
