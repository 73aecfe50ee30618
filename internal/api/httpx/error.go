// Package httpx maps domain error kinds to HTTP responses.
package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/askcontract/internal/domain"
)

// Error writes err as a JSON error response with the status matching its kind.
func Error(c *gin.Context, err error) {
	var (
		unsupported *domain.UnsupportedFormatError
		missingKey  *domain.MissingCredentialsError
		empty       *domain.ExtractionEmptyError
		provider    *domain.ProviderError
	)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &unsupported), errors.As(err, &empty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &missingKey):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	case errors.As(err, &provider):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
