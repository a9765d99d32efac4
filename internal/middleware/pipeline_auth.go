package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finboard/internal/errors"
)

// PipelineSubject is the subject recorded for requests authenticated with
// the import pipeline key.
const PipelineSubject = "pipeline"

// PipelineAuthMiddleware guards the unattended import endpoints with the
// X-API-Key header. An empty configured key disables those endpoints.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable,
				gin.H{"error": gin.H{"code": "PIPELINE_NOT_CONFIGURED", "message": "Pipeline endpoints are not configured"}})
			return
		}
		key := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Set(SubjectKey, PipelineSubject)
		c.Next()
	}
}
