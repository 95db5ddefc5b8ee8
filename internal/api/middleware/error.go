package middleware

import (
	"fmt"
	"net/http"

	"sales-forecast/internal/api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers from panics, logs them and answers with the INTERNAL_ERROR envelope.
// Panic details are never sent to the client.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", RequestIDFrom(c)),
			zap.String("panic", fmt.Sprint(recovered)),
			zap.Stack("stack"))

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewError(models.CodeInternal, "An unexpected error occurred"))
	})
}
