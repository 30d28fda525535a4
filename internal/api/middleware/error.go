package middleware

import (
	"fmt"
	"net/http"

	"steam-roi/internal/api/models"
	"steam-roi/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler middleware handles panics and errors
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf(c.Request.Context(), "panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)

		message := "An unexpected error occurred"
		switch v := recovered.(type) {
		case string:
			message = v
		case error:
			message = v.Error()
		case fmt.Stringer:
			message = v.String()
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: message,
			},
		})
	})
}
