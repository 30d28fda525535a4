package handlers

import (
	"errors"
	"net/http"

	"steam-roi/internal/api/models"
	"steam-roi/internal/logger"
	"steam-roi/internal/marketdata"
	"steam-roi/internal/model"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the error envelope.
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidArgument   = "INVALID_ARGUMENT"
	CodeResolutionFailure = "RESOLUTION_FAILURE"
	CodeDataUnavailable   = "DATA_UNAVAILABLE"
)

// respondError maps a core error onto the error envelope. Every core failure
// is a 400; the code tells the client which kind.
func respondError(c *gin.Context, err error) {
	detail := models.ErrorDetail{Code: CodeInvalidRequest, Message: err.Error()}
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		detail.Code = CodeInvalidArgument
	case errors.Is(err, model.ErrUnresolved):
		detail.Code = CodeResolutionFailure
	case errors.Is(err, model.ErrDataUnavailable):
		detail.Code = CodeDataUnavailable
	}

	var upstream *marketdata.UpstreamError
	if errors.As(err, &upstream) {
		detail.Details = map[string]interface{}{
			"source":      upstream.Source,
			"status_code": upstream.StatusCode,
			"retry_after": upstream.RetryAfter,
		}
	}

	logger.Warnf(c.Request.Context(), "%s %s: %s: %v", c.Request.Method, c.FullPath(), detail.Code, err)
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: detail})
}

// respondBindError reports a request that failed binding or validation.
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    CodeInvalidRequest,
			Message: err.Error(),
		},
	})
}
