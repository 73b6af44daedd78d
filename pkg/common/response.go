package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahana-dev/daansetu/pkg/logger"
)

// SuccessResponse writes a 200 response with the standard success envelope
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// CreatedResponse writes a 201 response with the standard success envelope
func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    data,
	})
}

// ErrorResponse writes an error response with the given status and message
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// RespondError maps an error to its HTTP response. Validation, forbidden and
// insufficient-funds errors surface their message to the caller; not-found and
// conflict errors surface a generic message with the code, and internal errors
// are logged with their cause.
func RespondError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		logger.WithContext(c.Request.Context()).Error("unhandled error", zap.Error(err))
		ErrorResponse(c, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Code {
	case CodeNotFound, CodeConflict:
		c.JSON(appErr.StatusCode, gin.H{
			"success": false,
			"error":   appErr.Message,
			"code":    appErr.Code,
		})
	case CodeInternal:
		logger.WithContext(c.Request.Context()).Error("internal error",
			zap.String("code", appErr.Code),
			zap.Error(appErr))
		ErrorResponse(c, appErr.StatusCode, "internal server error")
	default:
		ErrorResponse(c, appErr.StatusCode, appErr.Message)
	}
}
