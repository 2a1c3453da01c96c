package apperrors

import (
	"github.com/deouf-dev/talemy-api/internal/logger"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

// HandleError writes err as the uniform error body and aborts the chain.
func HandleError(c *gin.Context, err error) {
	appErr := Normalize(err)

	if appErr.HTTPCode >= 500 {
		logger.CtxWithError(c.Request.Context(), "server error", err, "path", c.Request.URL.Path)
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ToResponse(appErr))
}

// ToResponse renders the caller-visible part of an error.
func ToResponse(appErr *AppError) ErrorResponse {
	return ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
}
