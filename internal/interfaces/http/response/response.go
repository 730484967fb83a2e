package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "crowdfund.backend/internal/domain/errors"
	"crowdfund.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// SuccessWithPagination sends a list response with its pagination metadata
func SuccessWithPagination(c *gin.Context, status int, key string, items interface{}, meta utils.PaginationMeta) {
	c.JSON(status, gin.H{
		key:          items,
		"pagination": meta,
	})
}

// Error sends an error response. Domain sentinels that arrive unwrapped are
// classified so they still map to their own status and code.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		status, code := domainerrors.Classify(err)
		if status == http.StatusInternalServerError {
			appErr = domainerrors.InternalError(err)
		} else {
			appErr = domainerrors.NewAppError(status, code, err.Error(), err)
		}
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}

// ErrorWithError sends an error response with a specific status and message
func ErrorWithError(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
