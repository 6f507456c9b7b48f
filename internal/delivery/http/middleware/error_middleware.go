package middleware

import (
	"errors"
	"net/http"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/apperror"
	"portfolio-contact-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// GenericErrorMessage is shown for any failure the caller cannot act on
const GenericErrorMessage = "メッセージの送信に失敗しました"

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		reqID := c.GetString("RequestID")

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warn("Request failed",
					"status", appErr.Code,
					"path", c.FullPath(),
					"request_id", reqID,
					"error", appErr.Err)
			}
			response.Error(c, appErr.Code, appErr.Message)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("Internal server error",
			"path", c.FullPath(),
			"request_id", reqID,
			"error", err)
		response.Error(c, http.StatusInternalServerError, GenericErrorMessage)
	}
}
