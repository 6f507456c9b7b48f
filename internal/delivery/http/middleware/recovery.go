package middleware

import (
	"net/http"

	"portfolio-contact-api/internal/delivery/http/response"
	"portfolio-contact-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Recovery converts panics into a generic 500 so a malformed request never
// takes the process down.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Log.Error("Recovered from panic",
			"path", c.Request.URL.Path,
			"request_id", c.GetString("RequestID"),
			"panic", recovered)
		response.Error(c, http.StatusInternalServerError, GenericErrorMessage)
		c.Abort()
	})
}
