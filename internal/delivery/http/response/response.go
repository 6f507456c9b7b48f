package response

import (
	"github.com/gin-gonic/gin"
)

// Response is the success body. The contact form reads Success and Message.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the failure body; clients display Error as-is
type ErrorResponse struct {
	Error string `json:"error"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}
