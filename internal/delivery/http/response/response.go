package response

import (
	"github.com/gin-gonic/gin"
)

// SendResponse is the body of a successful relay
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Sent writes a 2xx relay success
func Sent(c *gin.Context, code int, messageID string) {
	c.JSON(code, SendResponse{
		Success:   true,
		MessageID: messageID,
	})
}

// JSON writes an arbitrary success payload
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error sends an error response
func Error(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

// AbortWithError writes the error body and stops the handler chain
func AbortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{Error: message})
}
