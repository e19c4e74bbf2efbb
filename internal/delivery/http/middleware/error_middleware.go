package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/response"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error"

func ErrorHandler(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				log.ErrorContext(c.Request.Context(), "request failed",
					"status", appErr.Code, "path", c.Request.URL.Path, "error", errString(appErr.Err))
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
			return
		}

		// Never expose internal error details to clients.
		log.ErrorContext(c.Request.Context(), "unhandled error", "path", c.Request.URL.Path, "error", err.Error())
		response.Error(c, http.StatusInternalServerError, internalErrorMessage, nil)
	}
}

// Recovery turns a panic anywhere in the chain into the generic 500 body.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.ErrorContext(c.Request.Context(), "panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		response.AbortWithError(c, http.StatusInternalServerError, internalErrorMessage)
	})
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
