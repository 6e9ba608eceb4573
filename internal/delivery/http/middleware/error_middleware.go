package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hireflow-backend/internal/delivery/http/response"
	"hireflow-backend/pkg/apperror"
	"hireflow-backend/pkg/logger"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, appErr.Details)
				if appErr.Code == http.StatusInternalServerError {
					logger.Log.Error("Internal error", "error", appErr.Err, "path", c.Request.URL.Path)
				}
			} else {
				// Never echo internal error details to clients. Log the
				// real error server-side, send a generic message out.
				logger.Log.Error("Unhandled error", "error", err, "path", c.Request.URL.Path)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
