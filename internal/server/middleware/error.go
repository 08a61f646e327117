package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/veldt-labs/switchboard/pkg/api"
	"go.uber.org/zap"
)

// ErrorHandler renders errors attached by handlers as RFC 9457 problems.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		if problem, ok := err.(*api.Problem); ok {
			if problem.Log != nil {
				logger.Error("request failed", zap.Error(problem.Log), zap.String("path", c.Request.URL.Path))
			}

			// RFC 9457 dictates the json is at the root
			c.JSON(problem.Status, problem)
			c.Abort()
			return
		}

		logger.Error("unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))

		c.JSON(http.StatusInternalServerError, api.NewError(
			http.StatusInternalServerError,
			"Internal Server Error",
			"An unexpected error occurred.",
		))
		c.Abort()
	}
}
