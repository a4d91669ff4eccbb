package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery returns a middleware that recovers from panics. onPanic renders
// the response; when nil a bare 500 is sent.
func Recovery(logger *zap.Logger, onPanic gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("query", c.Request.URL.RawQuery),
					zap.String("error_type", fmt.Sprintf("%T", err)),
					zap.Stack("stacktrace"),
				)

				if c.Writer.Written() {
					c.Abort()
					return
				}
				if onPanic == nil {
					c.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				c.Status(http.StatusInternalServerError)
				onPanic(c)
				c.Abort()
			}
		}()

		c.Next()
	}
}
