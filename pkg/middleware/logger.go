package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/limaadvogados/leadrelay/pkg/logger"
)

// RequestLogger logs one line per request and turns panics into a 500.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				log.Errorw("panic while handling request",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(recovered),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			}

			fields := []any{
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"latency", time.Since(start),
				"client_ip", c.ClientIP(),
			}
			if len(c.Errors) > 0 {
				fields = append(fields, "errors", c.Errors.String())
			}

			if c.Writer.Status() >= http.StatusInternalServerError {
				log.Warnw("request", fields...)
			} else {
				log.Infow("request", fields...)
			}
		}()

		c.Next()
	}
}
