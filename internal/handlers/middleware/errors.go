package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/domain/errors"
	"github.com/rafabene/access-admin/internal/domain/ports"
)

// ErrorLogger registra os erros anexados pelos handlers (c.Error) que não são
// erros de negócio. Esses viram o 500 genérico e só aparecem aqui.
func ErrorLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if _, _, ok := errors.MessageID(e.Err); ok {
				continue
			}
			logger.Error("request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"status", c.Writer.Status(),
				"error", e.Err,
			)
		}
	}
}
