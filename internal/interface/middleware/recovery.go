package middleware

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-mentorship-tracker/pkg/apperr"
	"github.com/oksasatya/go-mentorship-tracker/pkg/response"
)

// Recovery turns panics into an INTERNAL_ERROR envelope and logs them.
// The panic value is only returned to the client when debug is true.
func Recovery(logger *logrus.Logger, debug bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.Request.URL.Path,
				"panic":      fmt.Sprint(rec),
			}).Error("panic recovered")
		}
		response.FromError(c, apperr.Internal(fmt.Errorf("panic: %v", rec)), debug)
	})
}
