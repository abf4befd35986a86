package middleware

import (
	"net/http"

	"github.com/desuite/desuite-web/backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into a 500 with the standard {"message"} body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred. Please try again."})
	})
}
