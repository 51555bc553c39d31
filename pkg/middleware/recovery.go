package middleware

import (
	"net/http"

	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/familyboard/familyboard/pkg/response"
	"github.com/gin-gonic/gin"
)

// Recovery turns a handler panic into a 500 envelope and keeps the process running.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Errorf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": response.MsgInternal})
	})
}
