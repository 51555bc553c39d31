package handlers

import (
	"time"

	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/pkg/response"
	"github.com/gin-gonic/gin"
)

// RegisterPing registers GET /api/ping. It answers whenever the process is
// up and does not touch storage.
func RegisterPing(r gin.IRouter, started time.Time) {
	r.GET("/api/ping", func(c *gin.Context) {
		response.OK(c, gin.H{
			"message":   "Сервер активен",
			"timestamp": time.Now().UTC().Format(record.CreatedAtLayout),
			"uptime":    time.Since(started).Seconds(),
		})
	})
}
