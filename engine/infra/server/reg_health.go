package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docbridge/docbridge/engine/backend"
	"github.com/docbridge/docbridge/pkg/logger"
	"github.com/docbridge/docbridge/pkg/version"
)

// Health endpoint
//
//	@Summary      Get server health
//	@Description  Returns service health, build version, and default backend reachability
//	@Tags         health
//	@Accept       json
//	@Produce      json
//	@Success      200 {object} map[string]interface{} "Service is healthy"
//	@Failure      503 {object} map[string]interface{} "Default backend is unreachable"
//	@Router       /health [get]
func CreateHealthHandler(conn backend.Conn) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		status := "healthy"
		connected := true
		if err := conn.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warn("Default backend ping failed", "error", err)
			status = "degraded"
			connected = false
		}
		c.JSON(healthStatusCode(connected), gin.H{
			"data": gin.H{
				"status":  status,
				"version": version.Get().Version,
				"backend": gin.H{"connected": connected},
			},
			"message": "Success",
		})
	}
}

func healthStatusCode(connected bool) int {
	if !connected {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
