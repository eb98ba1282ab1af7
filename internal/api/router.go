package api

import (
	"github.com/gin-gonic/gin"

	"github.com/enaqx/layer3board/internal/websocket"
)

// SetupRouter initializes the Gin router and sets up the routes
func SetupRouter(h *Handler, wsManager *websocket.Manager) *gin.Engine {
	r := gin.Default()
	r.Use(RequestIDMiddleware())
	r.Use(ErrorMiddleware())

	// Same-origin proxy for browser clients plus cached user lookup
	r.GET("/api/leaderboard", h.ProxyLeaderboard)
	r.GET("/api/leaderboard/:address", h.GetCachedUser)

	// On-chain wallet profile
	r.GET("/api/profile/:address", h.GetProfile)

	// WebSocket route
	r.GET("/ws", func(c *gin.Context) {
		wsManager.HandleWebSocket(c.Writer, c.Request)
	})

	return r
}
