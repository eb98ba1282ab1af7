package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/enaqx/layer3board/internal/errors"
	"github.com/enaqx/layer3board/pkg/logger"
)

// RequestIDMiddleware tags every request with an id, echoed in the response
// header, so proxy failures can be correlated across log lines.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

// ErrorMiddleware converts typed errors recorded by handlers into JSON
// responses. Aborts mean the client went away; nothing useful can be written.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if errors.IsAbort(err) {
			c.Abort()
			return
		}

		switch e := err.(type) {
		case *errors.InvalidAddressError:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wallet address"})
		case *errors.CacheMissError:
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case *errors.UpstreamStatusError:
			logger.Error("Upstream error: %v", e)
			c.JSON(http.StatusBadGateway, gin.H{"error": e.Error()})
		case *errors.ShapeError:
			logger.Error("Upstream shape error: %v", e)
			c.JSON(http.StatusBadGateway, gin.H{"error": e.Error()})
		case *errors.TransportError:
			logger.Error("Transport error: %v", e)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Upstream unavailable"})
		default:
			logger.Error("Unexpected error: %v", e)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		c.Abort()
	}
}
