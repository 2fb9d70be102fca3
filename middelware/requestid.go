package middelware

import (
	"crm-gateway/utils"

	"github.com/gin-gonic/gin"
)

// RequestID tags every request with a UUID, honoring one supplied by an
// upstream proxy, and echoes it back in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = utils.GenerateUUID()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
