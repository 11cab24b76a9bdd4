package api

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// adminKeyHeader carries the shared secret for admin operations.
const adminKeyHeader = "X-Admin-Key"

// adminAuth guards mutating admin operations with a shared key. An empty
// configured key disables the check; production deployments set
// CREDITLINE_ADMIN_KEY.
func adminAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := c.GetHeader(adminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}
