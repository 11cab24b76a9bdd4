package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/credexa/creditline-api/internal/audit"
	"github.com/credexa/creditline-api/internal/ratelimit"
	"github.com/credexa/creditline-api/internal/risk"
)

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func handleRiskScore(c *gin.Context) {
	c.JSON(http.StatusOK, risk.Evaluate(c.Param("customerId")))
}

type rateLimitResetRequest struct {
	Key string `json:"key" binding:"required"`
}

// handleRateLimitReset removes one counter entry, admitting a throttled
// client before its window expires. Admin-only.
func handleRateLimitReset(store ratelimit.CounterStore, trail *audit.Trail) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req rateLimitResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := store.Reset(c.Request.Context(), req.Key); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset rate limit"})
			return
		}
		trail.Record(ratelimit.ClientKey(c), "rate_limit.reset", req.Key)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
