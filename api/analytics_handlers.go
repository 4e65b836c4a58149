package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const defaultTopKeywords = 10

// GetAnalyticsHandler handles the request to get analytics data.
// ?top= sets how many popular and unmatched keywords are listed.
func (api *API) GetAnalyticsHandler(c *gin.Context) {
	if api.analytics == nil {
		SendError(c, http.StatusNotImplemented, ErrorCodeFeatureNotAvailable, "Search analytics are not enabled")
		return
	}

	topN := defaultTopKeywords
	if raw := c.Query("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			result := &ValidationResult{Valid: true}
			result.AddError("top", "top must be a positive integer")
			SendValidationError(c, result)
			return
		}
		topN = n
	}

	c.JSON(http.StatusOK, api.analytics.GetDashboardData(topN))
}

// HealthCheckHandler provides a simple health check endpoint. It never
// triggers a lexicon load.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"service":        "go-emoji-video",
		"lexicon_loaded": api.pipeline.Loaded(),
		"timestamp":      fmt.Sprintf("%d", time.Now().Unix()),
	})
}
