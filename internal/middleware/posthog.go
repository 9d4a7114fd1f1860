package middleware

import (
	"net/http"
	"strings"

	"github.com/ganpathioverseas/erp_finance/internal/platform/analytics"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked by PostHog
var pathsToSkip = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// PosthogMiddleware tracks successful authenticated API calls with PostHog.
// The event name is derived from the route template, so report IDs never leak into it.
func PosthogMiddleware(client *analytics.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !client.Enabled() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/finance/reports/:reportID" -> "api_v1_finance_reports_:reportID"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if reportType := c.Query("report_type"); reportType != "" {
			props["report_type"] = reportType
		}
		if taxType := c.Query("tax_type"); taxType != "" {
			props["tax_type"] = taxType
		}

		client.Capture(userID, eventName, props)
	}
}

// PosthogEvent sends a custom event from a handler on behalf of the current user.
func PosthogEvent(c *gin.Context, client *analytics.Client, eventName string, properties map[string]any) {
	if !client.Enabled() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	if properties == nil {
		properties = make(map[string]any)
	}
	properties["method"] = c.Request.Method
	properties["path"] = c.FullPath()
	client.Capture(userID, eventName, properties)
}
