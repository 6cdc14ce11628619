package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/atk_inventory_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health":        true,
	"/api/v1/events": true,
}

// PosthogMiddleware creates a Gin middleware handler that tracks successful API calls with PostHog
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip if PostHog is disabled or the path is excluded
		if posthogClient == nil || !posthogClient.IsInitialized() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		// Run the handler chain first
		c.Next()

		// Failed requests are not tracked
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		// Principal is set by the auth middleware
		principal, ok := GetPrincipalFromContext(c)
		if !ok {
			// Anonymous call, nothing to attribute the event to
			return
		}

		// "/api/v1/requests/:id/approve" -> "api_v1_requests_:id_approve"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")

		// Unmatched routes have no full path
		if eventName == "" {
			return
		}

		// Prepare event properties
		props := map[string]any{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status_code": c.Writer.Status(),
			"role":        string(principal.Role),
		}
		if principal.UnitID != "" {
			props["unit_id"] = principal.UnitID
		}

		// Add route parameters if any
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		// Send event to PostHog
		posthogClient.Enqueue(principal.UserID, eventName, props)
	}
}
