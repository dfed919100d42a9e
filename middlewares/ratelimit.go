// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"bizdesk-server/db"
	"bizdesk-server/metrics"
	"bizdesk-server/ratelimit"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitMiddleware guards an endpoint with the fixed-window limiter.
// The caller is identified by client IP. Denied requests get a 429 with
// X-RateLimit-* headers and a retryAfter hint; allowed responses carry the
// same headers so well-behaved clients can pace themselves.
func RateLimitMiddleware(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identifier := c.RealIP()
			policy := ratelimit.PolicyFor(endpoint)
			result := ratelimit.Check(db.Conn, identifier, endpoint)
			setRateLimitHeaders(c, policy, result)

			if !result.Allowed {
				metrics.IncrementRateLimitDenial(endpoint)
				c.Logger().Warnf("Rate limit exceeded for %s on %s", identifier, endpoint)

				retryAfter := int(math.Ceil(time.Until(result.ResetAt).Seconds()))
				if retryAfter < 0 {
					retryAfter = 0
				}
				return c.JSON(http.StatusTooManyRequests, map[string]any{
					"error":      "Too Many Requests",
					"message":    "Rate limit exceeded. Please try again later.",
					"retryAfter": retryAfter,
				})
			}
			return next(c)
		}
	}
}

func setRateLimitHeaders(c echo.Context, policy ratelimit.Policy, result ratelimit.Result) {
	// A failed-open check carries no window state worth reporting.
	if result.Remaining < 0 {
		return
	}
	header := c.Response().Header()
	header.Set("X-RateLimit-Limit", strconv.Itoa(policy.MaxRequests))
	header.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	header.Set("X-RateLimit-Reset", result.ResetAt.UTC().Format(time.RFC3339))
}
