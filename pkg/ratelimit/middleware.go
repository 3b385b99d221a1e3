package ratelimit

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stampcard/internal/shared/utils/response"
	"stampcard/pkg/logger"
)

// Middleware limits requests per client IP using the bucket of the matched
// route. Redis failures let the request through so a cache outage does not
// stop booth scans.
func Middleware(rateLimiter *RateLimiter, log *logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.GetDefault()
	}
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		route := c.FullPath()

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, getRateLimitType(route))
		if err != nil {
			log.ErrorWithContext(c.Request.Context(), "Rate limit check failed", err, map[string]interface{}{
				"ip":    clientIP,
				"route": route,
			})
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			log.LogRateLimitExceeded(c.Request.Context(), clientIP, route)
			c.Header("Retry-After", strconv.Itoa(int(rateLimiter.config.WindowDuration.Seconds())))
			response.RespondJSON(c, response.StatusError, http.StatusTooManyRequests,
				"Too many requests, slow down and try again shortly", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType maps a route pattern to its limit bucket
func getRateLimitType(route string) RateLimitType {
	switch {
	case strings.HasPrefix(route, "/health"),
		strings.HasPrefix(route, "/ping"),
		strings.HasPrefix(route, "/status"):
		return RateLimitTypeHealth

	case strings.Contains(route, "/auth/"):
		return RateLimitTypeAuth

	case strings.Contains(route, "/admin/"):
		return RateLimitTypeAdmin

	// Booth code scans are the guessable surface
	case strings.Contains(route, "/cards/") && strings.HasSuffix(route, "/stamps"):
		return RateLimitTypeStamp

	case strings.Contains(route, "/booths"),
		strings.Contains(route, "/teams"),
		strings.Contains(route, "/cards"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP prefers the first valid forwarded address, then X-Real-IP,
// then the socket peer.
func getClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	if ip := c.GetHeader("X-Real-IP"); net.ParseIP(ip) != nil {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return host
}
