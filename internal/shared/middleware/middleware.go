package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"stampcard/internal/shared/config"
	"stampcard/internal/shared/utils/response"
	"stampcard/pkg/logger"
)

// RoleAdmin is the only role the service issues tokens for
const RoleAdmin = "ADMIN"

// Context keys set by the middlewares below
const (
	ContextKeySubject   = "subject"
	ContextKeyRole      = "user_role"
	ContextKeyRequestID = "request_id"

	HeaderRequestID = "X-Request-ID"
)

func abort(c *gin.Context, code int, message string) {
	response.RespondJSON(c, response.StatusError, code, message, nil, nil)
	c.Abort()
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// JWTAuthWithConfig validates the HS256 access token and stores its subject
// and role on the context
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	secret := []byte(cfg.JWT.Secret)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			abort(c, http.StatusUnauthorized, "authorization header format must be Bearer {token}")
			return
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid or expired token", c.ClientIP())
			abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if tokenType, _ := claims["type"].(string); tokenType != "access" {
			abort(c, http.StatusUnauthorized, "invalid token type")
			return
		}

		c.Set(ContextKeySubject, claims["sub"])
		c.Set(ContextKeyRole, claims["role"])
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(ContextKeyRole)
		if !exists {
			abort(c, http.StatusUnauthorized, "user role not found in context")
			return
		}

		if role, _ := userRole.(string); role != requiredRole {
			abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}

// AdminOnly chains token validation and the admin role check
func AdminOnly(cfg *config.Config) []gin.HandlerFunc {
	return []gin.HandlerFunc{JWTAuthWithConfig(cfg), RequireAdmin()}
}

// RequestLogger tags each request with an ID (reusing an incoming
// X-Request-ID) and logs it once it has been served
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
		l.WithRequestID(requestID).LogHTTPRequest(c, time.Since(start))
	}
}
