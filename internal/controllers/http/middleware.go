package http

import (
	"net/http"
	"strings"

	"github.com/Kalaitechtubee/ratan-decor-api/internal/auth"
	"github.com/Kalaitechtubee/ratan-decor-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const claimsContextKey = "authClaims"

func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware rejects requests without a valid bearer token.
func AuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "unauthorized"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present but
// lets anonymous requests through; they price as the General tier.
func OptionalAuthMiddleware(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := extractToken(c); tokenString != "" {
			if claims, err := jwtService.ValidateToken(tokenString); err == nil {
				c.Set(claimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Runs after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester := requesterFrom(c)
		for _, role := range roles {
			if requester.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "forbidden"})
	}
}

// requesterFrom reads the authenticated identity from the context. Anonymous
// requests yield a zero Requester, which resolves to general pricing.
func requesterFrom(c *gin.Context) domain.Requester {
	if v, ok := c.Get(claimsContextKey); ok {
		if claims, ok := v.(*auth.Claims); ok {
			return domain.Requester{UserID: claims.UserID, Role: claims.Role}
		}
	}
	return domain.Requester{}
}
