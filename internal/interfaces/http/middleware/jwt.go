package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/meditrack/backend/internal/infrastructure/auth"
	"github.com/meditrack/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

const (
	jwtUserIDKey   = "jwt_user_id"
	jwtUsernameKey = "jwt_username"
	jwtRoleKey     = "jwt_role"

	bearerPrefix = "Bearer "
)

// JWTMiddlewareConfig configures the authentication middleware
type JWTMiddlewareConfig struct {
	JWTService       *auth.JWTService
	SkipPaths        []string // exact paths served without a token
	SkipPathPrefixes []string // path prefixes served without a token
	Logger           *zap.Logger
}

// JWTAuthMiddlewareWithConfig guards routes with bearer-token
// authentication. Validated claims land in the gin context and the
// request logger is scoped to the authenticated user.
func JWTAuthMiddlewareWithConfig(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if skipAuth(cfg, c.Request.URL.Path) {
			c.Next()
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			rejectUnauthorized(c, cfg, auth.ErrInvalidToken)
			return
		}

		claims, err := cfg.JWTService.Validate(token)
		if err != nil {
			rejectUnauthorized(c, cfg, err)
			return
		}

		c.Set(jwtUserIDKey, claims.UserID)
		c.Set(jwtUsernameKey, claims.Username)
		c.Set(jwtRoleKey, claims.Role)

		ctx := c.Request.Context()
		ctx, _ = logger.WithUserID(ctx, logger.FromContext(ctx), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func skipAuth(cfg JWTMiddlewareConfig, path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	return token, token != ""
}

func rejectUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("request rejected: authentication failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path))
	}

	code, message := "ERR_UNAUTHORIZED", "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code, message = "ERR_TOKEN_EXPIRED", "Token has expired"
	case auth.ErrInvalidToken:
		code, message = "ERR_TOKEN_INVALID", "Invalid token"
	case auth.ErrTokenNotYetValid:
		code, message = "ERR_TOKEN_INVALID", "Token is not yet valid"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// GetJWTUserID returns the authenticated user's ID, or "" without auth
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(jwtUserIDKey)
}

// GetJWTUsername returns the authenticated username, or "" without auth
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(jwtUsernameKey)
}

// GetJWTRole returns the authenticated user's role, or "" without auth
func GetJWTRole(c *gin.Context) string {
	return c.GetString(jwtRoleKey)
}
