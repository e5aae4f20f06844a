package middleware

import (
	"strings"

	"github.com/PriyanshVijay26/quiz-master/internal/model"
	"github.com/PriyanshVijay26/quiz-master/internal/util"
	"github.com/PriyanshVijay26/quiz-master/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator 由 AuthService 实现
type Authenticator interface {
	Authenticate(token string) (*model.User, *util.Claims, error)
}

// tokenFromRequest 依次读取 Authorization: Bearer、Authentication-Token 头和 ?token=
func tokenFromRequest(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
			return strings.TrimSpace(token)
		}
	}
	if token := c.GetHeader(util.AuthTokenHeader); token != "" {
		return strings.TrimSpace(token)
	}
	return c.Query("token")
}

func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, claims, err := auth.Authenticate(tokenString)
		if err != nil {
			logger.Log.Debug("Token rejected", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Set("currentUser", user)
		c.Next()
	}
}

// RoleMiddleware 要求用户持有指定角色之一，管理员不会自动获得用户权限
func RoleMiddleware(roles ...model.RoleName) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.HasRole(role) {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

type UserActivityRepo interface {
	UpdateLastActivity(userID uint) error
}

func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims != nil {
			if err := repo.UpdateLastActivity(claims.UserID); err != nil {
				logger.Log.Warn("Failed to update last activity", zap.Uint("userId", claims.UserID), zap.Error(err))
			}
		}
		c.Next()
	}
}
