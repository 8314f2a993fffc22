// Package http 认证中间件与请求上下文取值
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	accountdomain "github.com/wyfcoding/retailbackend/internal/account/domain"
	"github.com/wyfcoding/retailbackend/internal/auth/domain"
)

const (
	ctxKeyUserID = "auth.userID"
	ctxKeyRole   = "auth.role"
	ctxKeyToken  = "auth.token"
)

// TokenVerifier 令牌校验能力
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.AuthSession, error)
}

// UserLoader 按 ID 加载用户角色，管理端鉴权查库而非信任令牌里的角色声明
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*accountdomain.User, error)
}

// ExtractToken 从请求头取令牌，兼容 x-auth-token 与 Bearer 两种形式
func ExtractToken(c *gin.Context) string {
	if token := c.GetHeader("x-auth-token"); token != "" {
		return token
	}
	auth := c.GetHeader("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// AuthRequired 要求请求携带有效令牌
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := verifier.Verify(c.Request.Context(), ExtractToken(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no auth token, access denied"})
			return
		}
		c.Set(ctxKeyUserID, session.UserID)
		c.Set(ctxKeyRole, session.Role)
		c.Set(ctxKeyToken, session.Token)
		c.Next()
	}
}

// AdminRequired 要求当前用户为管理员，需先经过 AuthRequired
func AdminRequired(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Request.Context(), UserID(c))
		if err != nil || user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "you are not an admin"})
			return
		}
		c.Next()
	}
}

// UserID 取当前请求的用户 ID，未认证时为 0
func UserID(c *gin.Context) uint {
	return c.GetUint(ctxKeyUserID)
}

// Token 取当前请求的原始令牌
func Token(c *gin.Context) string {
	return c.GetString(ctxKeyToken)
}
