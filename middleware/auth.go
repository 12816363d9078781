package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RigelNana/arktube/auth"
	"github.com/RigelNana/arktube/models"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const SessionCookie = "session_token"

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserSyncer interface {
	Sync(ctx context.Context, claims *auth.Claims) (*models.User, error)
}

// Authenticator 校验会话令牌并把观看者写入请求 context
type Authenticator struct {
	tokens TokenVerifier
	users  UserSyncer
	logger *logrus.Logger
}

func NewAuthenticator(tokens TokenVerifier, users UserSyncer, logger *logrus.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, logger: logger}
}

// OptionalAuth 没有令牌时匿名放行，令牌无效仍返回 401
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.Next()
			return
		}
		if !a.attach(c, token) {
			return
		}
		c.Next()
	}
}

// RequireAuth 必须登录
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			unauthorized(c, "missing session token")
			return
		}
		if !a.attach(c, token) {
			return
		}
		c.Next()
	}
}

func (a *Authenticator) attach(c *gin.Context, token string) bool {
	claims, err := a.tokens.Verify(token)
	if err != nil {
		a.logger.WithError(err).Debug("rejected session token")
		unauthorized(c, "invalid token")
		return false
	}
	user, err := a.users.Sync(c.Request.Context(), claims)
	if err != nil {
		a.logger.WithError(err).WithField("subject", claims.Subject).Error("failed to sync user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		c.Abort()
		return false
	}
	ctx := auth.WithViewer(c.Request.Context(), auth.Viewer{ID: user.ID, Name: user.Name})
	c.Request = c.Request.WithContext(ctx)
	c.Set("user_id", user.ID.String())
	return true
}

// extractToken 优先读 Authorization 头，其次读会话 cookie
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		token := header
		if after, ok := strings.CutPrefix(header, "Bearer "); ok {
			token = after
		}
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
	c.Abort()
}
