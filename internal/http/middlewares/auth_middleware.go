package middlewares

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofianedj/boardhub/internal/auth"
	"github.com/sofianedj/boardhub/internal/domain/user"
)

// TokenCookieName is the httpOnly cookie the login handler sets when a
// browser client cannot hold a bearer token itself.
const TokenCookieName = "token"

// Small interfaces so tests can fake both dependencies easily.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

type UserLoader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserLoader
}

func NewAuthMiddleware(jwt TokenVerifier, users UserLoader) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

// RequireAuth walks the gate: extract token (Authorization header wins,
// cookie is the fallback), verify it, load the user, attach the
// identity. Every failure is a uniform 401 so the gate never leaks
// whether an account exists.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)

		if raw == "" {
			abortUnauthorized(c, "Missing authentication token")
			return
		}

		claims, err := m.jwt.VerifyToken(raw)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		cctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		u, err := m.users.GetByID(cctx, claims.UserID)

		if err != nil || !u.Active {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(CtxIdentity, u.Identity())

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")

	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
	}

	cookie, err := c.Cookie(TokenCookieName)

	if err != nil {
		return ""
	}

	return cookie
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}

// IdentityFromContext returns the identity attached by RequireAuth so
// handlers don't need to know the magic key.
func IdentityFromContext(c *gin.Context) (user.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return user.Identity{}, false
	}

	id, ok := v.(user.Identity)
	return id, ok
}
