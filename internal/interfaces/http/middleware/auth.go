package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/auth"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// AuthMiddleware verifies host-issued staff tokens. Token issuance is the
// host platform's concern; this service only checks the shared-secret
// signature and the role claim.
type AuthMiddleware struct {
	tokens *auth.StaffTokenService
	logger logger.Interface
}

func NewAuthMiddleware(tokens *auth.StaffTokenService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
		logger: logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify staff token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserRole, claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// ActorFromContext reads the verified staff identity set by RequireAuth.
func ActorFromContext(c *gin.Context) (uint, capability.Role, bool) {
	userID, ok := c.Get(ContextKeyUserID)
	if !ok {
		return 0, "", false
	}
	roleStr, ok := c.Get(ContextKeyUserRole)
	if !ok {
		return 0, "", false
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, "", false
	}
	role := capability.ParseRole(roleStr.(string))
	if !role.IsValid() {
		return 0, "", false
	}
	return id, role, true
}
