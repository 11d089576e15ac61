package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portalUC "github.com/chroma-excellence/chromaqa/internal/application/portal/usecases"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

const (
	ContextKeyFamilyID = "family_id"

	// PortalTokenHeader carries the opaque portal session token.
	PortalTokenHeader = "X-Portal-Token"
)

// PortalMiddleware resolves the portal session token into a family
// identity. Expired sessions are rejected here; renewal has its own
// endpoint.
type PortalMiddleware struct {
	validate portalUC.ValidateSessionExecutor
	logger   logger.Interface
}

func NewPortalMiddleware(validate portalUC.ValidateSessionExecutor, logger logger.Interface) *PortalMiddleware {
	return &PortalMiddleware{
		validate: validate,
		logger:   logger,
	}
}

func (m *PortalMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(PortalTokenHeader)
		if token == "" {
			token = bearerToken(c)
		}
		if token == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing portal session token")
			c.Abort()
			return
		}

		identity, err := m.validate.Execute(c.Request.Context(), portalUC.ValidateSessionQuery{Token: token})
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextKeyFamilyID, identity.FamilyID)
		c.Set("portal_token", token)

		c.Next()
	}
}
