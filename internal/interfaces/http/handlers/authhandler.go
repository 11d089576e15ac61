package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/auth"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

// AuthHandler issues debug-mode staff tokens and answers capability
// queries for the verified identity. In production the host platform
// issues tokens; the login endpoint is disabled outside debug mode.
type AuthHandler struct {
	tokens   *auth.StaffTokenService
	registry *capability.Registry
	devLogin bool
	logger   logger.Interface
}

func NewAuthHandler(tokens *auth.StaffTokenService, registry *capability.Registry, devLogin bool) *AuthHandler {
	return &AuthHandler{
		tokens:   tokens,
		registry: registry,
		devLogin: devLogin,
		logger:   logger.NewLogger(),
	}
}

type LoginRequest struct {
	UserID uint   `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

type MeResponse struct {
	UserID       uint     `json:"user_id"`
	Role         string   `json:"role"`
	Capabilities []string `json:"capabilities"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	if !h.devLogin {
		utils.ErrorResponse(c, http.StatusNotFound, "staff tokens are issued by the host platform")
		return
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	role := capability.ParseRole(req.Role)
	if !role.IsValid() {
		utils.ErrorResponse(c, http.StatusBadRequest, "unknown role: "+req.Role)
		return
	}

	ttl := 24 * time.Hour
	token, err := h.tokens.Generate(req.UserID, role, ttl)
	if err != nil {
		h.logger.Errorw("failed to generate staff token", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to generate token")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(ttl).Format(time.RFC3339),
	})
}

// Me returns the caller's identity and effective capability set.
func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	caps := h.registry.CapabilitiesFor(actor.Role)
	names := make([]string, 0, len(caps))
	for _, cap := range caps {
		names = append(names, cap.String())
	}

	utils.SuccessResponse(c, http.StatusOK, "", MeResponse{
		UserID:       actor.ID,
		Role:         actor.Role.String(),
		Capabilities: names,
	})
}
