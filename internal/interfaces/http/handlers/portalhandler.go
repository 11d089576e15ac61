package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/application/portal/usecases"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/middleware"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

type PortalHandler struct {
	loginUC    usecases.LoginExecutor
	validateUC usecases.ValidateSessionExecutor
	renewUC    usecases.RenewSessionExecutor
	probeUC    usecases.ProbeAdminExecutor
	logger     logger.Interface
}

func NewPortalHandler(
	loginUC usecases.LoginExecutor,
	validateUC usecases.ValidateSessionExecutor,
	renewUC usecases.RenewSessionExecutor,
	probeUC usecases.ProbeAdminExecutor,
) *PortalHandler {
	return &PortalHandler{
		loginUC:    loginUC,
		validateUC: validateUC,
		renewUC:    renewUC,
		probeUC:    probeUC,
		logger:     logger.NewLogger(),
	}
}

type PortalLoginRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type ProbeAdminRequest struct {
	HostToken string `json:"host_token" binding:"required"`
}

// Login exchanges a family PIN for an opaque session token. The client
// IP keys the attempt limiter.
func (h *PortalHandler) Login(c *gin.Context) {
	var req PortalLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "PIN is required")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		PIN:       req.PIN,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetSession returns the identity behind the current session token.
func (h *PortalHandler) GetSession(c *gin.Context) {
	token := c.GetString("portal_token")

	identity, err := h.validateUC.Execute(c.Request.Context(), usecases.ValidateSessionQuery{Token: token})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", identity)
}

// RenewSession extends the current session. The token stays the same.
func (h *PortalHandler) RenewSession(c *gin.Context) {
	token := c.GetHeader(middleware.PortalTokenHeader)
	if token == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing portal session token")
		return
	}

	result, err := h.renewUC.Execute(c.Request.Context(), usecases.RenewSessionCommand{Token: token})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "session renewed", result)
}

// ProbeAdmin re-verifies a host-platform token for the admin override.
// The result is returned to the caller but never stored.
func (h *PortalHandler) ProbeAdmin(c *gin.Context) {
	var req ProbeAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "host_token is required")
		return
	}

	result, err := h.probeUC.Execute(c.Request.Context(), usecases.ProbeAdminQuery{HostToken: req.HostToken})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
