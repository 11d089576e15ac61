package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

type ChecklistHandler struct {
	templates checklist.TemplateRepository
	logger    logger.Interface
}

func NewChecklistHandler(templates checklist.TemplateRepository) *ChecklistHandler {
	return &ChecklistHandler{
		templates: templates,
		logger:    logger.NewLogger(),
	}
}

// GetLatestByType returns the current template for an inspection type.
// Reports pin older versions; this endpoint always serves the newest.
func (h *ChecklistHandler) GetLatestByType(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}

	reportType := c.Param("type")
	if reportType == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "checklist type is required")
		return
	}

	template, err := h.templates.GetLatestByType(c.Request.Context(), reportType)
	if err != nil {
		h.logger.Errorw("failed to load checklist template", "error", err, "type", reportType)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to load checklist template")
		return
	}
	if template == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "no checklist template for type "+reportType)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", template)
}
