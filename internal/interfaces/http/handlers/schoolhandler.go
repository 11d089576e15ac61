package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/application/school/usecases"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

type SchoolHandler struct {
	createUC usecases.CreateSchoolExecutor
	updateUC usecases.UpdateSchoolExecutor
	deleteUC usecases.DeleteSchoolExecutor
	getUC    usecases.GetSchoolExecutor
	listUC   usecases.ListSchoolsExecutor
	logger   logger.Interface
}

func NewSchoolHandler(
	createUC usecases.CreateSchoolExecutor,
	updateUC usecases.UpdateSchoolExecutor,
	deleteUC usecases.DeleteSchoolExecutor,
	getUC usecases.GetSchoolExecutor,
	listUC usecases.ListSchoolsExecutor,
) *SchoolHandler {
	return &SchoolHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		getUC:    getUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type CreateSchoolRequest struct {
	Name    string `json:"name" binding:"required"`
	Region  string `json:"region"`
	Address string `json:"address"`
}

type UpdateSchoolRequest struct {
	Name    string `json:"name" binding:"required"`
	Region  string `json:"region"`
	Address string `json:"address"`
	Active  *bool  `json:"active"`
}

func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create school", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSchoolCommand{
		ActorRole: actor.Role,
		Name:      req.Name,
		Region:    req.Region,
		Address:   req.Address,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	schoolID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update school", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateSchoolCommand{
		ActorRole: actor.Role,
		SchoolID:  schoolID,
		Name:      req.Name,
		Region:    req.Region,
		Address:   req.Address,
		Active:    req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "school updated", result)
}

func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	schoolID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteSchoolCommand{
		ActorRole: actor.Role,
		SchoolID:  schoolID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "school deleted", nil)
}

func (h *SchoolHandler) GetSchool(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}
	schoolID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSchoolQuery{SchoolID: schoolID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SchoolHandler) ListSchools(c *gin.Context) {
	if _, ok := requireActor(c); !ok {
		return
	}

	query := usecases.ListSchoolsQuery{
		Search: c.Query("search"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if s := c.Query("region"); s != "" {
		query.Region = &s
	}
	if s := c.Query("active"); s != "" {
		active := s == "true"
		query.Active = &active
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Schools, result.Total, result.Page, result.PageSize)
}
