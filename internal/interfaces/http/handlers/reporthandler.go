package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chroma-excellence/chromaqa/internal/application/report/usecases"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/middleware"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
	"github.com/chroma-excellence/chromaqa/internal/shared/utils"
)

// VersionHeader carries the report version the client last observed.
// Mutating endpoints reject the write with a conflict when it is stale.
const VersionHeader = "X-CQA-Version"

type ReportHandler struct {
	createUC      usecases.CreateReportExecutor
	saveUC        usecases.SaveResponsesExecutor
	submitUC      usecases.SubmitReportExecutor
	startReviewUC usecases.StartReviewExecutor
	approveUC     usecases.ApproveReportExecutor
	rejectUC      usecases.RejectReportExecutor
	reworkUC      usecases.ReworkReportExecutor
	deleteUC      usecases.DeleteReportExecutor
	getUC         usecases.GetReportExecutor
	listUC        usecases.ListReportsExecutor
	progressUC    usecases.GetProgressExecutor
	summaryUC     usecases.GenerateSummaryExecutor
	exportUC      usecases.ExportReportExecutor
	statsUC       usecases.GetStatsExecutor
	addPhotoUC    usecases.AddPhotoExecutor
	removePhotoUC usecases.RemovePhotoExecutor
	photos        PhotoStore
	logger        logger.Interface
}

// PhotoStore persists uploaded photo files outside the database.
type PhotoStore interface {
	Store(ctx context.Context, reportID uint, filename string, r io.Reader) (string, error)
}

func NewReportHandler(
	createUC usecases.CreateReportExecutor,
	saveUC usecases.SaveResponsesExecutor,
	submitUC usecases.SubmitReportExecutor,
	startReviewUC usecases.StartReviewExecutor,
	approveUC usecases.ApproveReportExecutor,
	rejectUC usecases.RejectReportExecutor,
	reworkUC usecases.ReworkReportExecutor,
	deleteUC usecases.DeleteReportExecutor,
	getUC usecases.GetReportExecutor,
	listUC usecases.ListReportsExecutor,
	progressUC usecases.GetProgressExecutor,
	summaryUC usecases.GenerateSummaryExecutor,
	exportUC usecases.ExportReportExecutor,
	statsUC usecases.GetStatsExecutor,
	addPhotoUC usecases.AddPhotoExecutor,
	removePhotoUC usecases.RemovePhotoExecutor,
	photos PhotoStore,
) *ReportHandler {
	return &ReportHandler{
		createUC:      createUC,
		saveUC:        saveUC,
		submitUC:      submitUC,
		startReviewUC: startReviewUC,
		approveUC:     approveUC,
		rejectUC:      rejectUC,
		reworkUC:      reworkUC,
		deleteUC:      deleteUC,
		getUC:         getUC,
		listUC:        listUC,
		progressUC:    progressUC,
		summaryUC:     summaryUC,
		exportUC:      exportUC,
		statsUC:       statsUC,
		addPhotoUC:    addPhotoUC,
		removePhotoUC: removePhotoUC,
		photos:        photos,
		logger:        logger.NewLogger(),
	}
}

type CreateReportRequest struct {
	SchoolID       uint   `json:"school_id" binding:"required"`
	ReportType     string `json:"report_type" binding:"required"`
	InspectionDate string `json:"inspection_date" binding:"required"`
}

type ResponseInput struct {
	Rating string `json:"rating"`
	Notes  string `json:"notes"`
}

type SaveResponsesRequest struct {
	Responses    map[string]ResponseInput `json:"responses" binding:"required"`
	ClosingNotes *string                  `json:"closing_notes"`
}

type TransitionRequest struct {
	Action string `json:"action" binding:"required,oneof=submit start_review approve reject rework"`
	Reason string `json:"reason"`
}

type AddPhotoRequest struct {
	SectionKey string `form:"section_key"`
	Caption    string `form:"caption"`
}

func (h *ReportHandler) CreateReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create report", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	inspectionDate, err := time.Parse("2006-01-02", req.InspectionDate)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "inspection_date must be YYYY-MM-DD")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateReportCommand{
		Actor:          actor,
		SchoolID:       req.SchoolID,
		ReportType:     req.ReportType,
		InspectionDate: inspectionDate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result)
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	detail, err := h.getUC.Execute(c.Request.Context(), usecases.GetReportQuery{
		Actor:    actor,
		ReportID: reportID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	query := usecases.ListReportsQuery{
		Actor:     actor,
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	query.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if s := c.Query("school_id"); s != "" {
		if id, err := strconv.ParseUint(s, 10, 32); err == nil {
			schoolID := uint(id)
			query.SchoolID = &schoolID
		}
	}
	if s := c.Query("status"); s != "" {
		query.Status = &s
	}
	if s := c.Query("type"); s != "" {
		query.Type = &s
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Reports, result.Total, result.Page, result.PageSize)
}

// SaveResponses replaces the response set. The version header guards
// against two inspectors overwriting each other.
func (h *ReportHandler) SaveResponses(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}
	expectedVersion, ok := versionHeader(c)
	if !ok {
		return
	}

	var req SaveResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for save responses", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	responses := make(checklist.ResponseSet, len(req.Responses))
	for key, input := range req.Responses {
		responses[key] = checklist.Response{
			ItemKey: key,
			Rating:  checklist.Rating(input.Rating),
			Notes:   input.Notes,
		}
	}

	result, err := h.saveUC.Execute(c.Request.Context(), usecases.SaveResponsesCommand{
		Actor:           actor,
		ReportID:        reportID,
		ExpectedVersion: expectedVersion,
		Responses:       responses,
		ClosingNotes:    req.ClosingNotes,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "responses saved", result)
}

// Transition dispatches a lifecycle action. All actions share the
// version header check; reject additionally carries a reason.
func (h *ReportHandler) Transition(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}
	expectedVersion, ok := versionHeader(c)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for transition", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, bindingErrorMessage(err))
		return
	}

	ctx := c.Request.Context()
	var result *usecases.TransitionResult
	var err error

	switch req.Action {
	case "submit":
		result, err = h.submitUC.Execute(ctx, usecases.SubmitReportCommand{
			Actor: actor, ReportID: reportID, ExpectedVersion: expectedVersion,
		})
	case "start_review":
		result, err = h.startReviewUC.Execute(ctx, usecases.StartReviewCommand{
			Actor: actor, ReportID: reportID, ExpectedVersion: expectedVersion,
		})
	case "approve":
		result, err = h.approveUC.Execute(ctx, usecases.ApproveReportCommand{
			Actor: actor, ReportID: reportID, ExpectedVersion: expectedVersion,
		})
	case "reject":
		result, err = h.rejectUC.Execute(ctx, usecases.RejectReportCommand{
			Actor: actor, ReportID: reportID, ExpectedVersion: expectedVersion, Reason: req.Reason,
		})
	case "rework":
		result, err = h.reworkUC.Execute(ctx, usecases.ReworkReportCommand{
			Actor: actor, ReportID: reportID, ExpectedVersion: expectedVersion,
		})
	default:
		utils.ErrorResponse(c, http.StatusBadRequest, "unknown transition action")
		return
	}

	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "report transitioned", result)
}

func (h *ReportHandler) DeleteReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteReportCommand{
		Actor:    actor,
		ReportID: reportID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "report deleted", nil)
}

func (h *ReportHandler) GetProgress(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.progressUC.Execute(c.Request.Context(), usecases.GetProgressQuery{
		Actor:    actor,
		ReportID: reportID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GenerateSummary kicks off generation and returns immediately; the
// summary lands asynchronously.
func (h *ReportHandler) GenerateSummary(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.summaryUC.Execute(c.Request.Context(), usecases.GenerateSummaryCommand{
		Actor:    actor,
		ReportID: reportID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "summary generation started", result)
}

func (h *ReportHandler) ExportReport(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	result, err := h.exportUC.Execute(c.Request.Context(), usecases.ExportReportQuery{
		Actor:    actor,
		ReportID: reportID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ReportHandler) GetStats(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	query := usecases.GetStatsQuery{Actor: actor}
	if s := c.Query("school_id"); s != "" {
		if id, err := strconv.ParseUint(s, 10, 32); err == nil {
			schoolID := uint(id)
			query.SchoolID = &schoolID
		}
	}

	result, err := h.statsUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ReportHandler) AddPhoto(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid photo form")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	storagePath, err := h.photos.Store(c.Request.Context(), reportID, header.Filename, file)
	if err != nil {
		h.logger.Errorw("failed to store photo file", "error", err, "report_id", reportID)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to store photo")
		return
	}

	result, err := h.addPhotoUC.Execute(c.Request.Context(), usecases.AddPhotoCommand{
		Actor:       actor,
		ReportID:    reportID,
		SectionKey:  req.SectionKey,
		StoragePath: storagePath,
		Caption:     req.Caption,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "photo attached")
}

func (h *ReportHandler) RemovePhoto(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reportID, ok := paramID(c, "id")
	if !ok {
		return
	}
	photoID, ok := paramID(c, "photoId")
	if !ok {
		return
	}

	if err := h.removePhotoUC.Execute(c.Request.Context(), usecases.RemovePhotoCommand{
		Actor:    actor,
		ReportID: reportID,
		PhotoID:  photoID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "photo removed", nil)
}

func requireActor(c *gin.Context) (usecases.Actor, bool) {
	id, role, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing staff identity")
		c.Abort()
		return usecases.Actor{}, false
	}
	return usecases.Actor{ID: id, Role: role}, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

func versionHeader(c *gin.Context) (int, bool) {
	raw := c.GetHeader(VersionHeader)
	if raw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, VersionHeader+" header is required")
		return 0, false
	}
	version, err := strconv.Atoi(raw)
	if err != nil || version < 1 {
		utils.ErrorResponse(c, http.StatusBadRequest, VersionHeader+" header must be a positive integer")
		return 0, false
	}
	return version, true
}
