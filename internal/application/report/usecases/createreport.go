package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/domain/school"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type CreateReportCommand struct {
	Actor          Actor
	SchoolID       uint
	ReportType     string
	InspectionDate time.Time
}

type CreateReportResult struct {
	ReportID        uint
	SchoolID        uint
	Status          string
	TemplateVersion string
	Version         int
	CreatedAt       string
}

type CreateReportUseCase struct {
	reportRepo   report.Repository
	schoolRepo   school.Repository
	templateRepo checklist.TemplateRepository
	registry     *capability.Registry
	clock        clock.Clock
	logger       logger.Interface
}

func NewCreateReportUseCase(
	reportRepo report.Repository,
	schoolRepo school.Repository,
	templateRepo checklist.TemplateRepository,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
) *CreateReportUseCase {
	return &CreateReportUseCase{
		reportRepo:   reportRepo,
		schoolRepo:   schoolRepo,
		templateRepo: templateRepo,
		registry:     registry,
		clock:        clock,
		logger:       logger,
	}
}

func (uc *CreateReportUseCase) Execute(ctx context.Context, cmd CreateReportCommand) (*CreateReportResult, error) {
	uc.logger.Infow("executing create report use case", "school_id", cmd.SchoolID, "report_type", cmd.ReportType, "actor_id", cmd.Actor.ID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid create report command", "error", err)
		return nil, err
	}

	if err := requireCapability(uc.registry, cmd.Actor, capability.CreateReports); err != nil {
		return nil, err
	}

	s, err := uc.schoolRepo.GetByID(ctx, cmd.SchoolID)
	if err != nil {
		uc.logger.Errorw("failed to get school", "school_id", cmd.SchoolID, "error", err)
		return nil, errors.NewCollaboratorError("get school", err)
	}
	if s == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("school %d not found", cmd.SchoolID))
	}

	tpl, err := uc.templateRepo.GetLatestByType(ctx, cmd.ReportType)
	if err != nil {
		uc.logger.Errorw("failed to get template", "report_type", cmd.ReportType, "error", err)
		return nil, errors.NewCollaboratorError("get template", err)
	}
	if tpl == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("no checklist template for type %s", cmd.ReportType))
	}

	now := uc.clock.Now()
	r, err := report.NewReport(cmd.SchoolID, cmd.Actor.ID, cmd.ReportType, tpl.Version, cmd.InspectionDate, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.reportRepo.Save(ctx, r); err != nil {
		uc.logger.Errorw("failed to save report", "error", err)
		return nil, errors.NewCollaboratorError("save report", err)
	}

	uc.logger.Infow("report created", "report_id", r.ID(), "school_id", cmd.SchoolID, "template_version", tpl.Version)

	return &CreateReportResult{
		ReportID:        r.ID(),
		SchoolID:        r.SchoolID(),
		Status:          r.Status().String(),
		TemplateVersion: r.TemplateVersion(),
		Version:         r.Version(),
		CreatedAt:       r.CreatedAt().Format(time.RFC3339),
	}, nil
}

func (uc *CreateReportUseCase) validateCommand(cmd CreateReportCommand) error {
	if err := cmd.Actor.validate(); err != nil {
		return err
	}
	if cmd.SchoolID == 0 {
		return errors.NewValidationError("school ID is required")
	}
	if cmd.ReportType == "" {
		return errors.NewValidationError("report type is required")
	}
	if cmd.InspectionDate.IsZero() {
		return errors.NewValidationError("inspection date is required")
	}
	return nil
}
