package usecases

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/checklist"
	"github.com/chroma-excellence/chromaqa/internal/domain/report"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type GenerateSummaryCommand struct {
	Actor    Actor
	ReportID uint
}

type GenerateSummaryResult struct {
	ReportID uint   `json:"report_id"`
	Status   string `json:"status"`
}

// GenerateSummaryUseCase kicks off summary generation and returns
// immediately. Generation runs in the background; a newer request for
// the same report supersedes any run still in flight, so only the
// latest result is ever saved. Failures are recorded in the log and
// never touch the report's lifecycle state.
type GenerateSummaryUseCase struct {
	reportRepo   report.Repository
	templateRepo checklist.TemplateRepository
	summaryRepo  report.SummaryRepository
	generator    SummaryGenerator
	registry     *capability.Registry
	clock        clock.Clock
	logger       logger.Interface
	timeout      time.Duration

	mu     sync.Mutex
	latest map[uint]uint64
	saveMu sync.Mutex
}

func NewGenerateSummaryUseCase(
	reportRepo report.Repository,
	templateRepo checklist.TemplateRepository,
	summaryRepo report.SummaryRepository,
	generator SummaryGenerator,
	registry *capability.Registry,
	clock clock.Clock,
	logger logger.Interface,
	timeout time.Duration,
) *GenerateSummaryUseCase {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GenerateSummaryUseCase{
		reportRepo:   reportRepo,
		templateRepo: templateRepo,
		summaryRepo:  summaryRepo,
		generator:    generator,
		registry:     registry,
		clock:        clock,
		logger:       logger,
		timeout:      timeout,
		latest:       make(map[uint]uint64),
	}
}

func (uc *GenerateSummaryUseCase) Execute(ctx context.Context, cmd GenerateSummaryCommand) (*GenerateSummaryResult, error) {
	uc.logger.Infow("executing generate summary use case", "report_id", cmd.ReportID, "actor_id", cmd.Actor.ID)

	if err := cmd.Actor.validate(); err != nil {
		return nil, err
	}
	if cmd.ReportID == 0 {
		return nil, errors.NewValidationError("report ID is required")
	}

	if err := requireCapability(uc.registry, cmd.Actor, capability.UseAIFeatures); err != nil {
		return nil, err
	}

	r, err := uc.reportRepo.GetByID(ctx, cmd.ReportID)
	if err != nil {
		uc.logger.Errorw("failed to get report", "report_id", cmd.ReportID, "error", err)
		return nil, errors.NewCollaboratorError("get report", err)
	}
	if r == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("report %d not found", cmd.ReportID))
	}

	if !r.Status().AllowsSummaryGeneration() {
		return nil, errors.NewValidationError(
			fmt.Sprintf("summary generation is not available for %s reports", r.Status()),
		)
	}

	tpl, err := uc.templateRepo.GetByVersion(ctx, r.TemplateVersion())
	if err != nil {
		uc.logger.Errorw("failed to get template", "version", r.TemplateVersion(), "error", err)
		return nil, errors.NewCollaboratorError("get template", err)
	}
	if tpl == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("checklist template version %s not found", r.TemplateVersion()))
	}

	run := uc.beginRun(cmd.ReportID)
	go uc.generate(r, tpl, run)

	return &GenerateSummaryResult{ReportID: cmd.ReportID, Status: "accepted"}, nil
}

func (uc *GenerateSummaryUseCase) beginRun(reportID uint) uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.latest[reportID]++
	return uc.latest[reportID]
}

func (uc *GenerateSummaryUseCase) isCurrentRun(reportID uint, run uint64) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.latest[reportID] == run
}

func (uc *GenerateSummaryUseCase) generate(r *report.Report, tpl *checklist.Template, run uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), uc.timeout)
	defer cancel()

	content, err := uc.generator.Generate(ctx, r, tpl)
	if err != nil {
		uc.logger.Errorw("summary generation failed", "report_id", r.ID(), "run", run, "error", err)
		return
	}

	// The staleness check and the save hold the same lock, so a
	// superseded run cannot slip its result in after the current run
	// has already saved.
	uc.saveMu.Lock()
	defer uc.saveMu.Unlock()

	if !uc.isCurrentRun(r.ID(), run) {
		uc.logger.Infow("summary run superseded, discarding result", "report_id", r.ID(), "run", run)
		return
	}

	summary, err := report.NewSummary(r.ID(), content, uc.clock.Now())
	if err != nil {
		uc.logger.Errorw("failed to build summary", "report_id", r.ID(), "error", err)
		return
	}

	if err := uc.summaryRepo.Save(ctx, summary); err != nil {
		uc.logger.Errorw("failed to save summary", "report_id", r.ID(), "error", err)
		return
	}

	uc.logger.Infow("summary generated", "report_id", r.ID(), "run", run, "content_hash", summary.ContentHash)
}
