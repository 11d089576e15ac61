package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/domain/retention"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

// ArtifactSource enumerates purge candidates of one kind and removes
// them. Implementations exist for temp upload files and portal sessions.
type ArtifactSource interface {
	Name() string
	ListArtifacts(ctx context.Context) ([]retention.Artifact, error)
	Remove(ctx context.Context, artifact retention.Artifact) error
}

type PurgeExpiredExecutor interface {
	Execute(ctx context.Context) (*PurgeResult, error)
}

type PurgeResult struct {
	Scanned int `json:"scanned"`
	Purged  int `json:"purged"`
	Failed  int `json:"failed"`
}

// PurgeExpiredUseCase sweeps every artifact source, applies the
// retention predicate, and deletes what is eligible. Best effort and
// idempotent: individual failures are logged and counted, never fatal,
// and a re-run after a partial failure finishes the job.
type PurgeExpiredUseCase struct {
	sources []ArtifactSource
	clock   clock.Clock
	logger  logger.Interface
}

func NewPurgeExpiredUseCase(
	sources []ArtifactSource,
	clock clock.Clock,
	logger logger.Interface,
) *PurgeExpiredUseCase {
	return &PurgeExpiredUseCase{
		sources: sources,
		clock:   clock,
		logger:  logger,
	}
}

func (uc *PurgeExpiredUseCase) Execute(ctx context.Context) (*PurgeResult, error) {
	now := uc.clock.Now()
	result := &PurgeResult{}

	for _, source := range uc.sources {
		artifacts, err := source.ListArtifacts(ctx)
		if err != nil {
			uc.logger.Errorw("failed to enumerate artifacts", "source", source.Name(), "error", err)
			result.Failed++
			continue
		}

		for _, a := range artifacts {
			result.Scanned++
			if !retention.EligibleForPurge(a, now) {
				continue
			}
			if err := source.Remove(ctx, a); err != nil {
				uc.logger.Errorw("failed to purge artifact", "source", source.Name(), "ref", a.Ref, "error", err)
				result.Failed++
				continue
			}
			result.Purged++
		}
	}

	uc.logger.Infow("purge sweep complete", "scanned", result.Scanned, "purged", result.Purged, "failed", result.Failed)
	return result, nil
}
