package usecases

import (
	"context"

	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type ProbeAdminQuery struct {
	HostToken string
}

type ProbeAdminResult struct {
	Admin bool `json:"admin"`
}

// ProbeAdminUseCase re-verifies a host-platform token for an admin claim
// on every privileged call. A client-asserted admin flag is never
// trusted and the verification result is never attached to a session.
type ProbeAdminUseCase struct {
	verifier AdminVerifier
	logger   logger.Interface
}

func NewProbeAdminUseCase(verifier AdminVerifier, logger logger.Interface) *ProbeAdminUseCase {
	return &ProbeAdminUseCase{
		verifier: verifier,
		logger:   logger,
	}
}

func (uc *ProbeAdminUseCase) Execute(ctx context.Context, query ProbeAdminQuery) (*ProbeAdminResult, error) {
	if query.HostToken == "" {
		return nil, errors.NewUnauthenticatedError("host token is required")
	}

	admin, err := uc.verifier.VerifyAdmin(ctx, query.HostToken)
	if err != nil {
		uc.logger.Warnw("host token verification failed", "error", err)
		return nil, errors.NewUnauthenticatedError("host token verification failed")
	}

	return &ProbeAdminResult{Admin: admin}, nil
}
