package usecases

import (
	"context"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type ValidateSessionQuery struct {
	Token string
}

type SessionIdentity struct {
	FamilyID  uint   `json:"family_id"`
	ExpiresAt string `json:"expires_at"`
}

type ValidateSessionUseCase struct {
	sessions portal.SessionStore
	clock    clock.Clock
	logger   logger.Interface
}

func NewValidateSessionUseCase(
	sessions portal.SessionStore,
	clock clock.Clock,
	logger logger.Interface,
) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{
		sessions: sessions,
		clock:    clock,
		logger:   logger,
	}
}

func (uc *ValidateSessionUseCase) Execute(ctx context.Context, query ValidateSessionQuery) (*SessionIdentity, error) {
	if query.Token == "" {
		return nil, errors.NewUnauthenticatedError("session token is required")
	}

	session, err := uc.sessions.Get(ctx, query.Token)
	if err != nil {
		uc.logger.Errorw("failed to get session", "error", err)
		return nil, errors.NewCollaboratorError("get session", err)
	}
	if session == nil {
		return nil, errors.NewUnauthenticatedError("unknown session token")
	}

	if session.IsExpired(uc.clock.Now()) {
		// Best effort; the store's own TTL removes it regardless.
		if err := uc.sessions.Delete(ctx, query.Token); err != nil {
			uc.logger.Warnw("failed to delete expired session", "error", err)
		}
		return nil, errors.NewSessionExpiredError()
	}

	return &SessionIdentity{
		FamilyID:  session.FamilyID,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}, nil
}
