package usecases

import (
	"context"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type RenewSessionCommand struct {
	Token string
}

type RenewSessionResult struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// RenewSessionUseCase extends a live session in place. The token stays
// the same; an expired session cannot be renewed, only re-issued through
// login.
type RenewSessionUseCase struct {
	sessions   portal.SessionStore
	clock      clock.Clock
	logger     logger.Interface
	sessionTTL time.Duration
}

func NewRenewSessionUseCase(
	sessions portal.SessionStore,
	clock clock.Clock,
	logger logger.Interface,
	sessionTTL time.Duration,
) *RenewSessionUseCase {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &RenewSessionUseCase{
		sessions:   sessions,
		clock:      clock,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

func (uc *RenewSessionUseCase) Execute(ctx context.Context, cmd RenewSessionCommand) (*RenewSessionResult, error) {
	if cmd.Token == "" {
		return nil, errors.NewUnauthenticatedError("session token is required")
	}

	session, err := uc.sessions.Get(ctx, cmd.Token)
	if err != nil {
		uc.logger.Errorw("failed to get session", "error", err)
		return nil, errors.NewCollaboratorError("get session", err)
	}
	if session == nil {
		return nil, errors.NewUnauthenticatedError("unknown session token")
	}

	now := uc.clock.Now()
	if session.IsExpired(now) {
		return nil, errors.NewSessionExpiredError()
	}

	session.Renew(now, uc.sessionTTL)
	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Errorw("failed to save renewed session", "error", err)
		return nil, errors.NewCollaboratorError("save session", err)
	}

	uc.logger.Infow("portal session renewed", "family_id", session.FamilyID)

	return &RenewSessionResult{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.Format(time.RFC3339),
	}, nil
}
