package usecases

import (
	"context"
	"time"

	"github.com/chroma-excellence/chromaqa/internal/domain/portal"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

type LoginCommand struct {
	PIN       string
	ClientKey string
}

type LoginResult struct {
	Token      string `json:"token"`
	FamilyID   uint   `json:"family_id"`
	FamilyName string `json:"family_name"`
	ExpiresAt  string `json:"expires_at"`
}

// LoginUseCase authenticates a family by PIN. Every candidate hash is
// compared with the same cost, and the failure message is identical
// whether the PIN is unknown or merely wrong, so a caller cannot probe
// which PINs exist.
type LoginUseCase struct {
	familyRepo portal.FamilyRepository
	sessions   portal.SessionStore
	hasher     portal.PINHasher
	limiter    RateLimiter
	clock      clock.Clock
	logger     logger.Interface
	sessionTTL time.Duration
}

func NewLoginUseCase(
	familyRepo portal.FamilyRepository,
	sessions portal.SessionStore,
	hasher portal.PINHasher,
	limiter RateLimiter,
	clock clock.Clock,
	logger logger.Interface,
	sessionTTL time.Duration,
) *LoginUseCase {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &LoginUseCase{
		familyRepo: familyRepo,
		sessions:   sessions,
		hasher:     hasher,
		limiter:    limiter,
		clock:      clock,
		logger:     logger,
		sessionTTL: sessionTTL,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	if cmd.PIN == "" {
		return nil, errors.NewValidationError("PIN is required")
	}

	allowed, err := uc.limiter.Allow(ctx, cmd.ClientKey)
	if err != nil {
		uc.logger.Errorw("rate limiter failure", "error", err)
		return nil, errors.NewCollaboratorError("rate limit check", err)
	}
	if !allowed {
		uc.logger.Warnw("portal login rate limited", "client_key", cmd.ClientKey)
		return nil, errors.NewRateLimitedError()
	}

	families, err := uc.familyRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list families", "error", err)
		return nil, errors.NewCollaboratorError("list families", err)
	}

	var matched *portal.Family
	for _, f := range families {
		if uc.hasher.Compare(f.PINHash(), cmd.PIN) {
			matched = f
		}
	}
	if matched == nil {
		uc.logger.Infow("portal login failed", "client_key", cmd.ClientKey)
		return nil, errors.NewInvalidCredentialsError()
	}

	session, err := portal.NewSession(matched.ID(), false, uc.clock.Now(), uc.sessionTTL)
	if err != nil {
		uc.logger.Errorw("failed to create session", "family_id", matched.ID(), "error", err)
		return nil, errors.NewCollaboratorError("create session", err)
	}

	if err := uc.sessions.Save(ctx, session); err != nil {
		uc.logger.Errorw("failed to save session", "family_id", matched.ID(), "error", err)
		return nil, errors.NewCollaboratorError("save session", err)
	}

	uc.logger.Infow("portal login succeeded", "family_id", matched.ID())

	return &LoginResult{
		Token:      session.Token,
		FamilyID:   matched.ID(),
		FamilyName: matched.Name(),
		ExpiresAt:  session.ExpiresAt.Format(time.RFC3339),
	}, nil
}
