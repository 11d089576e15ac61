package usecases

import "context"

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error)
}

type ValidateSessionExecutor interface {
	Execute(ctx context.Context, query ValidateSessionQuery) (*SessionIdentity, error)
}

type RenewSessionExecutor interface {
	Execute(ctx context.Context, cmd RenewSessionCommand) (*RenewSessionResult, error)
}

type ProbeAdminExecutor interface {
	Execute(ctx context.Context, query ProbeAdminQuery) (*ProbeAdminResult, error)
}

// RateLimiter bounds login attempts per client key within a rolling
// window. Allow returns false once the budget is spent.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// AdminVerifier checks a host-platform token for an administrator claim.
// Verification happens on every call; the result is never cached as
// session authority.
type AdminVerifier interface {
	VerifyAdmin(ctx context.Context, hostToken string) (bool, error)
}
