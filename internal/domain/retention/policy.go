// Package retention decides what expired artifacts may be purged. The
// decision is a pure predicate; enumeration and deletion are the
// caller's job, and scheduling lives in infrastructure.
package retention

import "time"

type ArtifactKind string

const (
	ArtifactTempFile ArtifactKind = "temp_file"
	ArtifactSession  ArtifactKind = "session"
)

// TempFileMaxAge is how long an orphaned upload may linger before it is
// eligible for purge.
const TempFileMaxAge = 24 * time.Hour

// Artifact is a purge candidate. ExpiresAt is zero for kinds whose
// lifetime is age-based rather than an explicit deadline.
type Artifact struct {
	Kind      ArtifactKind
	Ref       string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// EligibleForPurge reports whether the artifact may be deleted at now.
// Temp files age out after TempFileMaxAge; sessions are purgeable once
// past their expiry. Unknown kinds are never purgeable.
func EligibleForPurge(a Artifact, now time.Time) bool {
	switch a.Kind {
	case ArtifactTempFile:
		return now.Sub(a.CreatedAt) > TempFileMaxAge
	case ArtifactSession:
		return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
	default:
		return false
	}
}
