package capability

import (
	"context"
	"sync"

	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

// GrantStore persists administrative capability grants beyond the static
// table. The casbin-backed implementation lives in infrastructure.
type GrantStore interface {
	SaveGrant(ctx context.Context, role Role, cap Capability) error
	RemoveGrant(ctx context.Context, role Role, cap Capability) error
	LoadGrants(ctx context.Context) (map[Role][]Capability, error)
}

// defaultGrants is the static role table. It mirrors the production role
// setup: the platform administrator holds everything including approval,
// the QA super admin runs the program but does not sit in the approval
// chain, directors and officers author reports, and program managers only
// read and export their own school's reports.
var defaultGrants = map[Role][]Capability{
	RoleAdministrator: {
		ManageSettings, ManageUsers, ManageSchools,
		ViewAllReports, ViewOwnReports, CreateReports,
		EditAllReports, EditOwnReports, DeleteReports,
		ExportReports, UseAIFeatures, ApproveReports,
	},
	RoleSuperAdmin: {
		ManageSettings, ManageUsers, ManageSchools,
		ViewAllReports, CreateReports, EditAllReports,
		DeleteReports, ExportReports, UseAIFeatures,
	},
	RoleRegionalDirector: {
		ManageSchools, ViewAllReports, CreateReports,
		EditOwnReports, ExportReports, UseAIFeatures,
	},
	RoleQAOfficer: {
		ViewAllReports, CreateReports, EditOwnReports,
		ExportReports, UseAIFeatures,
	},
	RoleProgramManager: {
		ViewOwnReports, ExportReports,
	},
}

// Registry answers capability queries for roles. The table is loaded once
// at construction and mutated only through the capability-gated Grant and
// Revoke operations. Unknown roles resolve to the empty set.
type Registry struct {
	mu     sync.RWMutex
	grants map[Role]map[Capability]bool
	store  GrantStore
}

// NewRegistry builds a registry from the static table plus any persisted
// administrative grants. store may be nil, in which case grants are
// in-memory only.
func NewRegistry(ctx context.Context, store GrantStore) (*Registry, error) {
	r := &Registry{
		grants: make(map[Role]map[Capability]bool, len(defaultGrants)),
		store:  store,
	}

	for role, caps := range defaultGrants {
		set := make(map[Capability]bool, len(caps))
		for _, c := range caps {
			set[c] = true
		}
		r.grants[role] = set
	}

	if store != nil {
		persisted, err := store.LoadGrants(ctx)
		if err != nil {
			return nil, errors.NewCollaboratorError("load capability grants", err)
		}
		for role, caps := range persisted {
			if r.grants[role] == nil {
				r.grants[role] = make(map[Capability]bool, len(caps))
			}
			for _, c := range caps {
				r.grants[role][c] = true
			}
		}
	}

	return r, nil
}

// CapabilitiesFor returns a copy of the capability set for role. An
// unmapped role yields an empty set, never an error.
func (r *Registry) CapabilitiesFor(role Role) []Capability {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.grants[role]
	caps := make([]Capability, 0, len(set))
	for c := range set {
		caps = append(caps, c)
	}
	return caps
}

// Has reports whether role holds cap. Unknown roles fail closed.
func (r *Registry) Has(role Role, cap Capability) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.grants[role][cap]
}

// Grant adds cap to role's set. The acting role must hold ManageUsers.
func (r *Registry) Grant(ctx context.Context, actor Role, role Role, cap Capability) error {
	if !r.Has(actor, ManageUsers) {
		return errors.NewForbiddenError("granting capabilities requires manage_users", ManageUsers.String())
	}
	if !role.IsValid() {
		return errors.NewValidationError("unknown role: " + role.String())
	}
	if !cap.IsValid() {
		return errors.NewValidationError("unknown capability: " + cap.String())
	}

	if r.store != nil {
		if err := r.store.SaveGrant(ctx, role, cap); err != nil {
			return errors.NewCollaboratorError("save capability grant", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.grants[role] == nil {
		r.grants[role] = make(map[Capability]bool)
	}
	r.grants[role][cap] = true
	return nil
}

// Revoke removes cap from role's set. The acting role must hold ManageUsers.
func (r *Registry) Revoke(ctx context.Context, actor Role, role Role, cap Capability) error {
	if !r.Has(actor, ManageUsers) {
		return errors.NewForbiddenError("revoking capabilities requires manage_users", ManageUsers.String())
	}

	if r.store != nil {
		if err := r.store.RemoveGrant(ctx, role, cap); err != nil {
			return errors.NewCollaboratorError("remove capability grant", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.grants[role], cap)
	return nil
}
