package capability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chroma-excellence/chromaqa/internal/shared/errors"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(context.Background(), nil)
	require.NoError(t, err)
	return r
}

func TestRegistry_CapabilitiesFor_UnknownRoleFailsClosed(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name string
		role Role
	}{
		{name: "empty role", role: Role("")},
		{name: "unmapped role", role: Role("janitor")},
		{name: "near-miss spelling", role: Role("qa_officers")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, r.CapabilitiesFor(tt.role))
			assert.False(t, r.Has(tt.role, ViewAllReports))
		})
	}
}

func TestRegistry_Has_StaticTable(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name string
		role Role
		cap  Capability
		want bool
	}{
		{"administrator approves", RoleAdministrator, ApproveReports, true},
		{"super admin manages settings", RoleSuperAdmin, ManageSettings, true},
		{"super admin does not approve", RoleSuperAdmin, ApproveReports, false},
		{"director creates", RoleRegionalDirector, CreateReports, true},
		{"director cannot delete", RoleRegionalDirector, DeleteReports, false},
		{"officer edits own", RoleQAOfficer, EditOwnReports, true},
		{"officer cannot edit all", RoleQAOfficer, EditAllReports, false},
		{"program manager views own", RoleProgramManager, ViewOwnReports, true},
		{"program manager cannot create", RoleProgramManager, CreateReports, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Has(tt.role, tt.cap))
		})
	}
}

func TestRegistry_Grant(t *testing.T) {
	ctx := context.Background()

	t.Run("requires manage_users", func(t *testing.T) {
		r := newTestRegistry(t)

		err := r.Grant(ctx, RoleQAOfficer, RoleProgramManager, CreateReports)
		require.Error(t, err)
		assert.True(t, errors.IsForbiddenError(err))
		assert.False(t, r.Has(RoleProgramManager, CreateReports))
	})

	t.Run("adds capability to role", func(t *testing.T) {
		r := newTestRegistry(t)

		err := r.Grant(ctx, RoleAdministrator, RoleRegionalDirector, ApproveReports)
		require.NoError(t, err)
		assert.True(t, r.Has(RoleRegionalDirector, ApproveReports))
	})

	t.Run("rejects unknown capability", func(t *testing.T) {
		r := newTestRegistry(t)

		err := r.Grant(ctx, RoleAdministrator, RoleQAOfficer, Capability("fly"))
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("rejects unknown role", func(t *testing.T) {
		r := newTestRegistry(t)

		err := r.Grant(ctx, RoleAdministrator, Role("janitor"), CreateReports)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestRegistry_Revoke(t *testing.T) {
	ctx := context.Background()
	r := newTestRegistry(t)

	require.NoError(t, r.Revoke(ctx, RoleAdministrator, RoleQAOfficer, CreateReports))
	assert.False(t, r.Has(RoleQAOfficer, CreateReports))

	err := r.Revoke(ctx, RoleProgramManager, RoleQAOfficer, ExportReports)
	require.Error(t, err)
	assert.True(t, errors.IsForbiddenError(err))
	assert.True(t, r.Has(RoleQAOfficer, ExportReports))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleQAOfficer, ParseRole("qa_officer"))
	assert.Equal(t, Role(""), ParseRole("unknown"))
	assert.Empty(t, ParseRole("unknown").String())
}
