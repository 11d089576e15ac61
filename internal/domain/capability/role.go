package capability

// Role is a named actor category with an associated capability set.
type Role string

const (
	RoleAdministrator    Role = "administrator"
	RoleSuperAdmin       Role = "super_admin"
	RoleRegionalDirector Role = "regional_director"
	RoleQAOfficer        Role = "qa_officer"
	RoleProgramManager   Role = "program_manager"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleSuperAdmin, RoleRegionalDirector, RoleQAOfficer, RoleProgramManager:
		return true
	}
	return false
}

// ParseRole returns the role for s. Unknown strings map to the empty
// role, which holds no capabilities.
func ParseRole(s string) Role {
	role := Role(s)
	if role.IsValid() {
		return role
	}
	return Role("")
}
