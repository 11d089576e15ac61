// Package capability maps inspection roles to their permission sets.
// Each role's set is listed explicitly. There is no inheritance between
// roles and no rank-ordering shortcut, so a capability is held only when
// it was deliberately granted.
package capability

// Capability is a named permission string grantable to a role.
type Capability string

const (
	ManageSettings Capability = "manage_settings"
	ManageUsers    Capability = "manage_users"
	ManageSchools  Capability = "manage_schools"
	ViewAllReports Capability = "view_all_reports"
	ViewOwnReports Capability = "view_own_reports"
	CreateReports  Capability = "create_reports"
	EditAllReports Capability = "edit_all_reports"
	EditOwnReports Capability = "edit_own_reports"
	DeleteReports  Capability = "delete_reports"
	ExportReports  Capability = "export_reports"
	UseAIFeatures  Capability = "use_ai_features"
	ApproveReports Capability = "approve_reports"
)

func (c Capability) String() string {
	return string(c)
}

var validCapabilities = map[Capability]bool{
	ManageSettings: true,
	ManageUsers:    true,
	ManageSchools:  true,
	ViewAllReports: true,
	ViewOwnReports: true,
	CreateReports:  true,
	EditAllReports: true,
	EditOwnReports: true,
	DeleteReports:  true,
	ExportReports:  true,
	UseAIFeatures:  true,
	ApproveReports: true,
}

func (c Capability) IsValid() bool {
	return validCapabilities[c]
}
