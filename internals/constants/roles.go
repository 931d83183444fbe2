package constants

const (
	RoleViewer     = "viewer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleViewer,
		RoleAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

func IsSuperAdmin(role string) bool {
	return role == RoleSuperAdmin
}
