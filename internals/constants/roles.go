package constants

import "fmt"

// Roles stored on users.user_role. Visitor is never stored: it is the role of
// an unauthenticated request.
const (
	RoleMember       = "MEMBER"
	RoleCoach        = "COACH"
	RoleManager      = "MANAGER"
	RoleManagerCoach = "MANAGER_COACH"
	RoleAdmin        = "ADMIN"
	RoleVisitor      = "VISITOR"
)

// Role error message templates
const (
	ErrOnlyManagersCanAccess = "❌ Only managers or admins can access %s."
	ErrOnlyCoachesCanAccess  = "❌ Only coaches or admins can access %s."
	ErrOnlyAdminsCanAccess   = "❌ Only admins can access %s."
	ErrOnlyMembersCanAccess  = "❌ Only signed-in users can access %s."
)

func RoleErrorManager(feature string) string {
	return fmt.Sprintf(ErrOnlyManagersCanAccess, feature)
}

func RoleErrorCoach(feature string) string {
	return fmt.Sprintf(ErrOnlyCoachesCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorMember(feature string) string {
	return fmt.Sprintf(ErrOnlyMembersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMember,
		RoleCoach,
		RoleManager,
		RoleManagerCoach,
		RoleAdmin,
	}

	ManagerAndAbove = []string{
		RoleManager,
		RoleManagerCoach,
		RoleAdmin,
	}

	CoachAndAbove = []string{
		RoleCoach,
		RoleManagerCoach,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	// Roles a pricing can target (admin plans are never sold).
	PricingTargets = []string{
		RoleMember,
		RoleCoach,
		RoleManager,
		RoleManagerCoach,
	}
)

// RoleLabel mirrors the labels shown in the admin user list.
func RoleLabel(role string) string {
	switch role {
	case RoleMember:
		return "user"
	case RoleCoach:
		return "coach"
	case RoleManager:
		return "manager"
	case RoleManagerCoach:
		return "manager-coach"
	case RoleAdmin:
		return "admin"
	default:
		return "???"
	}
}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
