package constants

import "fmt"

const (
	RoleOwner      = "owner"
	RoleAdmin      = "admin"
	RoleAccountant = "accountant"
	RoleTutor      = "tutor"
	RoleStaff      = "staff"
)

const ErrOnlyAdminsCanAccess = "Only admin, accountant, or owner roles may access %s."

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

var (
	AllRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleAccountant,
		RoleTutor,
		RoleStaff,
	}

	// Roles allowed on the finance/admin surface
	FinanceRoles = []string{
		RoleOwner,
		RoleAdmin,
		RoleAccountant,
	}
)

func RoleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
