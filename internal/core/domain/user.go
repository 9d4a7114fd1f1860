package domain

import "time"

// UserRole defines what a user may do with finance data. Roles are ordered:
// ADMIN includes ACCOUNTANT, which includes VIEWER.
type UserRole string

const (
	RoleAdmin      UserRole = "ADMIN"
	RoleAccountant UserRole = "ACCOUNTANT"
	RoleViewer     UserRole = "VIEWER"
)

var roleRank = map[UserRole]int{
	RoleViewer:     1,
	RoleAccountant: 2,
	RoleAdmin:      3,
}

// IsValid reports whether r is a known role.
func (r UserRole) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Satisfies reports whether a user holding r may perform an action requiring required.
func (r UserRole) Satisfies(required UserRole) bool {
	return roleRank[r] >= roleRank[required] && roleRank[r] > 0
}

// UserRoleAssignment records the role granted to a user.
type UserRoleAssignment struct {
	UserID     string    `json:"userID"`
	Role       UserRole  `json:"role"`
	AssignedBy string    `json:"assignedBy"`
	AssignedAt time.Time `json:"assignedAt"`
}
