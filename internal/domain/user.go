package domain

import "time"

// UserRole enumerates portal roles.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleManager      UserRole = "manager"
	RoleTeamLead     UserRole = "team_lead"
	RoleSupportAgent UserRole = "support_agent"
	RoleDeveloper    UserRole = "developer"
	RoleQAEngineer   UserRole = "qa_engineer"
	RoleDesigner     UserRole = "designer"
	RoleAnalyst      UserRole = "analyst"
)

// ValidRole reports whether r is a known role.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTeamLead, RoleSupportAgent,
		RoleDeveloper, RoleQAEngineer, RoleDesigner, RoleAnalyst:
		return true
	}
	return false
}

// User models a portal account. Accounts are soft-deactivatable and
// hard-deletable only when they own no tickets.
type User struct {
	ID           int64
	Email        string
	FullName     string
	PasswordHash string
	Role         UserRole
	GroupID      *int64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
