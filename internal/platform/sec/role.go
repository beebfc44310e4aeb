// Copyright (c) 2026 Edura. All rights reserved.
// Author: platform@edura.app

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can create courses and track the progress of enrolled students
	RoleMentor UserRole = "mentor"

	// Default role for registered learners
	RoleStudent UserRole = "student"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleMentor:
		return 20
	case RoleStudent:
		return 10
	default:
		return 0
	}
}
