// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
// The string values are the wire values the API exposes, which are the
// Spanish role names the frontend and existing deployments rely on.
type Role string

const (
	// RoleAdmin has every capability in the system.
	RoleAdmin Role = "admin"
	// RoleOperator registers shipments and assigns drivers.
	RoleOperator Role = "operador"
	// RoleDriver delivers shipments assigned to them.
	RoleDriver Role = "chofer"
	// RoleCustomer tracks the shipments they registered.
	RoleCustomer Role = "usuario"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleDriver, RoleCustomer:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
