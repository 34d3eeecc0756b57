// Package policy holds the static role-to-capability table and the ownership
// predicates that narrow which records a role may touch. Authorization checks
// everywhere in the system are lookups against this one table, never inline
// role comparisons scattered per route.
package policy

import (
	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// Action is something a caller wants to do.
type Action string

const (
	// ActionView reads shipments or orders.
	ActionView Action = "view"
	// ActionCreate registers new shipments or orders.
	ActionCreate Action = "create"
	// ActionEdit modifies shipment data.
	ActionEdit Action = "edit"
	// ActionAssignDriver links a driver to a shipment.
	ActionAssignDriver Action = "assign-driver"
	// ActionUpdateStatus moves a shipment through its lifecycle.
	ActionUpdateStatus Action = "update-status"
	// ActionRecordDelivery writes the proof of delivery.
	ActionRecordDelivery Action = "record-delivery"
	// ActionTracking is the public lookup by code.
	ActionTracking Action = "tracking"
	// ActionManageUsers covers the user administration endpoints.
	ActionManageUsers Action = "manage-users"
	// ActionManageSettings covers the configuration endpoints.
	ActionManageSettings Action = "manage-settings"
)

// capabilities is the total table from the authorization design: every role
// maps to a fixed set. Admin is handled in Allows, not listed here.
var capabilities = map[entity.Role][]Action{
	entity.RoleOperator: {ActionView, ActionCreate, ActionEdit, ActionAssignDriver, ActionUpdateStatus, ActionTracking},
	entity.RoleDriver:   {ActionView, ActionUpdateStatus, ActionRecordDelivery, ActionTracking},
	entity.RoleCustomer: {ActionView, ActionTracking},
}

// Allows is a pure function of (role, action). Admin is allowed everything.
func Allows(role entity.Role, action Action) bool {
	if role == entity.RoleAdmin {
		return true
	}
	for _, a := range capabilities[role] {
		if a == action {
			return true
		}
	}

	return false
}

// ScopedToOwn reports whether the role only sees records it owns.
// Operators and admins see everything.
func ScopedToOwn(role entity.Role) bool {
	return role == entity.RoleDriver || role == entity.RoleCustomer
}

// OwnsShipment is the ownership predicate applied per record: a driver owns a
// shipment assigned to them; a customer owns a shipment they registered.
func OwnsShipment(role entity.Role, userID uuid.UUID, s *entity.Shipment) bool {
	switch role {
	case entity.RoleDriver:
		return s.DriverID != nil && *s.DriverID == userID
	case entity.RoleCustomer:
		return s.RegisteredBy == userID
	default:
		return false
	}
}

// CanAccessShipment combines the scope rule with the ownership predicate.
func CanAccessShipment(role entity.Role, userID uuid.UUID, s *entity.Shipment) bool {
	if !ScopedToOwn(role) {
		return true
	}

	return OwnsShipment(role, userID, s)
}
