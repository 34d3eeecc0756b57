package entity

// TransitionPolicy decides which shipment status transitions are legal.
// The default policy is permissive: any status may follow any other, which
// matches how operators actually correct mistakes in the field (a shipment
// marked delivered by accident gets moved back). A stricter forward-only
// table can be swapped in here without touching any call site.
type TransitionPolicy interface {
	// CanTransition reports whether a shipment may move from one status to another.
	CanTransition(from, to ShipmentStatus) bool
}

type permissiveTransitions struct{}

// PermissiveTransitions returns the default policy: every valid status is
// reachable from every status.
func PermissiveTransitions() TransitionPolicy {
	return permissiveTransitions{}
}

func (permissiveTransitions) CanTransition(_, to ShipmentStatus) bool {
	return to.IsValid()
}

// tableTransitions validates moves against an explicit allow table.
type tableTransitions struct {
	allowed map[ShipmentStatus][]ShipmentStatus
}

// TableTransitions returns a policy that only allows the listed moves.
// Statuses absent from the table are terminal.
func TableTransitions(allowed map[ShipmentStatus][]ShipmentStatus) TransitionPolicy {
	return tableTransitions{allowed: allowed}
}

// ForwardOnlyTransitions is the strict alternative to the permissive default:
// registrada -> en_transito -> en_reparto -> entregada, with devuelta
// reachable from anywhere except entregada.
func ForwardOnlyTransitions() TransitionPolicy {
	return TableTransitions(map[ShipmentStatus][]ShipmentStatus{
		ShipmentRegistered:     {ShipmentInTransit, ShipmentReturned},
		ShipmentInTransit:      {ShipmentOutForDelivery, ShipmentReturned},
		ShipmentOutForDelivery: {ShipmentDelivered, ShipmentReturned},
	})
}

func (t tableTransitions) CanTransition(from, to ShipmentStatus) bool {
	for _, next := range t.allowed[from] {
		if next == to {
			return true
		}
	}

	return false
}
