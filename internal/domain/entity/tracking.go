package entity

import (
	"strings"
	"time"
)

// TrackableKind discriminates the two record families that share the public
// tracking trail.
type TrackableKind string

const (
	// KindShipment marks an encomienda.
	KindShipment TrackableKind = "encomienda"
	// KindFreightOrder marks an orden de flete.
	KindFreightOrder TrackableKind = "orden_flete"
)

// Tracking code prefixes. Matching is case-sensitive and exact; no
// normalization is applied to the incoming code.
const (
	ShipmentCodePrefix     = "LQ"
	FreightOrderCodePrefix = "OF-"
)

// TrackingEntry is one row of the shared tracking trail, keyed by the
// external code so shipments and freight orders use the same storage.
type TrackingEntry struct {
	ID           uint64    `json:"-"`
	TrackingCode string    `json:"codigo_tracking"`
	Status       string    `json:"estado"`
	Note         string    `json:"nota,omitempty"`
	ChangedAt    time.Time `json:"fecha_cambio"`
}

// KindForCode dispatches a tracking code to a record family by its prefix.
// The boolean is false when the code matches neither format.
func KindForCode(code string) (TrackableKind, bool) {
	switch {
	case strings.HasPrefix(code, ShipmentCodePrefix):
		return KindShipment, true
	case strings.HasPrefix(code, FreightOrderCodePrefix):
		return KindFreightOrder, true
	default:
		return "", false
	}
}
