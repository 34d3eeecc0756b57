package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/errors"
)

// ShipmentStatus is the lifecycle state of a shipment. The values are the
// wire values persisted and exposed publicly, kept in Spanish because the
// tracking codes and statuses are customer-facing.
type ShipmentStatus string

const (
	// ShipmentRegistered is the initial state of every shipment.
	ShipmentRegistered ShipmentStatus = "registrada"
	// ShipmentInTransit means the shipment left the origin branch.
	ShipmentInTransit ShipmentStatus = "en_transito"
	// ShipmentOutForDelivery means a driver is on the last leg.
	ShipmentOutForDelivery ShipmentStatus = "en_reparto"
	// ShipmentDelivered means the recipient (or someone on their behalf) signed for it.
	ShipmentDelivered ShipmentStatus = "entregada"
	// ShipmentReturned means the shipment went back to the sender.
	ShipmentReturned ShipmentStatus = "devuelta"
)

// String returns the wire value of the status.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a member of the shipment enum.
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentRegistered, ShipmentInTransit, ShipmentOutForDelivery, ShipmentDelivered, ShipmentReturned:
		return true
	default:
		return false
	}
}

// Party is one end of a shipment: the sender or the recipient.
// Email and phone are optional; the RUT is the Chilean national ID.
type Party struct {
	Name    string `json:"nombre"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion"`
	City    string `json:"ciudad,omitempty"`
	RUT     string `json:"rut,omitempty"`
}

// DeliveryRecord captures proof of delivery. It is written exactly when the
// shipment transitions into ShipmentDelivered, never before.
type DeliveryRecord struct {
	Date       time.Time `json:"fecha"`
	ReceivedBy string    `json:"persona_recibe"`
	RUT        string    `json:"rut,omitempty"`
	Notes      string    `json:"observaciones,omitempty"`
}

// StatusChange is one entry of a shipment's append-only audit trail.
// Entries are never mutated or reordered after being appended.
type StatusChange struct {
	Status    ShipmentStatus `json:"estado"`
	Note      string         `json:"nota"`
	Actor     string         `json:"usuario"`
	ChangedAt time.Time      `json:"fecha"`
}

// Shipment is an "encomienda": a single parcel tracked end-to-end from
// registration to delivery. The shipment exclusively owns its history; the
// driver reference is a weak association to a User with RoleDriver.
type Shipment struct {
	ID            uuid.UUID       `json:"id"`
	Code          string          `json:"codigo"`
	Sender        Party           `json:"remitente"`
	Recipient     Party           `json:"destinatario"`
	Status        ShipmentStatus  `json:"estado"`
	DeclaredValue float64         `json:"valor"`
	DriverID      *uuid.UUID      `json:"chofer_id,omitempty"`
	DriverName    string          `json:"chofer_nombre,omitempty"`
	Delivery      *DeliveryRecord `json:"entrega,omitempty"`
	History       []StatusChange  `json:"historial"`
	RegisteredBy  uuid.UUID       `json:"usuario_registro"`
	CreatedAt     time.Time       `json:"fecha_creacion"`
	UpdatedAt     time.Time       `json:"-"`
}

// ErrInvalidTransition is returned when the transition policy rejects a
// status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// NewShipment registers a new shipment in ShipmentRegistered with its first
// history entry. Field-level validation happens at the usecase boundary; this
// constructor only establishes the invariants the rest of the lifecycle
// relies on: len(History) >= 1 and History.last.Status == Status.
func NewShipment(code string, sender, recipient Party, declaredValue float64, registeredBy uuid.UUID, actor string) *Shipment {
	now := time.Now()

	return &Shipment{
		Code:          code,
		Sender:        sender,
		Recipient:     recipient,
		Status:        ShipmentRegistered,
		DeclaredValue: declaredValue,
		RegisteredBy:  registeredBy,
		CreatedAt:     now,
		History: []StatusChange{{
			Status:    ShipmentRegistered,
			Note:      "Encomienda creada",
			Actor:     actor,
			ChangedAt: now,
		}},
	}
}

// ApplyStatus moves the shipment into newStatus and appends the matching
// history entry. The transition policy decides which moves are legal.
func (s *Shipment) ApplyStatus(newStatus ShipmentStatus, policy TransitionPolicy, actor string) error {
	if !newStatus.IsValid() {
		return errors.Wrapf(ErrInvalidTransition, "%q is not a shipment status", newStatus)
	}
	if !policy.CanTransition(s.Status, newStatus) {
		return errors.Wrapf(ErrInvalidTransition, "cannot move from %s to %s", s.Status, newStatus)
	}

	s.Status = newStatus
	s.appendHistory(newStatus, fmt.Sprintf("Estado cambió a %s", newStatus), actor)

	return nil
}

// AssignDriver links the shipment to a driver and moves it into transit.
// The caller guarantees that driver actually has RoleDriver.
func (s *Shipment) AssignDriver(driver *User, policy TransitionPolicy, actor string) error {
	if !policy.CanTransition(s.Status, ShipmentInTransit) {
		return errors.Wrapf(ErrInvalidTransition, "cannot assign driver while %s", s.Status)
	}

	id := driver.ID
	s.DriverID = &id
	s.DriverName = driver.Name
	s.Status = ShipmentInTransit
	s.appendHistory(ShipmentInTransit, fmt.Sprintf("Asignada a chofer %s", driver.Name), actor)

	return nil
}

// RecordDelivery moves the shipment into ShipmentDelivered and stores the
// proof of delivery. Calling it a second time overwrites the record fields
// but still appends a fresh history entry, so the audit trail keeps both
// events.
func (s *Shipment) RecordDelivery(receivedBy, rut, notes string, policy TransitionPolicy, actor string) error {
	if !policy.CanTransition(s.Status, ShipmentDelivered) {
		return errors.Wrapf(ErrInvalidTransition, "cannot deliver while %s", s.Status)
	}

	s.Status = ShipmentDelivered
	s.Delivery = &DeliveryRecord{
		Date:       time.Now(),
		ReceivedBy: receivedBy,
		RUT:        rut,
		Notes:      notes,
	}
	s.appendHistory(ShipmentDelivered, fmt.Sprintf("Entregada a %s", receivedBy), actor)

	return nil
}

// LastChange returns the most recent history entry. Every shipment carries at
// least the registration entry.
func (s *Shipment) LastChange() StatusChange {
	return s.History[len(s.History)-1]
}

func (s *Shipment) appendHistory(status ShipmentStatus, note, actor string) {
	s.History = append(s.History, StatusChange{
		Status:    status,
		Note:      note,
		Actor:     actor,
		ChangedAt: time.Now(),
	})
}

const shipmentCodeDigits = 9

// NewShipmentCode generates an external tracking code: "LQ" followed by nine
// random digits. Uniqueness is enforced by the storage layer's unique index;
// collisions are retried by the caller.
func NewShipmentCode() string {
	digits := make([]byte, shipmentCodeDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a timestamp digit rather than panicking.
			digits[i] = byte('0' + time.Now().UnixNano()%10)

			continue
		}
		digits[i] = byte('0' + n.Int64())
	}

	return "LQ" + string(digits)
}
