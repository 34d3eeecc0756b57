package entity

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// FreightOrderStatus is the lifecycle state of a freight order. Freight
// orders follow their own vocabulary, distinct from the shipment enum.
type FreightOrderStatus string

const (
	// FreightPending is the initial state of an order.
	FreightPending FreightOrderStatus = "pendiente"
	// FreightConfirmed means the order was accepted for transport.
	FreightConfirmed FreightOrderStatus = "confirmada"
	// FreightInTransit means the cargo is moving.
	FreightInTransit FreightOrderStatus = "en_transito"
	// FreightDelivered means the cargo reached the recipient.
	FreightDelivered FreightOrderStatus = "entregada"
	// FreightCancelled means the order was voided.
	FreightCancelled FreightOrderStatus = "cancelada"
)

// String returns the wire value of the status.
func (s FreightOrderStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a member of the freight order enum.
func (s FreightOrderStatus) IsValid() bool {
	switch s {
	case FreightPending, FreightConfirmed, FreightInTransit, FreightDelivered, FreightCancelled:
		return true
	default:
		return false
	}
}

// FreightParty is one end of a freight order. Unlike shipment parties, the
// RUT is mandatory for both ends of a freight contract.
type FreightParty struct {
	Name    string `json:"nombre"`
	RUT     string `json:"rut"`
	Address string `json:"direccion"`
	Phone   string `json:"celular,omitempty"`
	Email   string `json:"email,omitempty"`
}

// FreightOrder is an "orden de flete": a heavier-weight shipment record with
// declared freight and insurance values. It is a separate record type from
// Shipment, not a subtype; the two only share the tracking trail mechanism.
type FreightOrder struct {
	ID               uuid.UUID          `json:"id"`
	OrderNumber      string             `json:"numero_orden"`
	IssuedAt         time.Time          `json:"fecha_emision"`
	Sender           FreightParty       `json:"remitente"`
	Recipient        FreightParty       `json:"destinatario"`
	FreightValue     float64            `json:"valor_flete"`
	InsuranceValue   float64            `json:"valor_seguro"`
	TotalValue       float64            `json:"valor_total"`
	GoodsDescription string             `json:"descripcion_mercancia,omitempty"`
	Notes            string             `json:"observaciones,omitempty"`
	GenerationType   string             `json:"tipo_generacion"`
	Status           FreightOrderStatus `json:"estado"`
	Active           bool               `json:"activo"`
	RegisteredBy     uuid.UUID          `json:"usuario_registro"`
	CreatedAt        time.Time          `json:"-"`
	UpdatedAt        time.Time          `json:"-"`
}

// NewFreightOrder creates a pending order. TotalValue is computed once at
// creation: freight plus insurance.
func NewFreightOrder(orderNumber string, sender, recipient FreightParty, freightValue, insuranceValue float64, registeredBy uuid.UUID) *FreightOrder {
	return &FreightOrder{
		OrderNumber:    orderNumber,
		IssuedAt:       time.Now(),
		Sender:         sender,
		Recipient:      recipient,
		FreightValue:   freightValue,
		InsuranceValue: insuranceValue,
		TotalValue:     freightValue + insuranceValue,
		GenerationType: "manual",
		Status:         FreightPending,
		Active:         true,
		RegisteredBy:   registeredBy,
	}
}

// NewFreightOrderNumber generates an order number in the OF-YYYYMMDD-XXXX
// format. The storage layer's unique index catches the rare collision.
func NewFreightOrderNumber(issuedAt time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	seq := int64(time.Now().UnixNano() % 10000)
	if err == nil {
		seq = n.Int64()
	}

	return fmt.Sprintf("OF-%s-%04d", issuedAt.Format("20060102"), seq)
}
