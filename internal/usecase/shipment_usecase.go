package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// CreateShipmentInput carries the registration form. Field names follow the
// wire contract of the existing frontend.
type CreateShipmentInput struct {
	SenderName       string  `json:"remitente_nombre" validate:"required"`
	SenderEmail      string  `json:"remitente_email"`
	SenderPhone      string  `json:"remitente_telefono"`
	SenderAddress    string  `json:"remitente_direccion"`
	SenderRUT        string  `json:"remitente_rut"`
	RecipientName    string  `json:"destinatario_nombre" validate:"required"`
	RecipientEmail   string  `json:"destinatario_email"`
	RecipientPhone   string  `json:"destinatario_telefono"`
	RecipientAddress string  `json:"destinatario_direccion" validate:"required"`
	RecipientCity    string  `json:"destinatario_ciudad"`
	RecipientRUT     string  `json:"destinatario_rut"`
	DeclaredValue    float64 `json:"valor_declarado" validate:"gte=0"`
}

// ChangeStatusInput carries the target status for a transition.
type ChangeStatusInput struct {
	Status string `json:"estado" validate:"required"`
}

// RecordDeliveryInput carries the proof of delivery form.
type RecordDeliveryInput struct {
	ReceivedBy string `json:"persona_recibe" validate:"required"`
	RUT        string `json:"rut"`
	Notes      string `json:"observaciones"`
}

// AssignDriverInput carries the driver to link.
type AssignDriverInput struct {
	DriverID string `json:"chofer_id" validate:"required,uuid"`
}

// ListShipmentsInput narrows and pages the listing.
type ListShipmentsInput struct {
	Status string
	Limit  int
	Skip   int
}

// ListShipmentsOutput is one page of shipments plus the filter's total.
type ListShipmentsOutput struct {
	Items []*entity.Shipment `json:"data"`
	Total int64              `json:"total"`
	Limit int                `json:"limit"`
	Skip  int                `json:"skip"`
}

// ShipmentStatsOutput aggregates dashboard counts.
type ShipmentStatsOutput struct {
	Total      int64 `json:"total"`
	Registered int64 `json:"registradas"`
	InTransit  int64 `json:"en_transito"`
	Delivered  int64 `json:"entregadas"`
}

// ShipmentUsecase owns the shipment lifecycle: creation, driver assignment,
// status transitions, delivery confirmation and role-scoped queries.
type ShipmentUsecase interface {
	// Create registers a new shipment. Restricted to operators and admins.
	Create(ctx context.Context, actor Actor, input *CreateShipmentInput) (*entity.Shipment, error)

	// GetByID loads one shipment, applying the caller's ownership scope.
	GetByID(ctx context.Context, actor Actor, id uuid.UUID) (*entity.Shipment, error)

	// GetByCode is the public lookup by tracking code.
	GetByCode(ctx context.Context, code string) (*entity.Shipment, error)

	// ChangeStatus transitions a shipment and appends to its history.
	ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID, input *ChangeStatusInput) (*entity.Shipment, error)

	// AssignDriver links a driver and moves the shipment into transit.
	AssignDriver(ctx context.Context, actor Actor, id uuid.UUID, input *AssignDriverInput) (*entity.Shipment, error)

	// RecordDelivery writes the proof of delivery. Drivers only.
	RecordDelivery(ctx context.Context, actor Actor, id uuid.UUID, input *RecordDeliveryInput) (*entity.Shipment, error)

	// List returns the shipments visible to the caller, newest first.
	List(ctx context.Context, actor Actor, input *ListShipmentsInput) (*ListShipmentsOutput, error)

	// Stats returns total and per-status counts.
	Stats(ctx context.Context, actor Actor) (*ShipmentStatsOutput, error)
}
