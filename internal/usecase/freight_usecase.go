package usecase

import (
	"context"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// CreateFreightOrderInput carries the freight order form. The order number is
// generated when the client leaves it empty.
type CreateFreightOrderInput struct {
	OrderNumber      string  `json:"numero_orden"`
	SenderName       string  `json:"remitente_nombre" validate:"required"`
	SenderRUT        string  `json:"remitente_rut" validate:"required"`
	SenderAddress    string  `json:"remitente_direccion"`
	SenderPhone      string  `json:"remitente_celular"`
	SenderEmail      string  `json:"remitente_email"`
	RecipientName    string  `json:"destinatario_nombre" validate:"required"`
	RecipientRUT     string  `json:"destinatario_rut" validate:"required"`
	RecipientAddress string  `json:"destinatario_direccion"`
	RecipientPhone   string  `json:"destinatario_celular"`
	RecipientEmail   string  `json:"destinatario_email"`
	FreightValue     float64 `json:"valor_flete" validate:"gte=0"`
	InsuranceValue   float64 `json:"valor_seguro" validate:"gte=0"`
	GoodsDescription string  `json:"descripcion_mercancia"`
	Notes            string  `json:"observaciones"`
	GenerationType   string  `json:"tipo_generacion"`
}

// ChangeFreightStatusInput carries the target status for an order.
type ChangeFreightStatusInput struct {
	Status string `json:"estado"`
}

// ListFreightOrdersOutput is the freight listing.
type ListFreightOrdersOutput struct {
	Items []*entity.FreightOrder `json:"data"`
	Count int                    `json:"count"`
}

// FreightUsecase owns the freight order family.
type FreightUsecase interface {
	// Create registers a new order and opens its tracking trail.
	Create(ctx context.Context, actor Actor, input *CreateFreightOrderInput) (*entity.FreightOrder, error)

	// List returns active orders, newest first.
	List(ctx context.Context, actor Actor, limit int) (*ListFreightOrdersOutput, error)

	// ChangeStatus transitions an order and appends to its trail.
	// Restricted to operators and admins.
	ChangeStatus(ctx context.Context, actor Actor, orderNumber string, input *ChangeFreightStatusInput) (*entity.FreightOrder, error)
}
