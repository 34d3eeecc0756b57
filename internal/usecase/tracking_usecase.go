package usecase

import (
	"context"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// TrackingOutput is the public lookup result. Data is either a *Shipment or
// a *FreightOrder; Kind tells the client which, since the two families share
// the response shape but not the schema.
type TrackingOutput struct {
	Kind    entity.TrackableKind    `json:"tipo"`
	Data    any                     `json:"data"`
	History []*entity.TrackingEntry `json:"historial"`
}

// TrackingUsecase resolves an opaque tracking code to a record plus its full
// ordered trail. Public, unauthenticated.
type TrackingUsecase interface {
	// Resolve dispatches by code prefix: LQ to shipments, OF- to freight orders.
	Resolve(ctx context.Context, code string) (*TrackingOutput, error)
}
