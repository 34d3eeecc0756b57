package repository

import (
	"context"
	"errors"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// ErrFreightOrderNotFound is returned when an order number cannot be resolved.
var ErrFreightOrderNotFound = errors.New("freight order not found")

// FreightOrderRepository defines the operations for freight order persistence.
// Only active orders are visible through listing and lookup.
type FreightOrderRepository interface {
	// FindByNumber retrieves an active order by its external order number.
	FindByNumber(ctx context.Context, orderNumber string) (*entity.FreightOrder, error)

	// Create persists a new freight order.
	Create(ctx context.Context, order *entity.FreightOrder) error

	// Save persists the order's current state.
	Save(ctx context.Context, order *entity.FreightOrder) error

	// List returns active orders newest first, capped at limit when limit > 0.
	List(ctx context.Context, limit int) ([]*entity.FreightOrder, error)
}
