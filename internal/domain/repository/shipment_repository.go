// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// ErrShipmentNotFound is returned when a shipment cannot be resolved by id or code.
var ErrShipmentNotFound = errors.New("shipment not found")

// ShipmentFilter narrows a shipment listing. Nil fields are ignored.
type ShipmentFilter struct {
	Status       *entity.ShipmentStatus
	DriverID     *uuid.UUID
	RegisteredBy *uuid.UUID
	Limit        int
	Offset       int
}

// ShipmentStats aggregates counts for the dashboard.
type ShipmentStats struct {
	Total    int64                           `json:"total"`
	ByStatus map[entity.ShipmentStatus]int64 `json:"-"`
}

// ShipmentRepository defines the standard operations for shipment persistence.
type ShipmentRepository interface {
	// FindByID retrieves a single shipment, including its full history.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error)

	// FindByCode retrieves a shipment by its external tracking code.
	FindByCode(ctx context.Context, code string) (*entity.Shipment, error)

	// Create persists a new shipment together with its initial history entry.
	Create(ctx context.Context, s *entity.Shipment) error

	// Save persists the shipment's current state and any history entries
	// appended since it was loaded, as a single storage operation.
	Save(ctx context.Context, s *entity.Shipment) error

	// List returns a page of shipments matching the filter, newest first,
	// along with the total count for the filter.
	List(ctx context.Context, filter ShipmentFilter) ([]*entity.Shipment, int64, error)

	// Stats returns the total count and per-status counts.
	Stats(ctx context.Context) (*ShipmentStats, error)
}
