package repository

import (
	"context"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
)

// TrackingRepository stores the public tracking trail shared by shipments and
// freight orders, keyed by the external code. Entries are append-only.
type TrackingRepository interface {
	// Append adds one entry to a code's trail.
	Append(ctx context.Context, entry *entity.TrackingEntry) error

	// FindByCode returns a code's trail ordered by change time ascending.
	FindByCode(ctx context.Context, code string) ([]*entity.TrackingEntry, error)
}
