package repository

import (
	"context"

	"github.com/google/uuid"
)

// SettingsRepository is a key/value store for runtime configuration exposed
// through the configuration endpoints.
type SettingsRepository interface {
	// All returns every key/value pair.
	All(ctx context.Context) (map[string]string, error)

	// Upsert writes one pair, recording who changed it.
	Upsert(ctx context.Context, key, value string, updatedBy uuid.UUID) error
}
