package usecase

import "context"

// SettingsUsecase exposes the runtime key/value configuration.
type SettingsUsecase interface {
	// All returns every configuration pair. Public.
	All(ctx context.Context) (map[string]string, error)

	// Update upserts the given pairs, recording the actor. Admin only.
	Update(ctx context.Context, actor Actor, values map[string]string) error
}
