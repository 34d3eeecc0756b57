package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/persistence/model"
)

// settingsRepository implements the repository.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

// All returns every key/value pair.
func (repo *settingsRepository) All(ctx context.Context) (map[string]string, error) {
	var settingModels []*model.SettingModel

	if err := repo.db.WithContext(ctx).Find(&settingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load settings")
	}

	values := make(map[string]string, len(settingModels))
	for _, settingM := range settingModels {
		values[settingM.Key] = settingM.Value
	}

	return values, nil
}

// Upsert writes one pair, recording who changed it.
func (repo *settingsRepository) Upsert(ctx context.Context, key, value string, updatedBy uuid.UUID) error {
	settingM := &model.SettingModel{
		Key:       key,
		Value:     value,
		UpdatedBy: updatedBy,
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		}).
		Create(settingM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert setting")
	}

	return nil
}
