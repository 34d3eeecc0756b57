package postgres

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/persistence/model"
)

// trackingRepository implements the repository.TrackingRepository interface.
type trackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository is the constructor for trackingRepository.
func NewTrackingRepository(db *gorm.DB) repository.TrackingRepository {
	return &trackingRepository{
		db: db,
	}
}

// Append adds one entry to a code's trail.
func (repo *trackingRepository) Append(ctx context.Context, entry *entity.TrackingEntry) error {
	entryM := &model.TrackingEntryModel{
		TrackingCode: entry.TrackingCode,
		Status:       entry.Status,
		Note:         entry.Note,
		ChangedAt:    entry.ChangedAt,
	}

	if err := repo.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append tracking entry")
	}

	entry.ID = entryM.ID

	return nil
}

// FindByCode returns a code's trail ordered by change time ascending.
func (repo *trackingRepository) FindByCode(ctx context.Context, code string) ([]*entity.TrackingEntry, error) {
	var entryModels []*model.TrackingEntryModel

	if err := repo.db.WithContext(ctx).
		Where("tracking_code = ?", code).
		Order("changed_at ASC, id ASC").
		Find(&entryModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to load tracking trail")
	}

	entries := make([]*entity.TrackingEntry, 0, len(entryModels))
	for _, entryM := range entryModels {
		entries = append(entries, &entity.TrackingEntry{
			ID:           entryM.ID,
			TrackingCode: entryM.TrackingCode,
			Status:       entryM.Status,
			Note:         entryM.Note,
			ChangedAt:    entryM.ChangedAt,
		})
	}

	return entries, nil
}
