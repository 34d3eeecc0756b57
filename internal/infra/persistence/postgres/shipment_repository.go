package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/infra/persistence/model"
)

// shipmentRepository implements the repository.ShipmentRepository interface.
type shipmentRepository struct {
	db *gorm.DB
}

// NewShipmentRepository is the constructor for shipmentRepository.
func NewShipmentRepository(db *gorm.DB) repository.ShipmentRepository {
	return &shipmentRepository{
		db: db,
	}
}

// FindByID retrieves a single shipment including its full ordered history.
func (repo *shipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Shipment, error) {
	return repo.findOne(ctx, "id = ?", id)
}

// FindByCode retrieves a shipment by its external tracking code.
func (repo *shipmentRepository) FindByCode(ctx context.Context, code string) (*entity.Shipment, error) {
	return repo.findOne(ctx, "code = ?", code)
}

func (repo *shipmentRepository) findOne(ctx context.Context, query string, arg any) (*entity.Shipment, error) {
	var shipmentM model.ShipmentModel

	if err := repo.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC, id ASC")
		}).
		Where(query, arg).
		First(&shipmentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShipmentNotFound
		}

		return nil, errors.Wrap(err, "failed to find shipment")
	}

	return toShipmentDomain(&shipmentM), nil
}

// Create persists a new shipment together with its initial history entries.
func (repo *shipmentRepository) Create(ctx context.Context, s *entity.Shipment) error {
	shipmentM := fromShipmentDomain(s)
	if shipmentM.ID == uuid.Nil {
		shipmentM.ID = uuid.New()
	}
	for i := range s.History {
		shipmentM.History = append(shipmentM.History, fromHistoryDomain(shipmentM.ID, &s.History[i]))
	}

	if err := repo.db.WithContext(ctx).Create(shipmentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUnexpected.WrapMessage("tracking code collision")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create shipment")
	}

	// Update the entity with generated values
	s.ID = shipmentM.ID
	s.CreatedAt = shipmentM.CreatedAt
	s.UpdatedAt = shipmentM.UpdatedAt

	return nil
}

// Save persists the shipment's current state and appends any history entries
// added since it was loaded. History rows are insert-only; existing rows are
// counted, never rewritten.
func (repo *shipmentRepository) Save(ctx context.Context, s *entity.Shipment) error {
	shipmentM := fromShipmentDomain(s)

	result := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"status":               shipmentM.Status,
			"driver_id":            shipmentM.DriverID,
			"driver_name":          shipmentM.DriverName,
			"delivered_at":         shipmentM.DeliveredAt,
			"delivery_received_by": shipmentM.DeliveryReceivedBy,
			"delivery_rut":         shipmentM.DeliveryRUT,
			"delivery_notes":       shipmentM.DeliveryNotes,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save shipment")
	}
	if result.RowsAffected == 0 {
		return repository.ErrShipmentNotFound
	}

	var stored int64
	if err := repo.db.WithContext(ctx).
		Model(&model.ShipmentHistoryModel{}).
		Where("shipment_id = ?", s.ID).
		Count(&stored).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to count shipment history")
	}

	if int(stored) >= len(s.History) {
		return nil
	}

	fresh := make([]model.ShipmentHistoryModel, 0, len(s.History)-int(stored))
	for i := int(stored); i < len(s.History); i++ {
		fresh = append(fresh, fromHistoryDomain(s.ID, &s.History[i]))
	}

	if err := repo.db.WithContext(ctx).Create(&fresh).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append shipment history")
	}

	return nil
}

// List returns a page of shipments matching the filter, newest first, along
// with the total count for the filter.
func (repo *shipmentRepository) List(ctx context.Context, filter repository.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	base := repo.db.WithContext(ctx).Model(&model.ShipmentModel{})
	if filter.Status != nil {
		base = base.Where("status = ?", filter.Status.String())
	}
	if filter.DriverID != nil {
		base = base.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.RegisteredBy != nil {
		base = base.Where("registered_by = ?", *filter.RegisteredBy)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count shipments")
	}

	query := base.
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC, id ASC")
		}).
		Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var shipmentModels []*model.ShipmentModel
	if err := query.Find(&shipmentModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list shipments")
	}

	shipments := make([]*entity.Shipment, 0, len(shipmentModels))
	for _, shipmentM := range shipmentModels {
		shipments = append(shipments, toShipmentDomain(shipmentM))
	}

	return shipments, total, nil
}

// Stats returns the total count and per-status counts.
func (repo *shipmentRepository) Stats(ctx context.Context) (*repository.ShipmentStats, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := repo.db.WithContext(ctx).
		Model(&model.ShipmentModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate shipment stats")
	}

	stats := &repository.ShipmentStats{ByStatus: make(map[entity.ShipmentStatus]int64, len(rows))}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus[entity.ShipmentStatus(row.Status)] = row.Count
	}

	return stats, nil
}

// toShipmentDomain converts the GORM model to the domain entity.
func toShipmentDomain(data *model.ShipmentModel) *entity.Shipment {
	s := &entity.Shipment{
		ID:   data.ID,
		Code: data.Code,
		Sender: entity.Party{
			Name:    data.SenderName,
			Email:   data.SenderEmail,
			Phone:   data.SenderPhone,
			Address: data.SenderAddress,
			RUT:     data.SenderRUT,
		},
		Recipient: entity.Party{
			Name:    data.RecipientName,
			Email:   data.RecipientEmail,
			Phone:   data.RecipientPhone,
			Address: data.RecipientAddress,
			City:    data.RecipientCity,
			RUT:     data.RecipientRUT,
		},
		Status:        entity.ShipmentStatus(data.Status),
		DeclaredValue: data.DeclaredValue,
		DriverID:      data.DriverID,
		DriverName:    data.DriverName,
		RegisteredBy:  data.RegisteredBy,
		CreatedAt:     data.CreatedAt,
		UpdatedAt:     data.UpdatedAt,
	}

	if data.DeliveredAt != nil {
		s.Delivery = &entity.DeliveryRecord{
			Date:       *data.DeliveredAt,
			ReceivedBy: data.DeliveryReceivedBy,
			RUT:        data.DeliveryRUT,
			Notes:      data.DeliveryNotes,
		}
	}

	s.History = make([]entity.StatusChange, 0, len(data.History))
	for i := range data.History {
		h := &data.History[i]
		s.History = append(s.History, entity.StatusChange{
			Status:    entity.ShipmentStatus(h.Status),
			Note:      h.Note,
			Actor:     h.Actor,
			ChangedAt: h.ChangedAt,
		})
	}

	return s
}

// fromShipmentDomain converts the domain entity to the GORM model. History is
// handled separately by Create and Save.
func fromShipmentDomain(data *entity.Shipment) *model.ShipmentModel {
	m := &model.ShipmentModel{
		ID:               data.ID,
		Code:             data.Code,
		Status:           data.Status.String(),
		DeclaredValue:    data.DeclaredValue,
		SenderName:       data.Sender.Name,
		SenderEmail:      data.Sender.Email,
		SenderPhone:      data.Sender.Phone,
		SenderAddress:    data.Sender.Address,
		SenderRUT:        data.Sender.RUT,
		RecipientName:    data.Recipient.Name,
		RecipientEmail:   data.Recipient.Email,
		RecipientPhone:   data.Recipient.Phone,
		RecipientAddress: data.Recipient.Address,
		RecipientCity:    data.Recipient.City,
		RecipientRUT:     data.Recipient.RUT,
		DriverID:         data.DriverID,
		DriverName:       data.DriverName,
		RegisteredBy:     data.RegisteredBy,
	}

	if data.Delivery != nil {
		date := data.Delivery.Date
		m.DeliveredAt = &date
		m.DeliveryReceivedBy = data.Delivery.ReceivedBy
		m.DeliveryRUT = data.Delivery.RUT
		m.DeliveryNotes = data.Delivery.Notes
	}

	return m
}

func fromHistoryDomain(shipmentID uuid.UUID, data *entity.StatusChange) model.ShipmentHistoryModel {
	return model.ShipmentHistoryModel{
		ShipmentID: shipmentID,
		Status:     data.Status.String(),
		Note:       data.Note,
		Actor:      data.Actor,
		ChangedAt:  data.ChangedAt,
	}
}
