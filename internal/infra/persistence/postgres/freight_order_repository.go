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

// freightOrderRepository implements the repository.FreightOrderRepository interface.
type freightOrderRepository struct {
	db *gorm.DB
}

// NewFreightOrderRepository is the constructor for freightOrderRepository.
func NewFreightOrderRepository(db *gorm.DB) repository.FreightOrderRepository {
	return &freightOrderRepository{
		db: db,
	}
}

// FindByNumber retrieves an active order by its external order number.
func (repo *freightOrderRepository) FindByNumber(ctx context.Context, orderNumber string) (*entity.FreightOrder, error) {
	var orderM model.FreightOrderModel

	if err := repo.db.WithContext(ctx).
		Where("order_number = ? AND active", orderNumber).
		First(&orderM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFreightOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find freight order by number")
	}

	return toFreightOrderDomain(&orderM), nil
}

// Create persists a new freight order.
func (repo *freightOrderRepository) Create(ctx context.Context, order *entity.FreightOrder) error {
	orderM := fromFreightOrderDomain(order)
	if orderM.ID == uuid.Nil {
		orderM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOrderNumberTaken
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create freight order")
	}

	// Update the entity with generated values
	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

// Save persists the order's current state.
func (repo *freightOrderRepository) Save(ctx context.Context, order *entity.FreightOrder) error {
	result := repo.db.WithContext(ctx).
		Model(&model.FreightOrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]any{
			"status":            order.Status.String(),
			"notes":             order.Notes,
			"goods_description": order.GoodsDescription,
			"active":            order.Active,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save freight order")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFreightOrderNotFound
	}

	return nil
}

// List returns active orders newest first, capped at limit when limit > 0.
func (repo *freightOrderRepository) List(ctx context.Context, limit int) ([]*entity.FreightOrder, error) {
	query := repo.db.WithContext(ctx).
		Where("active").
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var orderModels []*model.FreightOrderModel
	if err := query.Find(&orderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list freight orders")
	}

	orders := make([]*entity.FreightOrder, 0, len(orderModels))
	for _, orderM := range orderModels {
		orders = append(orders, toFreightOrderDomain(orderM))
	}

	return orders, nil
}

// toFreightOrderDomain converts the GORM model to the domain entity.
func toFreightOrderDomain(data *model.FreightOrderModel) *entity.FreightOrder {
	return &entity.FreightOrder{
		ID:          data.ID,
		OrderNumber: data.OrderNumber,
		IssuedAt:    data.IssuedAt,
		Sender: entity.FreightParty{
			Name:    data.SenderName,
			RUT:     data.SenderRUT,
			Address: data.SenderAddress,
			Phone:   data.SenderPhone,
			Email:   data.SenderEmail,
		},
		Recipient: entity.FreightParty{
			Name:    data.RecipientName,
			RUT:     data.RecipientRUT,
			Address: data.RecipientAddress,
			Phone:   data.RecipientPhone,
			Email:   data.RecipientEmail,
		},
		FreightValue:     data.FreightValue,
		InsuranceValue:   data.InsuranceValue,
		TotalValue:       data.TotalValue,
		GoodsDescription: data.GoodsDescription,
		Notes:            data.Notes,
		GenerationType:   data.GenerationType,
		Status:           entity.FreightOrderStatus(data.Status),
		Active:           data.Active,
		RegisteredBy:     data.RegisteredBy,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

// fromFreightOrderDomain converts the domain entity to the GORM model.
func fromFreightOrderDomain(data *entity.FreightOrder) *model.FreightOrderModel {
	return &model.FreightOrderModel{
		ID:               data.ID,
		OrderNumber:      data.OrderNumber,
		IssuedAt:         data.IssuedAt,
		Status:           data.Status.String(),
		SenderName:       data.Sender.Name,
		SenderRUT:        data.Sender.RUT,
		SenderAddress:    data.Sender.Address,
		SenderPhone:      data.Sender.Phone,
		SenderEmail:      data.Sender.Email,
		RecipientName:    data.Recipient.Name,
		RecipientRUT:     data.Recipient.RUT,
		RecipientAddress: data.Recipient.Address,
		RecipientPhone:   data.Recipient.Phone,
		RecipientEmail:   data.Recipient.Email,
		FreightValue:     data.FreightValue,
		InsuranceValue:   data.InsuranceValue,
		TotalValue:       data.TotalValue,
		GoodsDescription: data.GoodsDescription,
		Notes:            data.Notes,
		GenerationType:   data.GenerationType,
		Active:           data.Active,
		RegisteredBy:     data.RegisteredBy,
	}
}
