package impl

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	domainerrors "github.com/PaintToxic22/sistema-rastreo/internal/domain/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

type freightEnv struct {
	factory  *memFactory
	notifier *fakeNotifier
	service  usecase.FreightUsecase
}

func newFreightEnv() *freightEnv {
	factory := newMemFactory()
	notifier := &fakeNotifier{}
	service := NewFreightService(FreightServiceParams{
		TxManager: &memTxManager{factory: factory},
		OrderRepo: factory.freightRepo,
		Notifier:  notifier,
		Logger:    discardLogger(),
	})

	return &freightEnv{factory: factory, notifier: notifier, service: service}
}

func validFreightInput() *usecase.CreateFreightOrderInput {
	return &usecase.CreateFreightOrderInput{
		SenderName:     "Agro Sur Ltda",
		SenderRUT:      "76.123.456-7",
		RecipientName:  "Luis Rojas",
		RecipientRUT:   "12.345.678-9",
		RecipientEmail: "luis@example.com",
		FreightValue:   80000,
		InsuranceValue: 8000,
	}
}

func TestFreightServiceCreateGeneratesOrderNumber(t *testing.T) {
	t.Parallel()

	env := newFreightEnv()
	actor := operatorActor()

	order, err := env.service.Create(context.Background(), actor, validFreightInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderNumber, "OF-"))
	assert.Equal(t, entity.FreightPending, order.Status)
	assert.Equal(t, "automatica", order.GenerationType)
	assert.InDelta(t, 88000, order.TotalValue, 0.001)
	assert.True(t, order.Active)

	trail, err := env.factory.trackingRepo.FindByCode(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, "pendiente", trail[0].Status)

	require.Len(t, env.notifier.registered, 1)
	assert.Equal(t, entity.KindFreightOrder, env.notifier.registered[0].kind)
}

func TestFreightServiceCreateKeepsGivenOrderNumber(t *testing.T) {
	t.Parallel()

	env := newFreightEnv()
	input := validFreightInput()
	input.OrderNumber = "OF-20240115-0042"

	order, err := env.service.Create(context.Background(), operatorActor(), input)
	require.NoError(t, err)
	assert.Equal(t, "OF-20240115-0042", order.OrderNumber)
	assert.Equal(t, "manual", order.GenerationType)
}

func TestFreightServiceCreateValidation(t *testing.T) {
	t.Parallel()

	env := newFreightEnv()

	input := validFreightInput()
	input.SenderRUT = ""
	_, err := env.service.Create(context.Background(), operatorActor(), input)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	input = validFreightInput()
	input.FreightValue = -1
	_, err = env.service.Create(context.Background(), operatorActor(), input)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	customer := usecase.Actor{ID: uuid.New(), Email: "c@example.com", Role: entity.RoleCustomer}
	_, err = env.service.Create(context.Background(), customer, validFreightInput())
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestFreightServiceChangeStatus(t *testing.T) {
	t.Parallel()

	env := newFreightEnv()
	actor := operatorActor()
	order, err := env.service.Create(context.Background(), actor, validFreightInput())
	require.NoError(t, err)

	updated, err := env.service.ChangeStatus(context.Background(), actor, order.OrderNumber,
		&usecase.ChangeFreightStatusInput{Status: "confirmada"})
	require.NoError(t, err)
	assert.Equal(t, entity.FreightConfirmed, updated.Status)

	trail, err := env.factory.trackingRepo.FindByCode(context.Background(), order.OrderNumber)
	require.NoError(t, err)
	assert.Len(t, trail, 2)

	_, err = env.service.ChangeStatus(context.Background(), actor, order.OrderNumber,
		&usecase.ChangeFreightStatusInput{Status: "extraviada"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)

	_, err = env.service.ChangeStatus(context.Background(), actor, "OF-20990101-0001",
		&usecase.ChangeFreightStatusInput{Status: "confirmada"})
	assert.ErrorIs(t, err, domainerrors.ErrFreightOrderNotFound)

	driver := usecase.Actor{ID: uuid.New(), Email: "pedro@lonqui.cl", Role: entity.RoleDriver}
	_, err = env.service.ChangeStatus(context.Background(), driver, order.OrderNumber,
		&usecase.ChangeFreightStatusInput{Status: "en_transito"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestFreightServiceList(t *testing.T) {
	t.Parallel()

	env := newFreightEnv()
	actor := operatorActor()

	for range 3 {
		_, err := env.service.Create(context.Background(), actor, validFreightInput())
		require.NoError(t, err)
	}

	out, err := env.service.List(context.Background(), actor, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, out.Count)

	limited, err := env.service.List(context.Background(), actor, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, limited.Count)
}
