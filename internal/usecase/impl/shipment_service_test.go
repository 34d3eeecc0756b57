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
	"github.com/PaintToxic22/sistema-rastreo/internal/errors"
	"github.com/PaintToxic22/sistema-rastreo/internal/usecase"
)

type shipmentEnv struct {
	factory  *memFactory
	notifier *fakeNotifier
	service  usecase.ShipmentUsecase
}

func newShipmentEnv() *shipmentEnv {
	factory := newMemFactory()
	notifier := &fakeNotifier{}
	service := NewShipmentService(ShipmentServiceParams{
		TxManager:    &memTxManager{factory: factory},
		ShipmentRepo: factory.shipmentRepo,
		Transitions:  entity.PermissiveTransitions(),
		Notifier:     notifier,
		Logger:       discardLogger(),
	})

	return &shipmentEnv{factory: factory, notifier: notifier, service: service}
}

func operatorActor() usecase.Actor {
	return usecase.Actor{ID: uuid.New(), Email: "operador@lonqui.cl", Role: entity.RoleOperator}
}

func validCreateInput() *usecase.CreateShipmentInput {
	return &usecase.CreateShipmentInput{
		SenderName:       "Ana Soto",
		SenderEmail:      "ana@example.com",
		RecipientName:    "Luis Rojas",
		RecipientEmail:   "luis@example.com",
		RecipientAddress: "Av. Siempre Viva 742",
		RecipientCity:    "Lonquimay",
		DeclaredValue:    15000,
	}
}

func TestShipmentServiceCreate(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()

	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(shipment.Code, "LQ"))
	assert.Len(t, shipment.Code, 11)
	assert.Equal(t, entity.ShipmentRegistered, shipment.Status)
	assert.Equal(t, actor.ID, shipment.RegisteredBy)
	require.Len(t, shipment.History, 1)
	assert.Equal(t, "Encomienda creada", shipment.History[0].Note)

	trail, err := env.factory.trackingRepo.FindByCode(context.Background(), shipment.Code)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.ShipmentRegistered.String(), trail[0].Status)

	require.Len(t, env.notifier.registered, 2)
	assert.Equal(t, "luis@example.com", env.notifier.registered[0].to)
	assert.Equal(t, "ana@example.com", env.notifier.registered[1].to)
	assert.Equal(t, entity.KindShipment, env.notifier.registered[0].kind)
}

func TestShipmentServiceCreateNotifiesOnlyPartiesWithEmail(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()

	input := validCreateInput()
	input.SenderEmail = ""
	_, err := env.service.Create(context.Background(), operatorActor(), input)
	require.NoError(t, err)

	require.Len(t, env.notifier.registered, 1)
	assert.Equal(t, "luis@example.com", env.notifier.registered[0].to)

	input = validCreateInput()
	input.SenderEmail = input.RecipientEmail
	_, err = env.service.Create(context.Background(), operatorActor(), input)
	require.NoError(t, err)
	assert.Len(t, env.notifier.registered, 2)
}

func TestShipmentServiceCreateValidation(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()

	input := validCreateInput()
	input.RecipientAddress = ""
	_, err := env.service.Create(context.Background(), operatorActor(), input)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	input = validCreateInput()
	input.DeclaredValue = -1
	_, err = env.service.Create(context.Background(), operatorActor(), input)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestShipmentServiceCreateForbiddenRoles(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()

	for _, role := range []entity.Role{entity.RoleDriver, entity.RoleCustomer} {
		actor := usecase.Actor{ID: uuid.New(), Email: "x@lonqui.cl", Role: role}
		_, err := env.service.Create(context.Background(), actor, validCreateInput())
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied, "role %s", role)
	}
}

func TestShipmentServiceChangeStatusAppendsHistory(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()
	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)

	steps := []string{"en_transito", "en_reparto", "entregada"}
	for _, status := range steps {
		shipment, err = env.service.ChangeStatus(context.Background(), actor, shipment.ID, &usecase.ChangeStatusInput{Status: status})
		require.NoError(t, err)
		assert.Equal(t, entity.ShipmentStatus(status), shipment.Status)
	}

	require.Len(t, shipment.History, 1+len(steps))
	assert.Equal(t, entity.ShipmentDelivered, shipment.LastChange().Status)

	trail, err := env.factory.trackingRepo.FindByCode(context.Background(), shipment.Code)
	require.NoError(t, err)
	assert.Len(t, trail, 1+len(steps))

	assert.Len(t, env.notifier.statuses, len(steps))
}

func TestShipmentServiceChangeStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()
	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)

	_, err = env.service.ChangeStatus(context.Background(), actor, shipment.ID, &usecase.ChangeStatusInput{Status: "perdida"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatus)

	reloaded, err := env.service.GetByID(context.Background(), actor, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentRegistered, reloaded.Status)
	assert.Len(t, reloaded.History, 1)
}

func TestShipmentServiceChangeStatusNotFound(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	_, err := env.service.ChangeStatus(context.Background(), operatorActor(), uuid.New(), &usecase.ChangeStatusInput{Status: "en_transito"})
	assert.ErrorIs(t, err, domainerrors.ErrShipmentNotFound)
}

func TestShipmentServiceDriverOnlyChangesOwnShipments(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()
	shipment, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	stranger := usecase.Actor{ID: uuid.New(), Email: "otro@lonqui.cl", Role: entity.RoleDriver}
	_, err = env.service.ChangeStatus(context.Background(), stranger, shipment.ID, &usecase.ChangeStatusInput{Status: "en_reparto"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	driver := &entity.User{ID: uuid.New(), Name: "Pedro Pérez", Email: "pedro@lonqui.cl", Role: entity.RoleDriver, Active: true}
	require.NoError(t, env.factory.userRepo.Create(context.Background(), driver))
	_, err = env.service.AssignDriver(context.Background(), operator, shipment.ID, &usecase.AssignDriverInput{DriverID: driver.ID.String()})
	require.NoError(t, err)

	assigned := usecase.Actor{ID: driver.ID, Email: driver.Email, Role: entity.RoleDriver}
	updated, err := env.service.ChangeStatus(context.Background(), assigned, shipment.ID, &usecase.ChangeStatusInput{Status: "en_reparto"})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentOutForDelivery, updated.Status)
}

func TestShipmentServiceAssignDriver(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()
	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)

	driver := &entity.User{ID: uuid.New(), Name: "Pedro Pérez", Email: "pedro@lonqui.cl", Role: entity.RoleDriver, Active: true}
	require.NoError(t, env.factory.userRepo.Create(context.Background(), driver))

	updated, err := env.service.AssignDriver(context.Background(), actor, shipment.ID, &usecase.AssignDriverInput{DriverID: driver.ID.String()})
	require.NoError(t, err)

	require.NotNil(t, updated.DriverID)
	assert.Equal(t, driver.ID, *updated.DriverID)
	assert.Equal(t, "Pedro Pérez", updated.DriverName)
	assert.Equal(t, entity.ShipmentInTransit, updated.Status)
	require.Len(t, updated.History, 2)
	assert.Contains(t, updated.LastChange().Note, "Pedro Pérez")
}

func TestShipmentServiceAssignDriverRejectsNonDrivers(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()
	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)

	clerk := &entity.User{ID: uuid.New(), Name: "Clara", Email: "clara@lonqui.cl", Role: entity.RoleOperator, Active: true}
	require.NoError(t, env.factory.userRepo.Create(context.Background(), clerk))

	_, err = env.service.AssignDriver(context.Background(), actor, shipment.ID, &usecase.AssignDriverInput{DriverID: clerk.ID.String()})
	assert.ErrorIs(t, err, domainerrors.ErrDriverNotFound)

	_, err = env.service.AssignDriver(context.Background(), actor, shipment.ID, &usecase.AssignDriverInput{DriverID: uuid.New().String()})
	assert.ErrorIs(t, err, domainerrors.ErrDriverNotFound)

	reloaded, err := env.service.GetByID(context.Background(), actor, shipment.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.DriverID)
	assert.Equal(t, entity.ShipmentRegistered, reloaded.Status)
}

func TestShipmentServiceRecordDelivery(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()
	shipment, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	driver := &entity.User{ID: uuid.New(), Name: "Pedro Pérez", Email: "pedro@lonqui.cl", Role: entity.RoleDriver, Active: true}
	require.NoError(t, env.factory.userRepo.Create(context.Background(), driver))
	_, err = env.service.AssignDriver(context.Background(), operator, shipment.ID, &usecase.AssignDriverInput{DriverID: driver.ID.String()})
	require.NoError(t, err)

	input := &usecase.RecordDeliveryInput{ReceivedBy: "María López", RUT: "12.345.678-9", Notes: "conserjería"}
	asDriver := usecase.Actor{ID: driver.ID, Email: driver.Email, Role: entity.RoleDriver}
	delivered, err := env.service.RecordDelivery(context.Background(), asDriver, shipment.ID, input)
	require.NoError(t, err)

	assert.Equal(t, entity.ShipmentDelivered, delivered.Status)
	require.NotNil(t, delivered.Delivery)
	assert.Equal(t, "María López", delivered.Delivery.ReceivedBy)
	assert.False(t, delivered.Delivery.Date.IsZero())
	assert.Contains(t, delivered.LastChange().Note, "María López")
}

func TestShipmentServiceRecordDeliveryRequiresDriverRole(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()
	shipment, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	input := &usecase.RecordDeliveryInput{ReceivedBy: "María López"}
	for _, role := range []entity.Role{entity.RoleAdmin, entity.RoleOperator, entity.RoleCustomer} {
		actor := usecase.Actor{ID: uuid.New(), Email: "x@lonqui.cl", Role: role}
		_, err = env.service.RecordDelivery(context.Background(), actor, shipment.ID, input)
		assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied, "role %s", role)
	}

	reloaded, err := env.service.GetByID(context.Background(), operator, shipment.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Delivery)
	assert.NotEqual(t, entity.ShipmentDelivered, reloaded.Status)
}

func TestShipmentServiceRecordDeliveryRequiresAssignment(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()
	shipment, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	unassigned := usecase.Actor{ID: uuid.New(), Email: "pedro@lonqui.cl", Role: entity.RoleDriver}
	_, err = env.service.RecordDelivery(context.Background(), unassigned, shipment.ID,
		&usecase.RecordDeliveryInput{ReceivedBy: "María López"})
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestShipmentServiceListScoping(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()

	first, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)
	_, err = env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	customer := usecase.Actor{ID: uuid.New(), Email: "cliente@example.com", Role: entity.RoleCustomer}
	customerOwned := entity.NewShipment(entity.NewShipmentCode(), entity.Party{Name: "A"}, entity.Party{Name: "B", Address: "C"}, 0, customer.ID, customer.Email)
	require.NoError(t, env.factory.shipmentRepo.Create(context.Background(), customerOwned))

	driver := &entity.User{ID: uuid.New(), Name: "Pedro Pérez", Email: "pedro@lonqui.cl", Role: entity.RoleDriver, Active: true}
	require.NoError(t, env.factory.userRepo.Create(context.Background(), driver))
	_, err = env.service.AssignDriver(context.Background(), operator, first.ID, &usecase.AssignDriverInput{DriverID: driver.ID.String()})
	require.NoError(t, err)

	all, err := env.service.List(context.Background(), operator, &usecase.ListShipmentsInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)

	asDriver := usecase.Actor{ID: driver.ID, Email: driver.Email, Role: entity.RoleDriver}
	mine, err := env.service.List(context.Background(), asDriver, &usecase.ListShipmentsInput{})
	require.NoError(t, err)
	require.Len(t, mine.Items, 1)
	assert.Equal(t, first.ID, mine.Items[0].ID)

	own, err := env.service.List(context.Background(), customer, &usecase.ListShipmentsInput{})
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.Equal(t, customerOwned.ID, own.Items[0].ID)

	inTransit, err := env.service.List(context.Background(), operator, &usecase.ListShipmentsInput{Status: "en_transito"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inTransit.Total)
}

func TestShipmentServiceGetByIDScoping(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	operator := operatorActor()
	shipment, err := env.service.Create(context.Background(), operator, validCreateInput())
	require.NoError(t, err)

	otherCustomer := usecase.Actor{ID: uuid.New(), Email: "cliente@example.com", Role: entity.RoleCustomer}
	_, err = env.service.GetByID(context.Background(), otherCustomer, shipment.ID)
	assert.ErrorIs(t, err, domainerrors.ErrPermissionDenied)

	admin := usecase.Actor{ID: uuid.New(), Email: "admin@lonqui.cl", Role: entity.RoleAdmin}
	got, err := env.service.GetByID(context.Background(), admin, shipment.ID)
	require.NoError(t, err)
	assert.Equal(t, shipment.Code, got.Code)
}

func TestShipmentServiceStats(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	actor := operatorActor()

	for range 3 {
		_, err := env.service.Create(context.Background(), actor, validCreateInput())
		require.NoError(t, err)
	}
	shipment, err := env.service.Create(context.Background(), actor, validCreateInput())
	require.NoError(t, err)
	_, err = env.service.ChangeStatus(context.Background(), actor, shipment.ID, &usecase.ChangeStatusInput{Status: "entregada"})
	require.NoError(t, err)

	stats, err := env.service.Stats(context.Background(), actor)
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 3, stats.Registered)
	assert.EqualValues(t, 1, stats.Delivered)
	assert.EqualValues(t, 0, stats.InTransit)
}

func TestShipmentServiceGetByCode(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	shipment, err := env.service.Create(context.Background(), operatorActor(), validCreateInput())
	require.NoError(t, err)

	got, err := env.service.GetByCode(context.Background(), shipment.Code)
	require.NoError(t, err)
	assert.Equal(t, shipment.ID, got.ID)

	_, err = env.service.GetByCode(context.Background(), "LQ999999999")
	assert.ErrorIs(t, err, domainerrors.ErrShipmentNotFound)
}

func TestShipmentServiceWrappedErrorsKeepTheirCode(t *testing.T) {
	t.Parallel()

	env := newShipmentEnv()
	_, err := env.service.ChangeStatus(context.Background(), operatorActor(), uuid.New(), &usecase.ChangeStatusInput{Status: "en_transito"})
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode())
}
