package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/PaintToxic22/sistema-rastreo/internal/domain/entity"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/repository"
	"github.com/PaintToxic22/sistema-rastreo/internal/domain/service"
)

// In-memory repository fakes. They implement the repository contracts closely
// enough for the service tests: sentinel errors for missing records, newest
// first ordering, filter semantics.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u

		return &clone, nil
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	return out, nil
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	clone := *user
	r.users[user.ID] = &clone

	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(r.users, id)

	return nil
}

type memShipmentRepo struct {
	mu        sync.Mutex
	shipments map[uuid.UUID]*entity.Shipment
	order     []uuid.UUID
}

func newMemShipmentRepo() *memShipmentRepo {
	return &memShipmentRepo{shipments: map[uuid.UUID]*entity.Shipment{}}
}

func cloneShipment(s *entity.Shipment) *entity.Shipment {
	clone := *s
	clone.History = append([]entity.StatusChange(nil), s.History...)
	if s.DriverID != nil {
		id := *s.DriverID
		clone.DriverID = &id
	}
	if s.Delivery != nil {
		d := *s.Delivery
		clone.Delivery = &d
	}

	return &clone
}

func (r *memShipmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shipments[id]; ok {
		return cloneShipment(s), nil
	}

	return nil, repository.ErrShipmentNotFound
}

func (r *memShipmentRepo) FindByCode(_ context.Context, code string) (*entity.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shipments {
		if s.Code == code {
			return cloneShipment(s), nil
		}
	}

	return nil, repository.ErrShipmentNotFound
}

func (r *memShipmentRepo) Create(_ context.Context, s *entity.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shipments[s.ID] = cloneShipment(s)
	r.order = append(r.order, s.ID)

	return nil
}

func (r *memShipmentRepo) Save(_ context.Context, s *entity.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shipments[s.ID]; !ok {
		return repository.ErrShipmentNotFound
	}
	r.shipments[s.ID] = cloneShipment(s)

	return nil
}

func (r *memShipmentRepo) List(_ context.Context, filter repository.ShipmentFilter) ([]*entity.Shipment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Shipment
	for i := len(r.order) - 1; i >= 0; i-- {
		s := r.shipments[r.order[i]]
		if filter.Status != nil && s.Status != *filter.Status {
			continue
		}
		if filter.DriverID != nil && (s.DriverID == nil || *s.DriverID != *filter.DriverID) {
			continue
		}
		if filter.RegisteredBy != nil && s.RegisteredBy != *filter.RegisteredBy {
			continue
		}
		matched = append(matched, cloneShipment(s))
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, total, nil
}

func (r *memShipmentRepo) Stats(_ context.Context) (*repository.ShipmentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &repository.ShipmentStats{ByStatus: map[entity.ShipmentStatus]int64{}}
	for _, s := range r.shipments {
		stats.Total++
		stats.ByStatus[s.Status]++
	}

	return stats, nil
}

type memFreightRepo struct {
	mu     sync.Mutex
	orders []*entity.FreightOrder
}

func newMemFreightRepo() *memFreightRepo {
	return &memFreightRepo{}
}

func (r *memFreightRepo) FindByNumber(_ context.Context, orderNumber string) (*entity.FreightOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber && o.Active {
			clone := *o

			return &clone, nil
		}
	}

	return nil, repository.ErrFreightOrderNotFound
}

func (r *memFreightRepo) Create(_ context.Context, order *entity.FreightOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	clone := *order
	r.orders = append(r.orders, &clone)

	return nil
}

func (r *memFreightRepo) Save(_ context.Context, order *entity.FreightOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == order.ID {
			clone := *order
			r.orders[i] = &clone

			return nil
		}
	}

	return repository.ErrFreightOrderNotFound
}

func (r *memFreightRepo) List(_ context.Context, limit int) ([]*entity.FreightOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.FreightOrder
	for i := len(r.orders) - 1; i >= 0; i-- {
		if !r.orders[i].Active {
			continue
		}
		clone := *r.orders[i]
		out = append(out, &clone)
		if limit > 0 && len(out) == limit {
			break
		}
	}

	return out, nil
}

type memTrackingRepo struct {
	mu      sync.Mutex
	entries []*entity.TrackingEntry
}

func newMemTrackingRepo() *memTrackingRepo {
	return &memTrackingRepo{}
}

func (r *memTrackingRepo) Append(_ context.Context, entry *entity.TrackingEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *entry
	clone.ID = uint64(len(r.entries) + 1)
	r.entries = append(r.entries, &clone)

	return nil
}

func (r *memTrackingRepo) FindByCode(_ context.Context, code string) ([]*entity.TrackingEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.TrackingEntry
	for _, e := range r.entries {
		if e.TrackingCode == code {
			clone := *e
			out = append(out, &clone)
		}
	}

	return out, nil
}

type memSettingsRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemSettingsRepo() *memSettingsRepo {
	return &memSettingsRepo{values: map[string]string{}}
}

func (r *memSettingsRepo) All(_ context.Context) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}

	return out, nil
}

func (r *memSettingsRepo) Upsert(_ context.Context, key, value string, _ uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value

	return nil
}

// memFactory hands out the same fakes untransacted; memTxManager runs the
// callback directly. Rollback behavior is not modeled, only the wiring.
type memFactory struct {
	userRepo     *memUserRepo
	shipmentRepo *memShipmentRepo
	freightRepo  *memFreightRepo
	trackingRepo *memTrackingRepo
	settingsRepo *memSettingsRepo
}

func newMemFactory() *memFactory {
	return &memFactory{
		userRepo:     newMemUserRepo(),
		shipmentRepo: newMemShipmentRepo(),
		freightRepo:  newMemFreightRepo(),
		trackingRepo: newMemTrackingRepo(),
		settingsRepo: newMemSettingsRepo(),
	}
}

func (f *memFactory) UserRepo() repository.UserRepository                 { return f.userRepo }
func (f *memFactory) ShipmentRepo() repository.ShipmentRepository         { return f.shipmentRepo }
func (f *memFactory) FreightOrderRepo() repository.FreightOrderRepository { return f.freightRepo }
func (f *memFactory) TrackingRepo() repository.TrackingRepository         { return f.trackingRepo }
func (f *memFactory) SettingsRepo() repository.SettingsRepository         { return f.settingsRepo }

type memTxManager struct {
	factory *memFactory
}

func (m *memTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

type notifierCall struct {
	to, code, status string
	kind             entity.TrackableKind
}

type fakeNotifier struct {
	mu         sync.Mutex
	registered []notifierCall
	statuses   []notifierCall
}

func (n *fakeNotifier) NotifyRegistered(_ context.Context, to, code string, kind entity.TrackableKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.registered = append(n.registered, notifierCall{to: to, code: code, kind: kind})

	return nil
}

func (n *fakeNotifier) NotifyStatusChange(_ context.Context, to, code, status string, kind entity.TrackableKind) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.statuses = append(n.statuses, notifierCall{to: to, code: code, status: status, kind: kind})

	return nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

type fakeTokens struct{}

func (fakeTokens) Generate(user *entity.User) (string, error) { return "token-" + user.Email, nil }

func (fakeTokens) Validate(string) (*service.Claims, error) { return nil, nil }
