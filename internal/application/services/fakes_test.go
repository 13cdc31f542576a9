package services

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/config"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(config.LoggerConfig{Level: "error", Format: "json", Output: "stdout"})
	if err != nil {
		t.Fatalf("failed to build test logger: %v", err)
	}
	return l
}

// fakeTaskRepo is an in-memory TaskRepository.
type fakeTaskRepo struct {
	tasks map[uuid.UUID]entities.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[uuid.UUID]entities.Task)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *entities.Task) error {
	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	return &t, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *entities.Task) error {
	if _, ok := r.tasks[task.ID]; !ok {
		return entities.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) List(_ context.Context) ([]entities.Task, error) {
	out := make([]entities.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (r *fakeTaskRepo) ListByDate(ctx context.Context, date string) ([]entities.Task, error) {
	return r.ListByDates(ctx, []string{date})
}

func (r *fakeTaskRepo) ListByDates(ctx context.Context, dates []string) ([]entities.Task, error) {
	want := make(map[string]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}
	all, _ := r.List(ctx)
	out := []entities.Task{}
	for _, t := range all {
		if want[t.Date] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) ListDone(ctx context.Context, done bool) ([]entities.Task, error) {
	all, _ := r.List(ctx)
	out := []entities.Task{}
	for _, t := range all {
		if t.Done == done {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) SetDone(_ context.Context, id uuid.UUID, done bool) error {
	t, ok := r.tasks[id]
	if !ok {
		return entities.ErrTaskNotFound
	}
	t.Done = done
	r.tasks[id] = t
	return nil
}

// fakeAgendaRepo is an in-memory AgendaRepository.
type fakeAgendaRepo struct {
	items map[uuid.UUID]entities.AgendaItem
}

func newFakeAgendaRepo() *fakeAgendaRepo {
	return &fakeAgendaRepo{items: make(map[uuid.UUID]entities.AgendaItem)}
}

func (r *fakeAgendaRepo) Create(_ context.Context, item *entities.AgendaItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeAgendaRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.AgendaItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, entities.ErrAgendaNotFound
	}
	return &it, nil
}

func (r *fakeAgendaRepo) Update(_ context.Context, item *entities.AgendaItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return entities.ErrAgendaNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeAgendaRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return entities.ErrAgendaNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeAgendaRepo) List(_ context.Context) ([]entities.AgendaItem, error) {
	out := make([]entities.AgendaItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// fakeOrderRepo is an in-memory OrderRepository.
type fakeOrderRepo struct {
	orders map[uuid.UUID]entities.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]entities.Order)}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *entities.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entities.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, entities.ErrOrderNotFound
	}
	return &o, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return entities.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter ports.OrderFilter) ([]entities.Order, error) {
	out := []entities.Order{}
	for _, o := range r.orders {
		if !filter.IncludeArchived && o.Archived {
			continue
		}
		if filter.Type != nil && o.Type != *filter.Type {
			continue
		}
		if filter.Done != nil && o.Done != *filter.Done {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func (r *fakeOrderRepo) SetDone(_ context.Context, id uuid.UUID, done bool) error {
	o, ok := r.orders[id]
	if !ok {
		return entities.ErrOrderNotFound
	}
	o.Done = done
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) SetArchived(_ context.Context, id uuid.UUID, archived bool) error {
	o, ok := r.orders[id]
	if !ok {
		return entities.ErrOrderNotFound
	}
	o.Archived = archived
	r.orders[id] = o
	return nil
}
