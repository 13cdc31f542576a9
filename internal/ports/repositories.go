package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/carwashdash/core/internal/domain/entities"
)

// TaskRepository defines data operations for one task collection. Day tasks
// and the weekly agenda board share this interface against different tables.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entities.Task, error)
	ListByDate(ctx context.Context, date string) ([]entities.Task, error)
	ListByDates(ctx context.Context, dates []string) ([]entities.Task, error)
	ListDone(ctx context.Context, done bool) ([]entities.Task, error)
	SetDone(ctx context.Context, id uuid.UUID, done bool) error
}

// AgendaRepository defines data operations for agenda items.
type AgendaRepository interface {
	Create(ctx context.Context, item *entities.AgendaItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.AgendaItem, error)
	Update(ctx context.Context, item *entities.AgendaItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entities.AgendaItem, error)
}

// ArticleRepository defines data operations for kennisbank articles.
type ArticleRepository interface {
	Create(ctx context.Context, article *entities.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Article, error)
	Update(ctx context.Context, article *entities.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entities.Article, error)
}

// OrderRepository defines data operations for supply orders.
type OrderRepository interface {
	Create(ctx context.Context, order *entities.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
	SetDone(ctx context.Context, id uuid.UUID, done bool) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) error
}

// UserRepository defines data operations for console and kiosk accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entities.User, error)
}

// OrderFilter narrows order listings. The default admin list passes
// IncludeArchived=false so archived orders stay hidden.
type OrderFilter struct {
	IncludeArchived bool
	Type            *entities.OrderType
	Done            *bool
}
