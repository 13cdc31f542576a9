package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/ports"
)

// OrderRepositoryImpl implements the OrderRepository interface
type OrderRepositoryImpl struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sqlx.DB) ports.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

func (r *OrderRepositoryImpl) Create(ctx context.Context, order *entities.Order) error {
	query := `
		INSERT INTO orders (id, type, text, target, timestamp, done, archived)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.Normalize()

	_, err := r.db.ExecContext(ctx, query,
		order.ID, order.Type, order.Text, order.Target,
		order.Timestamp, order.Done, order.Archived,
	)

	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *OrderRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	query := `
		SELECT id, type, text, target, timestamp, done, archived
		FROM orders
		WHERE id = $1`

	var order entities.Order
	err := r.db.GetContext(ctx, &order, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by id: %w", err)
	}

	order.Normalize()
	return &order, nil
}

func (r *OrderRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM orders WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepositoryImpl) List(ctx context.Context, filter ports.OrderFilter) ([]entities.Order, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}

	if !filter.IncludeArchived {
		conditions = append(conditions, "archived = FALSE")
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.Done != nil {
		args = append(args, *filter.Done)
		conditions = append(conditions, fmt.Sprintf("done = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, type, text, target, timestamp, done, archived
		FROM orders
		WHERE %s
		ORDER BY timestamp DESC`, strings.Join(conditions, " AND "))

	var orders []entities.Order
	err := r.db.SelectContext(ctx, &orders, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	for i := range orders {
		orders[i].Normalize()
	}
	return orders, nil
}

func (r *OrderRepositoryImpl) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	query := `UPDATE orders SET done = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, done)
	if err != nil {
		return fmt.Errorf("set order done: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrOrderNotFound
	}

	return nil
}

func (r *OrderRepositoryImpl) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	query := `UPDATE orders SET archived = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, archived)
	if err != nil {
		return fmt.Errorf("set order archived: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrOrderNotFound
	}

	return nil
}
