package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// OrderService manages supply orders submitted from the kiosk. Archiving is
// a soft delete: the record stays in the store but drops out of the default
// listing, so a mistaken archive is reversible from the admin console.
type OrderService struct {
	repo   ports.OrderRepository
	mirror *mirror.Mirror
	logger *logger.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repo ports.OrderRepository, m *mirror.Mirror, logger *logger.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		mirror: m,
		logger: logger,
	}
}

// CreateOrder records a new order, stamped with the submission time.
func (s *OrderService) CreateOrder(ctx context.Context, req ports.CreateOrderRequest) (*entities.Order, error) {
	order := &entities.Order{
		Type:      req.Type,
		Text:      req.Text,
		Target:    req.Target,
		Timestamp: time.Now().UTC(),
		Done:      false,
		Archived:  false,
	}
	order.Normalize()

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.LogWriteFailure(entities.CollectionOrders, "create", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("Order created successfully", "order_id", order.ID, "type", order.Type, "target", order.Target)
	s.publish(ctx)

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders lists orders newest first. Archived orders are excluded unless
// the filter asks for them.
func (s *OrderService) ListOrders(ctx context.Context, filter ports.OrderFilter) ([]entities.Order, error) {
	return s.repo.List(ctx, filter)
}

// SetDone marks an order handled or reopens it.
func (s *OrderService) SetDone(ctx context.Context, id uuid.UUID, done bool) (*entities.Order, error) {
	if err := s.repo.SetDone(ctx, id, done); err != nil {
		if err != entities.ErrOrderNotFound {
			s.logger.LogWriteFailure(entities.CollectionOrders, "set_done", err)
		}
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order done flag updated", "order_id", id, "done", done)
	s.publish(ctx)

	return order, nil
}

// SetArchived archives or restores an order.
func (s *OrderService) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*entities.Order, error) {
	if err := s.repo.SetArchived(ctx, id, archived); err != nil {
		if err != entities.ErrOrderNotFound {
			s.logger.LogWriteFailure(entities.CollectionOrders, "set_archived", err)
		}
		return nil, err
	}

	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order archived flag updated", "order_id", id, "archived", archived)
	s.publish(ctx)

	return order, nil
}

// DeleteOrder removes an order permanently. Prefer SetArchived; this exists
// for cleaning up archived records.
func (s *OrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err != entities.ErrOrderNotFound {
			s.logger.LogWriteFailure(entities.CollectionOrders, "delete", err)
		}
		return err
	}

	s.logger.Info("Order deleted successfully", "order_id", id)
	s.publish(ctx)

	return nil
}

// publish snapshots the full order list, archived included, so subscribers
// apply their own visibility rules client-side.
func (s *OrderService) publish(ctx context.Context) {
	orders, err := s.repo.List(ctx, ports.OrderFilter{IncludeArchived: true})
	if err != nil {
		s.logger.Warn("Failed to refresh snapshot after write", "collection", entities.CollectionOrders, "error", err)
		return
	}
	s.mirror.Publish(entities.CollectionOrders, orders)
}
