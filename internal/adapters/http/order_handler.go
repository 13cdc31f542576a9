package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/carwashdash/core/internal/application/services"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// OrderHandler handles supply-order requests
type OrderHandler struct {
	orderService *services.OrderService
	logger       *logger.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService, logger *logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// CreateOrder handles order submission from the kiosk
// @Summary Submit a supply order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body ports.CreateOrderRequest true "Order"
// @Success 201 {object} entities.Order
// @Router /orders [post]
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req ports.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orderService.CreateOrder(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create order failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, order)
}

// GetOrder handles getting an order by ID
func (h *OrderHandler) GetOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.GetOrder(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, entities.ErrOrderNotFound, http.StatusInternalServerError, "Order not found")
	}

	return c.JSON(http.StatusOK, order)
}

// ListOrders lists orders newest first. Archived orders stay hidden unless
// include_archived=true is passed.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	filter := ports.OrderFilter{}

	if v := c.QueryParam("include_archived"); v != "" {
		includeArchived, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid include_archived parameter")
		}
		filter.IncludeArchived = includeArchived
	}
	if v := c.QueryParam("type"); v != "" {
		orderType := entities.OrderType(v)
		if !orderType.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid type parameter")
		}
		filter.Type = &orderType
	}
	if v := c.QueryParam("done"); v != "" {
		done, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid done parameter")
		}
		filter.Done = &done
	}

	orders, err := h.orderService.ListOrders(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("List orders failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve orders")
	}

	return c.JSON(http.StatusOK, orders)
}

// SetOrderDone handles marking an order handled
func (h *OrderHandler) SetOrderDone(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req DoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	order, err := h.orderService.SetDone(c.Request().Context(), id, req.Done)
	if err != nil {
		return notFoundOr(err, entities.ErrOrderNotFound, http.StatusInternalServerError, "Failed to update order")
	}

	return c.JSON(http.StatusOK, order)
}

// SetOrderArchived handles archiving or restoring an order
func (h *OrderHandler) SetOrderArchived(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ArchivedRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	order, err := h.orderService.SetArchived(c.Request().Context(), id, req.Archived)
	if err != nil {
		return notFoundOr(err, entities.ErrOrderNotFound, http.StatusInternalServerError, "Failed to update order")
	}

	return c.JSON(http.StatusOK, order)
}

// DeleteOrder handles permanent order deletion
func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.orderService.DeleteOrder(c.Request().Context(), id); err != nil {
		return notFoundOr(err, entities.ErrOrderNotFound, http.StatusInternalServerError, "Failed to delete order")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Order deleted"})
}
