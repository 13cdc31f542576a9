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

// AgendaHandler handles agenda-related requests
type AgendaHandler struct {
	agendaService *services.AgendaService
	logger        *logger.Logger
}

// NewAgendaHandler creates a new agenda handler
func NewAgendaHandler(agendaService *services.AgendaService, logger *logger.Logger) *AgendaHandler {
	return &AgendaHandler{
		agendaService: agendaService,
		logger:        logger,
	}
}

// CreateItem handles agenda item creation
func (h *AgendaHandler) CreateItem(c echo.Context) error {
	var req ports.CreateAgendaItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.agendaService.CreateItem(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create agenda item failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem handles getting an agenda item by ID
func (h *AgendaHandler) GetItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.agendaService.GetItem(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, entities.ErrAgendaNotFound, http.StatusInternalServerError, "Agenda item not found")
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem handles partial agenda item updates
func (h *AgendaHandler) UpdateItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateAgendaItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.agendaService.UpdateItem(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("Update agenda item failed", "error", err, "item_id", id)
		return notFoundOr(err, entities.ErrAgendaNotFound, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem handles agenda item deletion
func (h *AgendaHandler) DeleteItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.agendaService.DeleteItem(c.Request().Context(), id); err != nil {
		return notFoundOr(err, entities.ErrAgendaNotFound, http.StatusInternalServerError, "Failed to delete agenda item")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Agenda item deleted"})
}

// ListItems lists all agenda items
func (h *AgendaHandler) ListItems(c echo.Context) error {
	items, err := h.agendaService.ListItems(c.Request().Context())
	if err != nil {
		h.logger.Error("List agenda items failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve agenda")
	}

	return c.JSON(http.StatusOK, items)
}

// GetWeekView returns the agenda expanded over the coming days
func (h *AgendaHandler) GetWeekView(c echo.Context) error {
	days := 7
	if daysStr := c.QueryParam("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 31 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days parameter")
		}
		days = parsed
	}

	view, err := h.agendaService.WeekView(c.Request().Context(), days)
	if err != nil {
		h.logger.Error("Agenda week view failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build week view")
	}

	return c.JSON(http.StatusOK, view)
}

// ExportICS streams the agenda as an iCalendar document
// @Summary Export agenda as iCalendar
// @Tags agenda
// @Produce plain
// @Success 200 {string} string
// @Router /agenda/export.ics [get]
func (h *AgendaHandler) ExportICS(c echo.Context) error {
	out, err := h.agendaService.ExportICS(c.Request().Context())
	if err != nil {
		h.logger.Error("Agenda ICS export failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export agenda")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="agenda.ics"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(out))
}
