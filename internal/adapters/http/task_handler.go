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

// TaskHandler serves both task collections. The :collection route param
// selects between the day-task list and the recurring weekly board.
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

func taskCollection(c echo.Context) (string, error) {
	collection := c.Param("collection")
	switch collection {
	case entities.CollectionTasks, entities.CollectionWeeklyAgenda:
		return collection, nil
	default:
		return "", echo.NewHTTPError(http.StatusNotFound, "Unknown task collection")
	}
}

// CreateTask handles task creation
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param collection path string true "tasks or weekly_agenda"
// @Param request body ports.CreateTaskRequest true "Task"
// @Success 201 {object} entities.Task
// @Router /collections/{collection} [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), collection, req)
	if err != nil {
		h.logger.Error("Create task failed", "error", err, "collection", collection)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask handles getting a task by ID
func (h *TaskHandler) GetTask(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), collection, id)
	if err != nil {
		return notFoundOr(err, entities.ErrTaskNotFound, http.StatusInternalServerError, "Task not found")
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles partial task updates
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), collection, id, req)
	if err != nil {
		h.logger.Error("Update task failed", "error", err, "task_id", id, "collection", collection)
		return notFoundOr(err, entities.ErrTaskNotFound, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, task)
}

// SetTaskDone handles toggling the done flag
func (h *TaskHandler) SetTaskDone(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req DoneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	task, err := h.taskService.ToggleDone(c.Request().Context(), collection, id, req.Done)
	if err != nil {
		return notFoundOr(err, entities.ErrTaskNotFound, http.StatusInternalServerError, "Failed to update task")
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), collection, id); err != nil {
		return notFoundOr(err, entities.ErrTaskNotFound, http.StatusInternalServerError, "Failed to delete task")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}

// ListTasks lists a collection, optionally narrowed to one stored date
func (h *TaskHandler) ListTasks(c echo.Context) error {
	collection, err := taskCollection(c)
	if err != nil {
		return err
	}

	if date := c.QueryParam("date"); date != "" {
		tasks, err := h.taskService.ListByDate(c.Request().Context(), collection, date)
		if err != nil {
			h.logger.Error("List tasks by date failed", "error", err, "collection", collection)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
		}
		return c.JSON(http.StatusOK, tasks)
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), collection)
	if err != nil {
		h.logger.Error("List tasks failed", "error", err, "collection", collection)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetTodayBoard returns today's merged block view
// @Summary Today's board
// @Tags board
// @Produce json
// @Success 200 {object} schedule.BlockGroup
// @Router /board/today [get]
func (h *TaskHandler) GetTodayBoard(c echo.Context) error {
	board, err := h.taskService.TodayBoard(c.Request().Context())
	if err != nil {
		h.logger.Error("Today board failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build board")
	}

	return c.JSON(http.StatusOK, board)
}

// GetBoardForDate returns the merged block view for an arbitrary date
func (h *TaskHandler) GetBoardForDate(c echo.Context) error {
	date := c.Param("date")

	board, err := h.taskService.BoardFor(c.Request().Context(), date)
	if err != nil {
		if err == entities.ErrInvalidDate {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid date")
		}
		h.logger.Error("Board for date failed", "error", err, "date", date)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build board")
	}

	return c.JSON(http.StatusOK, board)
}

// GetWeekBoard returns the recurring board expanded over the coming days
func (h *TaskHandler) GetWeekBoard(c echo.Context) error {
	days := 7
	if daysStr := c.QueryParam("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 31 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid days parameter")
		}
		days = parsed
	}

	board, err := h.taskService.WeekBoard(c.Request().Context(), days)
	if err != nil {
		h.logger.Error("Week board failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build board")
	}

	return c.JSON(http.StatusOK, board)
}

// GetOverview returns all day tasks grouped by stored date and block
func (h *TaskHandler) GetOverview(c echo.Context) error {
	overview, err := h.taskService.Overview(c.Request().Context())
	if err != nil {
		h.logger.Error("Task overview failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to build overview")
	}

	return c.JSON(http.StatusOK, overview)
}

// GetCompletedTasks lists finished day tasks
func (h *TaskHandler) GetCompletedTasks(c echo.Context) error {
	tasks, err := h.taskService.CompletedTasks(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		h.logger.Error("Completed tasks failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve tasks")
	}

	return c.JSON(http.StatusOK, tasks)
}
