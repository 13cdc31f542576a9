package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/domain/schedule"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// TaskService handles both task collections: day tasks and the recurring
// weekly agenda board. Every successful write is followed by a fresh full
// listing of the touched collection published through the mirror, so
// connected clients re-render from the authoritative snapshot rather than
// from the write response.
type TaskService struct {
	dayRepo    ports.TaskRepository
	weeklyRepo ports.TaskRepository
	mirror     *mirror.Mirror
	location   *time.Location
	logger     *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(dayRepo, weeklyRepo ports.TaskRepository, m *mirror.Mirror, location *time.Location, logger *logger.Logger) *TaskService {
	return &TaskService{
		dayRepo:    dayRepo,
		weeklyRepo: weeklyRepo,
		mirror:     m,
		location:   location,
		logger:     logger,
	}
}

// CreateTask creates a task in the named collection
func (s *TaskService) CreateTask(ctx context.Context, collection string, req ports.CreateTaskRequest) (*entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}

	task := &entities.Task{
		Text:      req.Text,
		Notes:     req.Notes,
		Date:      req.Date,
		TimeBlock: req.TimeBlock,
		Repeat:    req.Repeat,
		Done:      false,
	}
	task.Normalize()

	if _, err := task.AnchorDate(); err != nil {
		return nil, err
	}

	if err := repo.Create(ctx, task); err != nil {
		s.logger.LogWriteFailure(collection, "create", err)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created successfully", "task_id", task.ID, "collection", collection)
	s.publish(ctx, collection)

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, collection string, id uuid.UUID) (*entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// UpdateTask updates a task's fields
func (s *TaskService) UpdateTask(ctx context.Context, collection string, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Text != nil {
		task.Text = *req.Text
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Date != nil {
		task.Date = *req.Date
	}
	if req.TimeBlock != nil {
		task.TimeBlock = *req.TimeBlock
	}
	if req.Repeat != nil {
		task.Repeat = *req.Repeat
	}
	if req.Done != nil {
		task.Done = *req.Done
	}
	task.Normalize()

	if _, err := task.AnchorDate(); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, task); err != nil {
		s.logger.LogWriteFailure(collection, "update", err)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated successfully", "task_id", task.ID, "collection", collection)
	s.publish(ctx, collection)

	return task, nil
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(ctx context.Context, collection string, id uuid.UUID) error {
	repo, err := s.repoFor(collection)
	if err != nil {
		return err
	}

	if err := repo.Delete(ctx, id); err != nil {
		if err != entities.ErrTaskNotFound {
			s.logger.LogWriteFailure(collection, "delete", err)
		}
		return err
	}

	s.logger.Info("Task deleted successfully", "task_id", id, "collection", collection)
	s.publish(ctx, collection)

	return nil
}

// ToggleDone flips or sets the done flag. For a recurring task this is the
// single shared flag on the stored record: completing one occurrence marks
// every occurrence, because occurrences are projections of one document.
func (s *TaskService) ToggleDone(ctx context.Context, collection string, id uuid.UUID, done bool) (*entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}

	if err := repo.SetDone(ctx, id, done); err != nil {
		if err != entities.ErrTaskNotFound {
			s.logger.LogWriteFailure(collection, "set_done", err)
		}
		return nil, err
	}

	task, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Task done flag updated", "task_id", id, "collection", collection, "done", done)
	s.publish(ctx, collection)

	return task, nil
}

// ListTasks lists a full collection
func (s *TaskService) ListTasks(ctx context.Context, collection string) ([]entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// ListByDate lists day tasks stored under a literal date
func (s *TaskService) ListByDate(ctx context.Context, collection, date string) ([]entities.Task, error) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return nil, err
	}
	return repo.ListByDate(ctx, date)
}

// CompletedTasks returns finished day tasks, optionally narrowed to the
// tasks stored under one date.
func (s *TaskService) CompletedTasks(ctx context.Context, date string) ([]entities.Task, error) {
	tasks, err := s.dayRepo.ListDone(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed tasks: %w", err)
	}

	if date == "" {
		return tasks, nil
	}

	filtered := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Date == date {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Overview groups the whole day-task collection by stored date and time
// block, with no recurrence expansion. This backs the admin planning view,
// where tasks are shown under the literal date they were entered on.
func (s *TaskService) Overview(ctx context.Context) (map[string]schedule.BlockGroup, error) {
	tasks, err := s.dayRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}
	return schedule.GroupByDateAndBlock(tasks), nil
}

// TodayBoard merges today's stored day tasks with the recurring board tasks
// that are due today, grouped into time blocks. This is the kiosk home
// view: the day-task lookup is an exact date match pushed to the store, the
// recurrence match runs here over the full weekly collection because it
// cannot be expressed as a store query.
func (s *TaskService) TodayBoard(ctx context.Context) (schedule.BlockGroup, error) {
	today := schedule.DayOf(time.Now(), s.location)
	return s.boardFor(ctx, today)
}

// BoardFor builds the merged block view for an arbitrary day.
func (s *TaskService) BoardFor(ctx context.Context, date string) (schedule.BlockGroup, error) {
	day, err := schedule.ParseDay(date)
	if err != nil {
		return schedule.BlockGroup{}, err
	}
	return s.boardFor(ctx, day)
}

func (s *TaskService) boardFor(ctx context.Context, day time.Time) (schedule.BlockGroup, error) {
	dayTasks, err := s.dayRepo.ListByDate(ctx, schedule.FormatDay(day))
	if err != nil {
		return schedule.BlockGroup{}, fmt.Errorf("failed to load day tasks: %w", err)
	}

	weekly, err := s.weeklyRepo.List(ctx)
	if err != nil {
		return schedule.BlockGroup{}, fmt.Errorf("failed to load weekly agenda: %w", err)
	}

	merged := make([]entities.Task, 0, len(dayTasks)+len(weekly))
	merged = append(merged, dayTasks...)
	for _, t := range weekly {
		if schedule.TaskDueOn(t, day) {
			merged = append(merged, t)
		}
	}

	return schedule.GroupByBlock(merged), nil
}

// WeekBoard expands the recurring board over the coming window and merges
// in the day tasks stored on those dates, keyed by date. A recurring task
// appears under every date it is due on.
func (s *TaskService) WeekBoard(ctx context.Context, days int) (map[string][]entities.Task, error) {
	if days <= 0 {
		days = 7
	}
	start := schedule.DayOf(time.Now(), s.location)

	weekly, err := s.weeklyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly agenda: %w", err)
	}

	board := schedule.ExpandOverWindow(weekly, start, days)

	window := schedule.Window(start, days)
	dates := make([]string, 0, len(window))
	for _, d := range window {
		dates = append(dates, schedule.FormatDay(d))
	}

	dayTasks, err := s.dayRepo.ListByDates(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to load day tasks: %w", err)
	}
	for date, tasks := range schedule.GroupByDate(dayTasks) {
		board[date] = append(board[date], tasks...)
	}

	return board, nil
}

func (s *TaskService) repoFor(collection string) (ports.TaskRepository, error) {
	switch collection {
	case entities.CollectionTasks:
		return s.dayRepo, nil
	case entities.CollectionWeeklyAgenda:
		return s.weeklyRepo, nil
	default:
		return nil, fmt.Errorf("unknown task collection %q", collection)
	}
}

// publish re-lists the collection and hands the authoritative snapshot to
// the mirror. Failures here only cost freshness, never correctness, so
// they are logged and swallowed.
func (s *TaskService) publish(ctx context.Context, collection string) {
	repo, err := s.repoFor(collection)
	if err != nil {
		return
	}

	tasks, err := repo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to refresh snapshot after write", "collection", collection, "error", err)
		return
	}

	s.mirror.Publish(collection, tasks)
}
