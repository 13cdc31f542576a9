package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface against one
// task table. Day tasks and the weekly agenda board have identical shapes,
// so the same implementation serves both collections.
type TaskRepositoryImpl struct {
	db    *sqlx.DB
	table string
}

// NewTaskRepository creates a task repository bound to the given table
// (entities.CollectionTasks or entities.CollectionWeeklyAgenda).
func NewTaskRepository(db *sqlx.DB, table string) ports.TaskRepository {
	switch table {
	case entities.CollectionTasks, entities.CollectionWeeklyAgenda:
	default:
		panic(fmt.Sprintf("unknown task table %q", table))
	}
	return &TaskRepositoryImpl{db: db, table: table}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, text, notes, date, time_block, repeat, done)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`, r.table)

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.Normalize()

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Text, task.Notes, task.Date,
		task.TimeBlock, task.Repeat, task.Done,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT id, text, notes, date, time_block, repeat, done, created_at, updated_at
		FROM %s
		WHERE id = $1`, r.table)

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	task.Normalize()
	return &task, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET text = $2, notes = $3, date = $4, time_block = $5, repeat = $6,
			done = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`, r.table)

	task.Normalize()

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Text, task.Notes, task.Date,
		task.TimeBlock, task.Repeat, task.Done,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT id, text, notes, date, time_block, repeat, done, created_at, updated_at
		FROM %s
		ORDER BY date, created_at`, r.table)

	var tasks []entities.Task
	err := r.db.SelectContext(ctx, &tasks, query)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	normalizeTasks(tasks)
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByDate(ctx context.Context, date string) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT id, text, notes, date, time_block, repeat, done, created_at, updated_at
		FROM %s
		WHERE date = $1
		ORDER BY created_at`, r.table)

	var tasks []entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, date)
	if err != nil {
		return nil, fmt.Errorf("list tasks by date: %w", err)
	}

	normalizeTasks(tasks)
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListByDates(ctx context.Context, dates []string) ([]entities.Task, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT id, text, notes, date, time_block, repeat, done, created_at, updated_at
		FROM %s
		WHERE date IN (?)
		ORDER BY date, created_at`, r.table), dates)
	if err != nil {
		return nil, fmt.Errorf("build date-window query: %w", err)
	}
	query = r.db.Rebind(query)

	var tasks []entities.Task
	err = r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks by dates: %w", err)
	}

	normalizeTasks(tasks)
	return tasks, nil
}

func (r *TaskRepositoryImpl) ListDone(ctx context.Context, done bool) ([]entities.Task, error) {
	query := fmt.Sprintf(`
		SELECT id, text, notes, date, time_block, repeat, done, created_at, updated_at
		FROM %s
		WHERE done = $1
		ORDER BY date, created_at`, r.table)

	var tasks []entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, done)
	if err != nil {
		return nil, fmt.Errorf("list tasks by done: %w", err)
	}

	normalizeTasks(tasks)
	return tasks, nil
}

func (r *TaskRepositoryImpl) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET done = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $1`, r.table)

	result, err := r.db.ExecContext(ctx, query, id, done)
	if err != nil {
		return fmt.Errorf("set task done: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func normalizeTasks(tasks []entities.Task) {
	for i := range tasks {
		tasks[i].Normalize()
	}
}
