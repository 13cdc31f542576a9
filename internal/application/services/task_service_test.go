package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/ports"
)

func newTaskService(t *testing.T) (*TaskService, *fakeTaskRepo, *fakeTaskRepo, *mirror.Mirror) {
	t.Helper()
	dayRepo := newFakeTaskRepo()
	weeklyRepo := newFakeTaskRepo()
	m := mirror.New(nil)
	svc := NewTaskService(dayRepo, weeklyRepo, m, time.UTC, testLogger(t))
	return svc, dayRepo, weeklyRepo, m
}

func TestTaskServiceCreateDefaultsAndPublishes(t *testing.T) {
	svc, _, _, m := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, entities.CollectionTasks, ports.CreateTaskRequest{
		Text: "Stofzuigers legen",
		Date: "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BlockOchtend, task.TimeBlock)
	assert.Equal(t, entities.RepeatOnce, task.Repeat)
	assert.False(t, task.Done)

	snap, ok := m.Latest(entities.CollectionTasks)
	require.True(t, ok)
	records, ok := snap.Records.([]entities.Task)
	require.True(t, ok)
	require.Len(t, records, 1)
	assert.Equal(t, task.ID, records[0].ID)
}

func TestTaskServiceCreateRejectsBadDate(t *testing.T) {
	svc, _, _, _ := newTaskService(t)

	_, err := svc.CreateTask(context.Background(), entities.CollectionTasks, ports.CreateTaskRequest{
		Text: "x",
		Date: "02-06-2025",
	})
	assert.ErrorIs(t, err, entities.ErrInvalidDate)
}

func TestTaskServiceUnknownCollection(t *testing.T) {
	svc, _, _, _ := newTaskService(t)

	_, err := svc.ListTasks(context.Background(), "projects")
	assert.Error(t, err)
}

func TestTaskServiceToggleDonePropagatesThroughSnapshot(t *testing.T) {
	svc, _, _, m := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, entities.CollectionTasks, ports.CreateTaskRequest{
		Text: "Doseerpomp controleren",
		Date: "2025-06-02",
	})
	require.NoError(t, err)

	sub := m.Subscribe(entities.CollectionTasks)
	defer sub.Close()
	<-sub.C // snapshot from the create

	updated, err := svc.ToggleDone(ctx, entities.CollectionTasks, task.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.Done)

	snap := <-sub.C
	records := snap.Records.([]entities.Task)
	require.Len(t, records, 1)
	assert.True(t, records[0].Done, "subscriber must see the toggled flag in the next snapshot")
}

func TestTaskServiceBoardMergesDayAndWeekly(t *testing.T) {
	svc, dayRepo, weeklyRepo, _ := newTaskService(t)
	ctx := context.Background()

	// Stored day task for 2025-06-02 (a Monday).
	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Folie bestellen", Date: "2025-06-02",
		TimeBlock: entities.BlockMiddag, Repeat: entities.RepeatOnce,
	}))
	// Weekly board task anchored on an earlier Monday: due 2025-06-02.
	require.NoError(t, weeklyRepo.Create(ctx, &entities.Task{
		Text: "Borstels spoelen", Date: "2025-05-26",
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatWeekly,
	}))
	// Weekly board task anchored on a Tuesday: not due on Monday.
	require.NoError(t, weeklyRepo.Create(ctx, &entities.Task{
		Text: "Kassa tellen", Date: "2025-05-27",
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatWeekly,
	}))

	board, err := svc.BoardFor(ctx, "2025-06-02")
	require.NoError(t, err)

	require.Len(t, board.Ochtend, 1)
	assert.Equal(t, "Borstels spoelen", board.Ochtend[0].Text)
	require.Len(t, board.Middag, 1)
	assert.Equal(t, "Folie bestellen", board.Middag[0].Text)
	assert.Empty(t, board.Avond)
}

func TestTaskServiceBoardExcludesFutureDayTask(t *testing.T) {
	svc, dayRepo, _, _ := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Morgen pas", Date: "2025-06-03", Repeat: entities.RepeatOnce,
		TimeBlock: entities.BlockOchtend,
	}))

	board, err := svc.BoardFor(ctx, "2025-06-02")
	require.NoError(t, err)
	assert.Empty(t, board.Ochtend)
	assert.Empty(t, board.Middag)
	assert.Empty(t, board.Avond)
}

func TestTaskServiceWeekBoardExpandsDaily(t *testing.T) {
	svc, _, weeklyRepo, _ := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, weeklyRepo.Create(ctx, &entities.Task{
		Text: "Terrein vegen", Date: "2020-01-01",
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatDaily,
	}))

	board, err := svc.WeekBoard(ctx, 7)
	require.NoError(t, err)

	require.Len(t, board, 7)
	for date, tasks := range board {
		require.Len(t, tasks, 1, "daily task missing on %s", date)
		assert.Equal(t, "Terrein vegen", tasks[0].Text)
	}
}

func TestTaskServiceCompletedTasksFiltersByDate(t *testing.T) {
	svc, dayRepo, _, _ := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Klaar", Date: "2025-06-02", Done: true,
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatOnce,
	}))
	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Ook klaar", Date: "2025-06-03", Done: true,
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatOnce,
	}))
	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Open", Date: "2025-06-02", Done: false,
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatOnce,
	}))

	all, err := svc.CompletedTasks(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := svc.CompletedTasks(ctx, "2025-06-02")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "Klaar", day[0].Text)
}

func TestTaskServiceOverviewGroupsByDateAndBlock(t *testing.T) {
	svc, dayRepo, _, _ := newTaskService(t)
	ctx := context.Background()

	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Ochtendronde", Date: "2025-06-02",
		TimeBlock: entities.BlockOchtend, Repeat: entities.RepeatOnce,
	}))
	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Avondronde", Date: "2025-06-02",
		TimeBlock: entities.BlockAvond, Repeat: entities.RepeatOnce,
	}))
	require.NoError(t, dayRepo.Create(ctx, &entities.Task{
		Text: "Middagronde", Date: "2025-06-03",
		TimeBlock: entities.BlockMiddag, Repeat: entities.RepeatOnce,
	}))

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	require.Len(t, overview, 2)
	assert.Len(t, overview["2025-06-02"].Ochtend, 1)
	assert.Len(t, overview["2025-06-02"].Avond, 1)
	assert.Empty(t, overview["2025-06-02"].Middag)
	assert.Len(t, overview["2025-06-03"].Middag, 1)
}

func TestTaskServiceUpdatePartial(t *testing.T) {
	svc, _, _, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, entities.CollectionWeeklyAgenda, ports.CreateTaskRequest{
		Text: "Wasstraat smeren", Date: "2025-06-02", Repeat: entities.RepeatWeekly,
	})
	require.NoError(t, err)

	newBlock := entities.BlockAvond
	updated, err := svc.UpdateTask(ctx, entities.CollectionWeeklyAgenda, task.ID, ports.UpdateTaskRequest{
		TimeBlock: &newBlock,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BlockAvond, updated.TimeBlock)
	assert.Equal(t, "Wasstraat smeren", updated.Text)
	assert.Equal(t, entities.RepeatWeekly, updated.Repeat)
}

func TestTaskServiceDeleteNotFound(t *testing.T) {
	svc, _, _, _ := newTaskService(t)

	err := svc.DeleteTask(context.Background(), entities.CollectionTasks, uuid.New())
	assert.ErrorIs(t, err, entities.ErrTaskNotFound)
}
