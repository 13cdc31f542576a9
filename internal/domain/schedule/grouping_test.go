package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carwashdash/core/internal/domain/entities"
)

func newTask(text, date string, block entities.TimeBlock, repeat entities.Repeat) entities.Task {
	return entities.Task{
		ID:        uuid.New(),
		Text:      text,
		Date:      date,
		TimeBlock: block,
		Repeat:    repeat,
	}
}

func TestGroupByDate(t *testing.T) {
	a := newTask("stofzuigers legen", "2025-06-10", entities.BlockOchtend, entities.RepeatOnce)
	b := newTask("borstels controleren", "2025-06-10", entities.BlockMiddag, entities.RepeatOnce)
	c := newTask("kassa tellen", "2025-06-11", entities.BlockAvond, entities.RepeatOnce)

	groups := GroupByDate([]entities.Task{a, b, c})

	require.Len(t, groups, 2)
	assert.Equal(t, []entities.Task{a, b}, groups["2025-06-10"])
	assert.Equal(t, []entities.Task{c}, groups["2025-06-11"])
}

func TestGroupByDateAndBlockDefaultsToOchtend(t *testing.T) {
	a := newTask("wasstraat spoelen", "2025-06-10", "", entities.RepeatOnce)
	b := newTask("doeken wassen", "2025-06-10", entities.BlockAvond, entities.RepeatOnce)

	groups := GroupByDateAndBlock([]entities.Task{a, b})

	require.Contains(t, groups, "2025-06-10")
	g := groups["2025-06-10"]
	assert.Equal(t, []entities.Task{a}, g.Ochtend)
	assert.Empty(t, g.Middag)
	assert.Equal(t, []entities.Task{b}, g.Avond)
}

func TestGroupByDateAndBlockIdempotentAndComplete(t *testing.T) {
	tasks := []entities.Task{
		newTask("a", "2025-06-10", entities.BlockOchtend, entities.RepeatOnce),
		newTask("b", "2025-06-10", entities.BlockMiddag, entities.RepeatOnce),
		newTask("c", "2025-06-10", entities.BlockAvond, entities.RepeatOnce),
		newTask("d", "2025-06-10", "", entities.RepeatOnce),
		newTask("e", "2025-06-11", entities.BlockMiddag, entities.RepeatOnce),
	}

	first := GroupByDateAndBlock(tasks)
	second := GroupByDateAndBlock(tasks)
	assert.Equal(t, first, second)

	// The union of the three blocks per date equals the input set for that
	// date: nothing is dropped, nothing is duplicated.
	for date, g := range first {
		var union []entities.Task
		union = append(union, g.Ochtend...)
		union = append(union, g.Middag...)
		union = append(union, g.Avond...)

		var want []entities.Task
		for _, task := range tasks {
			if task.Date == date {
				want = append(want, task)
			}
		}
		assert.ElementsMatch(t, want, union)
	}
}

func TestExpandOverWindowWeeklyAnchor(t *testing.T) {
	// Weekly task anchored on Tuesday 2025-05-06, expanded over the week
	// starting Sunday 2025-06-01: it must land on 2025-06-03 and nowhere
	// else.
	weekly := newTask("machinekamer check", "2025-05-06", entities.BlockOchtend, entities.RepeatWeekly)

	groups := ExpandOverWindow([]entities.Task{weekly}, day("2025-06-01"), 7)

	require.Len(t, groups, 1)
	require.Contains(t, groups, "2025-06-03")
	assert.Equal(t, []entities.Task{weekly}, groups["2025-06-03"])
}

func TestExpandOverWindowDailyAppearsEveryDay(t *testing.T) {
	daily := newTask("terrein vegen", "2025-05-01", entities.BlockOchtend, entities.RepeatDaily)

	groups := ExpandOverWindow([]entities.Task{daily}, day("2025-06-01"), 7)

	require.Len(t, groups, 7)
	for _, d := range Window(day("2025-06-01"), 7) {
		assert.Len(t, groups[FormatDay(d)], 1)
	}
}

func TestExpandOverWindowDoesNotMutateInput(t *testing.T) {
	tasks := []entities.Task{
		newTask("a", "2025-06-02", entities.BlockOchtend, entities.RepeatOnce),
		newTask("b", "2025-05-05", entities.BlockMiddag, entities.RepeatWeekly),
	}
	before := make([]entities.Task, len(tasks))
	copy(before, tasks)

	_ = ExpandOverWindow(tasks, day("2025-06-01"), 7)

	assert.Equal(t, before, tasks)
}

func TestExpandAgendaOverWindow(t *testing.T) {
	items := []entities.AgendaItem{
		{ID: uuid.New(), Title: "leverancier", Date: "2025-05-06", Repeat: entities.AgendaRepeatWeekly},
		{ID: uuid.New(), Title: "keuring", Date: "2025-06-05", Repeat: entities.AgendaRepeatNone},
	}

	groups := ExpandAgendaOverWindow(items, day("2025-06-01"), 7)

	require.Contains(t, groups, "2025-06-03")
	require.Contains(t, groups, "2025-06-05")
	assert.Equal(t, "leverancier", groups["2025-06-03"][0].Title)
	assert.Equal(t, "keuring", groups["2025-06-05"][0].Title)
}

func TestSortedDates(t *testing.T) {
	m := map[string][]entities.Task{
		"2025-06-03": nil,
		"2025-06-01": nil,
		"2025-06-02": nil,
	}
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, SortedDates(m))
}
