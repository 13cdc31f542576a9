package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carwashdash/core/internal/domain/entities"
)

func day(s string) time.Time {
	d, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIsDueOnce(t *testing.T) {
	anchor := day("2025-06-10")

	assert.True(t, IsDue(anchor, entities.RepeatOnce, day("2025-06-10")))
	assert.False(t, IsDue(anchor, entities.RepeatOnce, day("2025-06-09")))
	assert.False(t, IsDue(anchor, entities.RepeatOnce, day("2025-06-11")))
}

func TestIsDueUnknownRepeatBehavesAsOnce(t *testing.T) {
	anchor := day("2025-06-10")

	assert.True(t, IsDue(anchor, entities.Repeat(""), day("2025-06-10")))
	assert.False(t, IsDue(anchor, entities.Repeat("fortnightly"), day("2025-06-24")))
}

func TestIsDueDailyLowerBounded(t *testing.T) {
	anchor := day("2025-06-10")

	assert.False(t, IsDue(anchor, entities.RepeatDaily, day("2025-06-09")))
	assert.True(t, IsDue(anchor, entities.RepeatDaily, day("2025-06-10")))
	assert.True(t, IsDue(anchor, entities.RepeatDaily, day("2025-06-11")))
	assert.True(t, IsDue(anchor, entities.RepeatDaily, day("2026-01-01")))
}

func TestIsDueWeekly(t *testing.T) {
	// 2025-05-06 is a Tuesday.
	anchor := day("2025-05-06")
	require.Equal(t, time.Tuesday, anchor.Weekday())

	assert.True(t, IsDue(anchor, entities.RepeatWeekly, day("2025-05-06")))
	assert.True(t, IsDue(anchor, entities.RepeatWeekly, day("2025-05-13")))
	assert.True(t, IsDue(anchor, entities.RepeatWeekly, day("2025-06-03")))

	// Same weekday before the anchor is not due.
	assert.False(t, IsDue(anchor, entities.RepeatWeekly, day("2025-04-29")))
	// Other weekdays are never due.
	assert.False(t, IsDue(anchor, entities.RepeatWeekly, day("2025-05-07")))
	assert.False(t, IsDue(anchor, entities.RepeatWeekly, day("2025-06-04")))
}

func TestIsDueMonthlyNoRollover(t *testing.T) {
	anchor := day("2025-01-31")

	assert.True(t, IsDue(anchor, entities.RepeatMonthly, day("2025-01-31")))
	assert.True(t, IsDue(anchor, entities.RepeatMonthly, day("2025-03-31")))
	assert.True(t, IsDue(anchor, entities.RepeatMonthly, day("2025-05-31")))

	// Day 31 never exists in February or April: every single day of those
	// months must be not-due.
	for d := day("2025-02-01"); d.Month() == time.February; d = d.AddDate(0, 0, 1) {
		assert.False(t, IsDue(anchor, entities.RepeatMonthly, d), "due on %s", FormatDay(d))
	}
	for d := day("2025-04-01"); d.Month() == time.April; d = d.AddDate(0, 0, 1) {
		assert.False(t, IsDue(anchor, entities.RepeatMonthly, d), "due on %s", FormatDay(d))
	}

	// Lower bound: day 31 in a month before the anchor.
	assert.False(t, IsDue(anchor, entities.RepeatMonthly, day("2024-12-31")))
}

func TestIsDueYearlyLeapDay(t *testing.T) {
	anchor := day("2024-02-29")

	assert.True(t, IsDue(anchor, entities.RepeatYearly, day("2024-02-29")))
	assert.True(t, IsDue(anchor, entities.RepeatYearly, day("2028-02-29")))

	// Non-leap years have no Feb 29; neither Feb 28 nor Mar 1 substitutes.
	assert.False(t, IsDue(anchor, entities.RepeatYearly, day("2025-02-28")))
	assert.False(t, IsDue(anchor, entities.RepeatYearly, day("2025-03-01")))
	// Before the anchor.
	assert.False(t, IsDue(anchor, entities.RepeatYearly, day("2020-02-29")))
}

func TestTaskDueOnRejectsMalformedDate(t *testing.T) {
	task := entities.Task{Text: "ramen poetsen", Date: "10-06-2025", Repeat: entities.RepeatDaily}
	assert.False(t, TaskDueOn(task, day("2025-06-10")))
}

func TestAgendaDueOn(t *testing.T) {
	item := entities.AgendaItem{Title: "leverancier", Date: "2025-05-06", Repeat: entities.AgendaRepeatWeekly}

	assert.True(t, AgendaDueOn(item, day("2025-06-03")))
	assert.False(t, AgendaDueOn(item, day("2025-06-04")))

	once := entities.AgendaItem{Title: "keuring", Date: "2025-05-06", Repeat: entities.AgendaRepeatNone}
	assert.True(t, AgendaDueOn(once, day("2025-05-06")))
	assert.False(t, AgendaDueOn(once, day("2025-05-13")))
}

func TestDayOfUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation(DefaultTimezone)
	require.NoError(t, err)

	// 23:30 UTC on June 9 is already June 10 in Amsterdam (CEST).
	instant := time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-06-10", FormatDay(DayOf(instant, loc)))
}

func TestWindow(t *testing.T) {
	days := Window(day("2025-06-01"), 7)
	require.Len(t, days, 7)
	assert.Equal(t, "2025-06-01", FormatDay(days[0]))
	assert.Equal(t, "2025-06-07", FormatDay(days[6]))
}
