package schedule

import (
	"time"

	"github.com/carwashdash/core/internal/domain/entities"
)

// DefaultTimezone is the business timezone used when none is configured.
// All due-date decisions are calendar-day decisions in this zone.
const DefaultTimezone = "Europe/Amsterdam"

// DayOf truncates an instant to its calendar day in the given location.
func DayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a stored YYYY-MM-DD date field into a calendar day.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(entities.DateLayout, s)
	if err != nil {
		return time.Time{}, entities.ErrInvalidDate
	}
	return d, nil
}

// FormatDay renders a calendar day back into the stored date format.
func FormatDay(t time.Time) string {
	return t.Format(entities.DateLayout)
}

// IsDue reports whether a record anchored on anchor with the given repeat
// mode is due on target. Both arguments are compared at day granularity.
//
// The anchor is a literal occurrence date for once, and a pattern seed
// (weekday, day-of-month or month+day) for the repeating modes. Every
// repeating mode is lower-bounded by the anchor: a weekly task anchored on
// a Tuesday is not due on Tuesdays before its anchor. There is no month-end
// rollover: a monthly anchor on day 31 never matches a shorter month, and a
// yearly anchor on Feb 29 only matches leap years.
func IsDue(anchor time.Time, repeat entities.Repeat, target time.Time) bool {
	a := truncateDay(anchor)
	t := truncateDay(target)

	switch repeat {
	case entities.RepeatDaily:
		return !t.Before(a)
	case entities.RepeatWeekly:
		return t.Weekday() == a.Weekday() && !t.Before(a)
	case entities.RepeatMonthly:
		return t.Day() == a.Day() && !t.Before(a)
	case entities.RepeatYearly:
		return t.Month() == a.Month() && t.Day() == a.Day() && !t.Before(a)
	default:
		// Unknown or empty modes behave as once.
		return t.Equal(a)
	}
}

// TaskDueOn reports whether a stored task is due on the given day. Tasks
// with an unparseable date are never due; the caller is expected to have
// normalized records at the read boundary already.
func TaskDueOn(task entities.Task, day time.Time) bool {
	anchor, err := ParseDay(task.Date)
	if err != nil {
		return false
	}
	return IsDue(anchor, task.Repeat, day)
}

// AgendaDueOn reports whether an agenda item occurs on the given day,
// reusing the task evaluator through the repeat-mode mapping.
func AgendaDueOn(item entities.AgendaItem, day time.Time) bool {
	anchor, err := ParseDay(item.Date)
	if err != nil {
		return false
	}
	return IsDue(anchor, item.TaskRepeat(), day)
}

// Window returns the days of a window starting at start, in order.
func Window(start time.Time, days int) []time.Time {
	out := make([]time.Time, 0, days)
	d := truncateDay(start)
	for i := 0; i < days; i++ {
		out = append(out, d.AddDate(0, 0, i))
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
