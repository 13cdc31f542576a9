package schedule

import (
	"sort"
	"time"

	"github.com/carwashdash/core/internal/domain/entities"
)

// BlockGroup splits one day's tasks into the three time-of-day blocks.
type BlockGroup struct {
	Ochtend []entities.Task `json:"ochtend"`
	Middag  []entities.Task `json:"middag"`
	Avond   []entities.Task `json:"avond"`
}

// GroupByDate partitions tasks by their literal date field. No recurrence
// expansion happens here; buckets preserve input order. Used for the admin
// day view, where the stored date is shown as-is.
func GroupByDate(tasks []entities.Task) map[string][]entities.Task {
	out := make(map[string][]entities.Task)
	for _, t := range tasks {
		out[t.Date] = append(out[t.Date], t)
	}
	return out
}

// GroupByDateAndBlock partitions tasks by literal date and then by time
// block. Tasks with a missing or unknown block land in ochtend.
func GroupByDateAndBlock(tasks []entities.Task) map[string]BlockGroup {
	out := make(map[string]BlockGroup)
	for _, t := range tasks {
		g := out[t.Date]
		switch t.TimeBlock {
		case entities.BlockMiddag:
			g.Middag = append(g.Middag, t)
		case entities.BlockAvond:
			g.Avond = append(g.Avond, t)
		default:
			g.Ochtend = append(g.Ochtend, t)
		}
		out[t.Date] = g
	}
	return out
}

// GroupByBlock splits a single day's tasks into blocks, defaulting unknown
// blocks to ochtend.
func GroupByBlock(tasks []entities.Task) BlockGroup {
	var g BlockGroup
	for _, t := range tasks {
		switch t.TimeBlock {
		case entities.BlockMiddag:
			g.Middag = append(g.Middag, t)
		case entities.BlockAvond:
			g.Avond = append(g.Avond, t)
		default:
			g.Ochtend = append(g.Ochtend, t)
		}
	}
	return g
}

// ExpandOverWindow places every task into each day bucket of the window for
// which it is due, keyed by formatted date. A single stored task shows up
// under multiple dates when its recurrence matches more than one day. The
// input is never mutated and the result is deterministic for a given input
// list and window.
func ExpandOverWindow(tasks []entities.Task, start time.Time, days int) map[string][]entities.Task {
	out := make(map[string][]entities.Task)
	for _, day := range Window(start, days) {
		key := FormatDay(day)
		for _, t := range tasks {
			if TaskDueOn(t, day) {
				out[key] = append(out[key], t)
			}
		}
	}
	return out
}

// ExpandAgendaOverWindow does the same expansion for agenda items.
func ExpandAgendaOverWindow(items []entities.AgendaItem, start time.Time, days int) map[string][]entities.AgendaItem {
	out := make(map[string][]entities.AgendaItem)
	for _, day := range Window(start, days) {
		key := FormatDay(day)
		for _, it := range items {
			if AgendaDueOn(it, day) {
				out[key] = append(out[key], it)
			}
		}
	}
	return out
}

// SortedDates returns the bucket keys of an expanded grouping in ascending
// date order, mirroring how the kiosk renders the week view.
func SortedDates[T any](m map[string][]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
