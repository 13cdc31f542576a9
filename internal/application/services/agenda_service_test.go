package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/ports"
)

func newAgendaService(t *testing.T) (*AgendaService, *fakeAgendaRepo) {
	t.Helper()
	repo := newFakeAgendaRepo()
	svc := NewAgendaService(repo, mirror.New(nil), time.UTC, testLogger(t))
	return svc, repo
}

func TestAgendaServiceCreateDefaultsRepeat(t *testing.T) {
	svc, _ := newAgendaService(t)

	item, err := svc.CreateItem(context.Background(), ports.CreateAgendaItemRequest{
		Title: "Onderhoudsmonteur",
		Date:  "2025-06-02",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.AgendaRepeatNone, item.Repeat)
	assert.Nil(t, item.Time)
}

func TestAgendaServiceExportICSAllDay(t *testing.T) {
	svc, repo := newAgendaService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title:  "Keuring wasstraat",
		Date:   "2025-06-02",
		Repeat: entities.AgendaRepeatNone,
	}))

	out, err := svc.ExportICS(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Keuring wasstraat")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20250602")
	assert.NotContains(t, out, "RRULE")
}

func TestAgendaServiceExportICSWeeklyRule(t *testing.T) {
	svc, repo := newAgendaService(t)
	ctx := context.Background()

	// 2025-06-02 is a Monday.
	tm := "09:30"
	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title:  "Teamoverleg",
		Date:   "2025-06-02",
		Time:   &tm,
		Repeat: entities.AgendaRepeatWeekly,
	}))

	out, err := svc.ExportICS(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=MO")
	assert.Contains(t, out, "SUMMARY:Teamoverleg")
}

func TestAgendaServiceExportICSMonthlyRule(t *testing.T) {
	svc, repo := newAgendaService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title:  "Voorraadtelling",
		Date:   "2025-06-15",
		Repeat: entities.AgendaRepeatMonthly,
	}))

	out, err := svc.ExportICS(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "RRULE:FREQ=MONTHLY;BYMONTHDAY=15")
}

func TestAgendaServiceExportICSSkipsMalformedDates(t *testing.T) {
	svc, repo := newAgendaService(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title: "Kapot", Date: "not-a-date", Repeat: entities.AgendaRepeatNone,
	}))
	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title: "Heel", Date: "2025-06-02", Repeat: entities.AgendaRepeatNone,
	}))

	out, err := svc.ExportICS(ctx)
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY:Heel")
	assert.NotContains(t, out, "SUMMARY:Kapot")
	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
}

func TestAgendaServiceWeekViewExpandsWeekly(t *testing.T) {
	svc, repo := newAgendaService(t)
	ctx := context.Background()

	// Anchored far in the past so the item is due within any 7-day window.
	require.NoError(t, repo.Create(ctx, &entities.AgendaItem{
		Title: "Wekelijkse schoonmaak", Date: "2020-01-06", Repeat: entities.AgendaRepeatWeekly,
	}))

	view, err := svc.WeekView(ctx, 7)
	require.NoError(t, err)

	total := 0
	for _, items := range view {
		total += len(items)
	}
	assert.Equal(t, 1, total, "weekly item appears exactly once in a 7-day window")
}

func TestAgendaServiceUpdatePartial(t *testing.T) {
	svc, _ := newAgendaService(t)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, ports.CreateAgendaItemRequest{
		Title: "Leverancier", Date: "2025-06-02",
	})
	require.NoError(t, err)

	newTitle := "Leverancier chemie"
	updated, err := svc.UpdateItem(ctx, item.ID, ports.UpdateAgendaItemRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Leverancier chemie", updated.Title)
	assert.Equal(t, "2025-06-02", updated.Date)
}
