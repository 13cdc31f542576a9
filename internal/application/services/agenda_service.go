package services

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/domain/schedule"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// AgendaService manages the dated agenda collection and its calendar
// projections, including the iCalendar export consumed by external
// calendar clients.
type AgendaService struct {
	repo     ports.AgendaRepository
	mirror   *mirror.Mirror
	location *time.Location
	logger   *logger.Logger
}

// NewAgendaService creates a new agenda service
func NewAgendaService(repo ports.AgendaRepository, m *mirror.Mirror, location *time.Location, logger *logger.Logger) *AgendaService {
	return &AgendaService{
		repo:     repo,
		mirror:   m,
		location: location,
		logger:   logger,
	}
}

// CreateItem creates an agenda item
func (s *AgendaService) CreateItem(ctx context.Context, req ports.CreateAgendaItemRequest) (*entities.AgendaItem, error) {
	item := &entities.AgendaItem{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Repeat:      req.Repeat,
	}
	item.Normalize()

	if _, err := item.AnchorDate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.LogWriteFailure(entities.CollectionAgendaItems, "create", err)
		return nil, fmt.Errorf("failed to create agenda item: %w", err)
	}

	s.logger.Info("Agenda item created successfully", "item_id", item.ID)
	s.publish(ctx)

	return item, nil
}

// GetItem retrieves an agenda item by ID
func (s *AgendaService) GetItem(ctx context.Context, id uuid.UUID) (*entities.AgendaItem, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateItem updates an agenda item's fields
func (s *AgendaService) UpdateItem(ctx context.Context, id uuid.UUID, req ports.UpdateAgendaItemRequest) (*entities.AgendaItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Date != nil {
		item.Date = *req.Date
	}
	if req.Time != nil {
		item.Time = req.Time
	}
	if req.Repeat != nil {
		item.Repeat = *req.Repeat
	}
	item.Normalize()

	if _, err := item.AnchorDate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		s.logger.LogWriteFailure(entities.CollectionAgendaItems, "update", err)
		return nil, fmt.Errorf("failed to update agenda item: %w", err)
	}

	s.logger.Info("Agenda item updated successfully", "item_id", item.ID)
	s.publish(ctx)

	return item, nil
}

// DeleteItem deletes an agenda item
func (s *AgendaService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err != entities.ErrAgendaNotFound {
			s.logger.LogWriteFailure(entities.CollectionAgendaItems, "delete", err)
		}
		return err
	}

	s.logger.Info("Agenda item deleted successfully", "item_id", id)
	s.publish(ctx)

	return nil
}

// ListItems lists all agenda items
func (s *AgendaService) ListItems(ctx context.Context) ([]entities.AgendaItem, error) {
	return s.repo.List(ctx)
}

// WeekView expands the agenda over the coming window, keyed by date. A
// repeating item appears under every date it is due on.
func (s *AgendaService) WeekView(ctx context.Context, days int) (map[string][]entities.AgendaItem, error) {
	if days <= 0 {
		days = 7
	}
	start := schedule.DayOf(time.Now(), s.location)

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load agenda: %w", err)
	}

	return schedule.ExpandAgendaOverWindow(items, start, days), nil
}

// ExportICS renders the full agenda as an iCalendar document. Items with a
// time become timed events in the business timezone, items without one
// become all-day events, and repeating items carry an RRULE so subscribed
// calendars expand them on their side.
func (s *AgendaService) ExportICS(ctx context.Context) (string, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load agenda: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//CarwashDash//Agenda//NL")
	cal.SetName("CarwashDash Agenda")
	cal.SetTimezoneId(s.location.String())

	for _, item := range items {
		anchor, err := item.AnchorDate()
		if err != nil {
			s.logger.Warn("Skipping agenda item with malformed date", "item_id", item.ID, "date", item.Date)
			continue
		}

		event := cal.AddEvent(item.ID.String())
		event.SetSummary(item.Title)
		if item.Description != "" {
			event.SetDescription(item.Description)
		}
		event.SetDtStampTime(time.Now().UTC())

		if item.Time != nil && *item.Time != "" {
			start, err := time.ParseInLocation("2006-01-02 15:04", item.Date+" "+*item.Time, s.location)
			if err != nil {
				s.logger.Warn("Skipping agenda item with malformed time", "item_id", item.ID, "time", *item.Time)
				continue
			}
			event.SetStartAt(start)
			event.SetEndAt(start.Add(time.Hour))
		} else {
			event.SetAllDayStartAt(anchor)
			event.SetAllDayEndAt(anchor.AddDate(0, 0, 1))
		}

		if rule := recurrenceRule(item, anchor); rule != "" {
			event.AddRrule(rule)
		}
	}

	return cal.Serialize(), nil
}

// recurrenceRule renders the item's repeat mode as an RRULE body. The rule
// is anchored on the item's stored date, matching how due-date evaluation
// treats it.
func recurrenceRule(item entities.AgendaItem, anchor time.Time) string {
	var opt rrule.ROption
	switch item.Repeat {
	case entities.AgendaRepeatWeekly:
		opt = rrule.ROption{
			Freq:      rrule.WEEKLY,
			Byweekday: []rrule.Weekday{weekdayOf(anchor)},
		}
	case entities.AgendaRepeatMonthly:
		opt = rrule.ROption{
			Freq:       rrule.MONTHLY,
			Bymonthday: []int{anchor.Day()},
		}
	default:
		return ""
	}
	return opt.RRuleString()
}

func weekdayOf(t time.Time) rrule.Weekday {
	switch t.Weekday() {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}

func (s *AgendaService) publish(ctx context.Context) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to refresh snapshot after write", "collection", entities.CollectionAgendaItems, "error", err)
		return
	}
	s.mirror.Publish(entities.CollectionAgendaItems, items)
}
