package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrAgendaNotFound  = errors.New("agenda item not found")
	ErrArticleNotFound = errors.New("article not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidDate     = errors.New("invalid calendar date")
	ErrUnauthorized    = errors.New("unauthorized")
)

// DateLayout is the wire and storage format for calendar dates. Dates are
// calendar days in the configured business timezone, never instants.
const DateLayout = "2006-01-02"

// Enums and types
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleKiosk UserRole = "kiosk"
)

type Repeat string

const (
	RepeatOnce    Repeat = "once"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
	RepeatYearly  Repeat = "yearly"
)

type TimeBlock string

const (
	BlockOchtend TimeBlock = "ochtend"
	BlockMiddag  TimeBlock = "middag"
	BlockAvond   TimeBlock = "avond"
)

type AgendaRepeat string

const (
	AgendaRepeatNone    AgendaRepeat = "none"
	AgendaRepeatWeekly  AgendaRepeat = "weekly"
	AgendaRepeatMonthly AgendaRepeat = "monthly"
)

type OrderType string

const (
	OrderKleding    OrderType = "kleding"
	OrderOnderdelen OrderType = "onderdelen"
	OrderProducten  OrderType = "producten"
	OrderOverige    OrderType = "overige"
)

// Collection names as used by the mirror and the stream endpoint.
const (
	CollectionTasks        = "tasks"
	CollectionWeeklyAgenda = "weekly_agenda"
	CollectionAgendaItems  = "agenda_items"
	CollectionKennisbank   = "kennisbank"
	CollectionOrders       = "orders"
)

// Task represents a board task. Day tasks live in the tasks collection,
// recurring board tasks in weekly_agenda; both share this shape. For a
// recurring task Date is the anchor date, not a literal occurrence date.
type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Notes     string    `json:"notes" db:"notes"`
	Date      string    `json:"date" db:"date"`
	TimeBlock TimeBlock `json:"time_block" db:"time_block"`
	Repeat    Repeat    `json:"repeat" db:"repeat"`
	Done      bool      `json:"done" db:"done"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// AgendaItem represents a dated agenda entry, optionally repeating.
type AgendaItem struct {
	ID          uuid.UUID    `json:"id" db:"id"`
	Title       string       `json:"title" db:"title"`
	Description string       `json:"description" db:"description"`
	Date        string       `json:"date" db:"date"`
	Time        *string      `json:"time" db:"time"`
	Repeat      AgendaRepeat `json:"repeat" db:"repeat"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// Article represents a kennisbank article. The expanded/collapsed state on
// the kiosk is purely client-local and is never persisted here.
type Article struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	Category  *string   `json:"category" db:"category"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Order represents a supply-order request submitted from the kiosk.
// Archiving is a soft delete: archived orders stay queryable but are
// filtered out of the default admin list.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Type      OrderType `json:"type" db:"type"`
	Text      string    `json:"text" db:"text"`
	Target    string    `json:"target" db:"target"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Done      bool      `json:"done" db:"done"`
	Archived  bool      `json:"archived" db:"archived"`
}

// User represents an account for the admin console or a shared kiosk login.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Normalize defaults malformed or missing enum values at the store-read
// boundary so downstream grouping never sees an unknown block or repeat.
func (t *Task) Normalize() {
	if !t.TimeBlock.IsValid() {
		t.TimeBlock = BlockOchtend
	}
	if !t.Repeat.IsValid() {
		t.Repeat = RepeatOnce
	}
}

// AnchorDate parses the stored date field as a calendar day.
func (t *Task) AnchorDate() (time.Time, error) {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

func (a *AgendaItem) Normalize() {
	if !a.Repeat.IsValid() {
		a.Repeat = AgendaRepeatNone
	}
}

func (a *AgendaItem) AnchorDate() (time.Time, error) {
	d, err := time.Parse(DateLayout, a.Date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// TaskRepeat maps the agenda repeat mode onto the task recurrence modes so
// both entity families share one evaluator.
func (a *AgendaItem) TaskRepeat() Repeat {
	switch a.Repeat {
	case AgendaRepeatWeekly:
		return RepeatWeekly
	case AgendaRepeatMonthly:
		return RepeatMonthly
	default:
		return RepeatOnce
	}
}

func (o *Order) Normalize() {
	if !o.Type.IsValid() {
		o.Type = OrderOverige
	}
}

// Utility methods
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleKiosk:
		return true
	default:
		return false
	}
}

func (r Repeat) IsValid() bool {
	switch r {
	case RepeatOnce, RepeatDaily, RepeatWeekly, RepeatMonthly, RepeatYearly:
		return true
	default:
		return false
	}
}

func (tb TimeBlock) IsValid() bool {
	switch tb {
	case BlockOchtend, BlockMiddag, BlockAvond:
		return true
	default:
		return false
	}
}

func (ar AgendaRepeat) IsValid() bool {
	switch ar {
	case AgendaRepeatNone, AgendaRepeatWeekly, AgendaRepeatMonthly:
		return true
	default:
		return false
	}
}

func (ot OrderType) IsValid() bool {
	switch ot {
	case OrderKleding, OrderOnderdelen, OrderProducten, OrderOverige:
		return true
	default:
		return false
	}
}
