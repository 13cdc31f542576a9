package ports

import (
	"github.com/carwashdash/core/internal/domain/entities"
)

// Request and response types shared between handlers and services.

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

type Claims struct {
	UserID string
	Email  string
	Role   entities.UserRole
}

type CreateTaskRequest struct {
	Text      string             `json:"text" validate:"required"`
	Notes     string             `json:"notes"`
	Date      string             `json:"date" validate:"required,datetime=2006-01-02"`
	TimeBlock entities.TimeBlock `json:"time_block" validate:"omitempty,oneof=ochtend middag avond"`
	Repeat    entities.Repeat    `json:"repeat" validate:"omitempty,oneof=once daily weekly monthly yearly"`
}

type UpdateTaskRequest struct {
	Text      *string             `json:"text"`
	Notes     *string             `json:"notes"`
	Date      *string             `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TimeBlock *entities.TimeBlock `json:"time_block" validate:"omitempty,oneof=ochtend middag avond"`
	Repeat    *entities.Repeat    `json:"repeat" validate:"omitempty,oneof=once daily weekly monthly yearly"`
	Done      *bool               `json:"done"`
}

type CreateAgendaItemRequest struct {
	Title       string                `json:"title" validate:"required"`
	Description string                `json:"description"`
	Date        string                `json:"date" validate:"required,datetime=2006-01-02"`
	Time        *string               `json:"time" validate:"omitempty,datetime=15:04"`
	Repeat      entities.AgendaRepeat `json:"repeat" validate:"omitempty,oneof=none weekly monthly"`
}

type UpdateAgendaItemRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Date        *string                `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time        *string                `json:"time" validate:"omitempty,datetime=15:04"`
	Repeat      *entities.AgendaRepeat `json:"repeat" validate:"omitempty,oneof=none weekly monthly"`
}

type CreateArticleRequest struct {
	Title    string  `json:"title" validate:"required"`
	Content  string  `json:"content"`
	Category *string `json:"category"`
}

type UpdateArticleRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

type CreateOrderRequest struct {
	Type   entities.OrderType `json:"type" validate:"required,oneof=kleding onderdelen producten overige"`
	Text   string             `json:"text" validate:"required"`
	Target string             `json:"target" validate:"required"`
}
