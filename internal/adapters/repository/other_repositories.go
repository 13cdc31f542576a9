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

// AgendaRepositoryImpl implements the AgendaRepository interface
type AgendaRepositoryImpl struct {
	db *sqlx.DB
}

// NewAgendaRepository creates a new agenda repository
func NewAgendaRepository(db *sqlx.DB) ports.AgendaRepository {
	return &AgendaRepositoryImpl{db: db}
}

func (r *AgendaRepositoryImpl) Create(ctx context.Context, item *entities.AgendaItem) error {
	query := `
		INSERT INTO agenda_items (id, title, description, date, time, repeat)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	item.Normalize()

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Description, item.Date, item.Time, item.Repeat,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create agenda item: %w", err)
	}

	return nil
}

func (r *AgendaRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.AgendaItem, error) {
	query := `
		SELECT id, title, description, date, time, repeat, created_at, updated_at
		FROM agenda_items
		WHERE id = $1`

	var item entities.AgendaItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrAgendaNotFound
		}
		return nil, fmt.Errorf("get agenda item by id: %w", err)
	}

	item.Normalize()
	return &item, nil
}

func (r *AgendaRepositoryImpl) Update(ctx context.Context, item *entities.AgendaItem) error {
	query := `
		UPDATE agenda_items
		SET title = $2, description = $3, date = $4, time = $5, repeat = $6,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	item.Normalize()

	err := r.db.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Description, item.Date, item.Time, item.Repeat,
	).Scan(&item.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrAgendaNotFound
		}
		return fmt.Errorf("update agenda item: %w", err)
	}

	return nil
}

func (r *AgendaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM agenda_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete agenda item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrAgendaNotFound
	}

	return nil
}

func (r *AgendaRepositoryImpl) List(ctx context.Context) ([]entities.AgendaItem, error) {
	query := `
		SELECT id, title, description, date, time, repeat, created_at, updated_at
		FROM agenda_items
		ORDER BY date, time NULLS LAST, created_at`

	var items []entities.AgendaItem
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("list agenda items: %w", err)
	}

	for i := range items {
		items[i].Normalize()
	}
	return items, nil
}

// ArticleRepositoryImpl implements the ArticleRepository interface
type ArticleRepositoryImpl struct {
	db *sqlx.DB
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) ports.ArticleRepository {
	return &ArticleRepositoryImpl{db: db}
}

func (r *ArticleRepositoryImpl) Create(ctx context.Context, article *entities.Article) error {
	query := `
		INSERT INTO kennisbank (id, title, content, category)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		article.ID, article.Title, article.Content, article.Category,
	).Scan(&article.CreatedAt, &article.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *ArticleRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Article, error) {
	query := `
		SELECT id, title, content, category, created_at, updated_at
		FROM kennisbank
		WHERE id = $1`

	var article entities.Article
	err := r.db.GetContext(ctx, &article, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrArticleNotFound
		}
		return nil, fmt.Errorf("get article by id: %w", err)
	}

	return &article, nil
}

func (r *ArticleRepositoryImpl) Update(ctx context.Context, article *entities.Article) error {
	query := `
		UPDATE kennisbank
		SET title = $2, content = $3, category = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		article.ID, article.Title, article.Content, article.Category,
	).Scan(&article.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return entities.ErrArticleNotFound
		}
		return fmt.Errorf("update article: %w", err)
	}

	return nil
}

func (r *ArticleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM kennisbank WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrArticleNotFound
	}

	return nil
}

func (r *ArticleRepositoryImpl) List(ctx context.Context) ([]entities.Article, error) {
	query := `
		SELECT id, title, content, category, created_at, updated_at
		FROM kennisbank
		ORDER BY title`

	var articles []entities.Article
	err := r.db.SelectContext(ctx, &articles, query)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}
