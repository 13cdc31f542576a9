package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// ArticleService manages the kennisbank knowledge base. Articles are
// admin-authored and read-only on the kiosk.
type ArticleService struct {
	repo   ports.ArticleRepository
	mirror *mirror.Mirror
	logger *logger.Logger
}

// NewArticleService creates a new article service
func NewArticleService(repo ports.ArticleRepository, m *mirror.Mirror, logger *logger.Logger) *ArticleService {
	return &ArticleService{
		repo:   repo,
		mirror: m,
		logger: logger,
	}
}

// CreateArticle creates a kennisbank article
func (s *ArticleService) CreateArticle(ctx context.Context, req ports.CreateArticleRequest) (*entities.Article, error) {
	article := &entities.Article{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.LogWriteFailure(entities.CollectionKennisbank, "create", err)
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Info("Article created successfully", "article_id", article.ID)
	s.publish(ctx)

	return article, nil
}

// GetArticle retrieves an article by ID
func (s *ArticleService) GetArticle(ctx context.Context, id uuid.UUID) (*entities.Article, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateArticle updates an article's fields
func (s *ArticleService) UpdateArticle(ctx context.Context, id uuid.UUID, req ports.UpdateArticleRequest) (*entities.Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Category != nil {
		article.Category = req.Category
	}

	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.LogWriteFailure(entities.CollectionKennisbank, "update", err)
		return nil, fmt.Errorf("failed to update article: %w", err)
	}

	s.logger.Info("Article updated successfully", "article_id", article.ID)
	s.publish(ctx)

	return article, nil
}

// DeleteArticle deletes an article
func (s *ArticleService) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err != entities.ErrArticleNotFound {
			s.logger.LogWriteFailure(entities.CollectionKennisbank, "delete", err)
		}
		return err
	}

	s.logger.Info("Article deleted successfully", "article_id", id)
	s.publish(ctx)

	return nil
}

// ListArticles lists all kennisbank articles ordered by title
func (s *ArticleService) ListArticles(ctx context.Context) ([]entities.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) publish(ctx context.Context) {
	articles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("Failed to refresh snapshot after write", "collection", entities.CollectionKennisbank, "error", err)
		return
	}
	s.mirror.Publish(entities.CollectionKennisbank, articles)
}
