package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carwashdash/core/internal/application/services"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// ArticleHandler handles kennisbank requests
type ArticleHandler struct {
	articleService *services.ArticleService
	logger         *logger.Logger
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articleService *services.ArticleService, logger *logger.Logger) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		logger:         logger,
	}
}

// CreateArticle handles article creation
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	var req ports.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articleService.CreateArticle(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("Create article failed", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, article)
}

// GetArticle handles getting an article by ID
func (h *ArticleHandler) GetArticle(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	article, err := h.articleService.GetArticle(c.Request().Context(), id)
	if err != nil {
		return notFoundOr(err, entities.ErrArticleNotFound, http.StatusInternalServerError, "Article not found")
	}

	return c.JSON(http.StatusOK, article)
}

// UpdateArticle handles partial article updates
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.articleService.UpdateArticle(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Error("Update article failed", "error", err, "article_id", id)
		return notFoundOr(err, entities.ErrArticleNotFound, http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, article)
}

// DeleteArticle handles article deletion
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.articleService.DeleteArticle(c.Request().Context(), id); err != nil {
		return notFoundOr(err, entities.ErrArticleNotFound, http.StatusInternalServerError, "Failed to delete article")
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Article deleted"})
}

// ListArticles lists all kennisbank articles
func (h *ArticleHandler) ListArticles(c echo.Context) error {
	articles, err := h.articleService.ListArticles(c.Request().Context())
	if err != nil {
		h.logger.Error("List articles failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve articles")
	}

	return c.JSON(http.StatusOK, articles)
}
