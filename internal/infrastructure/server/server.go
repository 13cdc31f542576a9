package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	httpHandlers "github.com/carwashdash/core/internal/adapters/http"
	"github.com/carwashdash/core/internal/adapters/repository"
	"github.com/carwashdash/core/internal/application/mirror"
	"github.com/carwashdash/core/internal/application/services"
	"github.com/carwashdash/core/internal/domain/entities"
	"github.com/carwashdash/core/internal/infrastructure/config"
	"github.com/carwashdash/core/internal/infrastructure/database"
	"github.com/carwashdash/core/internal/infrastructure/logger"
	"github.com/carwashdash/core/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	db     *database.DB
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	location, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	dayTaskRepo := repository.NewTaskRepository(db.DB, entities.CollectionTasks)
	weeklyTaskRepo := repository.NewTaskRepository(db.DB, entities.CollectionWeeklyAgenda)
	agendaRepo := repository.NewAgendaRepository(db.DB)
	articleRepo := repository.NewArticleRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)

	// The mirror fans snapshots out to stream clients; services publish the
	// re-listed collection after each write.
	snapshotMirror := mirror.New(appLogger)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, appLogger)
	taskService := services.NewTaskService(dayTaskRepo, weeklyTaskRepo, snapshotMirror, location, appLogger)
	agendaService := services.NewAgendaService(agendaRepo, snapshotMirror, location, appLogger)
	articleService := services.NewArticleService(articleRepo, snapshotMirror, appLogger)
	orderService := services.NewOrderService(orderRepo, snapshotMirror, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	agendaHandler := httpHandlers.NewAgendaHandler(agendaService, appLogger)
	articleHandler := httpHandlers.NewArticleHandler(articleService, appLogger)
	orderHandler := httpHandlers.NewOrderHandler(orderService, appLogger)
	streamHandler := httpHandlers.NewStreamHandler(snapshotMirror, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, taskHandler, agendaHandler, articleHandler, orderHandler, streamHandler, authService)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())
}

// setupRoutes configures all routes. Admin routes require the admin role;
// the kiosk routes accept both roles so the shared tablet account can read
// boards and submit orders without reaching the management surface.
func (s *Server) setupRoutes(
	authHandler *httpHandlers.AuthHandler,
	taskHandler *httpHandlers.TaskHandler,
	agendaHandler *httpHandlers.AgendaHandler,
	articleHandler *httpHandlers.ArticleHandler,
	orderHandler *httpHandlers.OrderHandler,
	streamHandler *httpHandlers.StreamHandler,
	authService *services.AuthService,
) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes (public)
	authGroup := v1.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authHandler.GetCurrentUser, s.authMiddleware(authService))

	auth := s.authMiddleware(authService)
	adminOnly := s.requireRole(string(entities.UserRoleAdmin))

	// Task collections; :collection is tasks or weekly_agenda
	collectionGroup := v1.Group("/collections/:collection", auth)
	collectionGroup.GET("", taskHandler.ListTasks)
	collectionGroup.POST("", taskHandler.CreateTask, adminOnly)
	collectionGroup.GET("/:id", taskHandler.GetTask)
	collectionGroup.PUT("/:id", taskHandler.UpdateTask, adminOnly)
	collectionGroup.DELETE("/:id", taskHandler.DeleteTask, adminOnly)
	// Done toggles are allowed from the kiosk.
	collectionGroup.PUT("/:id/done", taskHandler.SetTaskDone)

	// Board views (kiosk home)
	boardGroup := v1.Group("/board", auth)
	boardGroup.GET("/today", taskHandler.GetTodayBoard)
	boardGroup.GET("/week", taskHandler.GetWeekBoard)
	boardGroup.GET("/overview", taskHandler.GetOverview, adminOnly)
	boardGroup.GET("/completed", taskHandler.GetCompletedTasks, adminOnly)
	boardGroup.GET("/:date", taskHandler.GetBoardForDate)

	// Agenda routes
	agendaGroup := v1.Group("/agenda", auth)
	agendaGroup.GET("", agendaHandler.ListItems)
	agendaGroup.POST("", agendaHandler.CreateItem, adminOnly)
	agendaGroup.GET("/week", agendaHandler.GetWeekView)
	agendaGroup.GET("/export.ics", agendaHandler.ExportICS)
	agendaGroup.GET("/:id", agendaHandler.GetItem)
	agendaGroup.PUT("/:id", agendaHandler.UpdateItem, adminOnly)
	agendaGroup.DELETE("/:id", agendaHandler.DeleteItem, adminOnly)

	// Kennisbank routes; read-only for the kiosk
	kennisbankGroup := v1.Group("/kennisbank", auth)
	kennisbankGroup.GET("", articleHandler.ListArticles)
	kennisbankGroup.POST("", articleHandler.CreateArticle, adminOnly)
	kennisbankGroup.GET("/:id", articleHandler.GetArticle)
	kennisbankGroup.PUT("/:id", articleHandler.UpdateArticle, adminOnly)
	kennisbankGroup.DELETE("/:id", articleHandler.DeleteArticle, adminOnly)

	// Order routes; submission happens from the kiosk, management is admin
	orderGroup := v1.Group("/orders", auth)
	orderGroup.GET("", orderHandler.ListOrders)
	orderGroup.POST("", orderHandler.CreateOrder)
	orderGroup.GET("/:id", orderHandler.GetOrder)
	orderGroup.PUT("/:id/done", orderHandler.SetOrderDone, adminOnly)
	orderGroup.PUT("/:id/archived", orderHandler.SetOrderArchived, adminOnly)
	orderGroup.DELETE("/:id", orderHandler.DeleteOrder, adminOnly)

	// Snapshot stream
	v1.GET("/stream", streamHandler.Stream, auth)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// authMiddleware validates JWT tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				s.logger.Warn("Invalid token", "error", err, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("claims", claims)

			return next(c)
		}
	}
}

// bearerToken pulls the token from the Authorization header, or from the
// access_token query param as a fallback for the websocket stream, where
// browser clients cannot set headers.
func bearerToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.QueryParam("access_token")
}

// requireRole middleware checks if user has required role
func (s *Server) requireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("claims").(*ports.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Role information not found")
			}

			role := string(claims.Role)
			for _, requiredRole := range roles {
				if role == requiredRole {
					return next(c)
				}
			}

			s.logger.LogSecurityEvent("insufficient_permissions",
				claims.UserID,
				c.RealIP(),
				map[string]interface{}{
					"required_roles": roles,
					"user_role":      role,
					"endpoint":       c.Request().URL.Path,
				})

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
