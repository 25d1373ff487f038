// Package server contains the HTTP handlers and routing for the film catalog API.
package server

import (
	"context"
	"errors"
	"time"

	_ "filmorate/docs" // swagger docs
	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/repository"
	"filmorate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	films          filmService
	users          userService
	genres         genreService
	mpa            mpaService
}

// NewServer builds repositories and services on top of already-initialized
// database and Redis handles. redisClient may be nil.
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	filmRepo := repository.NewFilmRepository(db)
	userRepo := repository.NewUserRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	mpaRepo := repository.NewMpaRepository(db)

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("filmorate-api"),
		films:          service.NewFilmService(filmRepo, genreRepo, mpaRepo, userRepo),
		users:          service.NewUserService(userRepo),
		genres:         service.NewGenreService(genreRepo),
		mpa:            service.NewMpaService(mpaRepo),
	}
}

// NewApp returns a Fiber app with the API error handler installed.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "Filmorate API",
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: errorHandler,
	})
}

// errorHandler turns errors escaping handlers into the standard error body.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return models.RespondWithError(c, fe.Code, &models.AppError{Code: codeForStatus(fe.Code), Message: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "path", c.Path(), "error", err)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.CorrelationID())

	// Tracing runs before the context middleware so the trace id reaches the logger.
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.CorrelationHeader,
		MaxAge:       86400,
	}))

	// Global rate limiting (300 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Filmorate Metrics Dashboard",
	}))

	api.Get("/swagger/*", swagger.HandlerDefault)

	write := s.writeLimit

	films := api.Group("/films")
	films.Get("/", s.ListFilms)
	films.Post("/", write("film_write"), s.CreateFilm)
	films.Put("/", write("film_write"), s.UpdateFilm)
	// Specific routes before generic /:id
	films.Get("/popular", s.PopularFilms)
	films.Put("/:id/like/:userId", write("like"), s.AddLike)
	films.Delete("/:id/like/:userId", write("like"), s.RemoveLike)
	films.Get("/:id", s.GetFilm)
	films.Delete("/:id", write("film_write"), s.DeleteFilm)

	users := api.Group("/users")
	users.Get("/", s.ListUsers)
	users.Post("/", write("user_write"), s.CreateUser)
	users.Put("/", write("user_write"), s.UpdateUser)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Get("/:id/friends", s.GetFriends)
	users.Put("/:id/friends/:friendId", write("friend"), s.AddFriend)
	users.Delete("/:id/friends/:friendId", write("friend"), s.RemoveFriend)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", write("user_write"), s.DeleteUser)

	genres := api.Group("/genres")
	genres.Get("/", s.ListGenres)
	genres.Post("/", write("reference_write"), s.CreateGenre)
	genres.Put("/", write("reference_write"), s.UpdateGenre)
	genres.Get("/:id", s.GetGenre)

	mpa := api.Group("/mpa")
	mpa.Get("/", s.ListMpa)
	mpa.Post("/", write("reference_write"), s.CreateMpa)
	mpa.Put("/", write("reference_write"), s.UpdateMpa)
	mpa.Get("/:id", s.GetMpa)
}

// writeLimit throttles mutations per client IP through Redis.
func (s *Server) writeLimit(resource string) fiber.Handler {
	limit := 60
	if s.config != nil && s.config.WriteRateLimit > 0 {
		limit = s.config.WriteRateLimit
	}
	return middleware.RateLimit(s.redis, limit, time.Minute, resource)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if s.db == nil || database.Ping(ctx, s.db) != nil {
		dbStatus = "unhealthy"
	}

	// Redis only backs rate limiting, which fails open.
	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app, mounts middleware and routes, and blocks serving on the
// configured port.
func (s *Server) Start() error {
	app := NewApp()
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", "port", s.config.Port, "env", s.config.Env)
	return app.Listen(":" + s.config.Port)
}

// Shutdown stops the HTTP listener and closes the database and Redis handles.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			middleware.Logger.Error("error closing database", "error", err)
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.Error("error closing redis", "error", err)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
