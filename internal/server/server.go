// Package server contains the HTTP transport for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"ripple/internal/cache"
	"ripple/internal/config"
	"ripple/internal/database"
	"ripple/internal/events"
	"ripple/internal/middleware"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/scheduler"
	"ripple/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
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
	publisher      events.Publisher
	scheduler      *scheduler.Scheduler

	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
	followRepo  repository.FollowRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository

	postService       *service.PostService
	feedService       *service.FeedService
	followService     *service.FollowService
	engagementService *service.EngagementService
	userService       *service.UserService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	var publisher events.Publisher
	if cfg.NATSURL != "" {
		publisher, err = events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			return nil, fmt.Errorf("NATS connection failed: %w", err)
		}
	} else {
		publisher = events.NewNopPublisher()
	}

	return NewServerWithDeps(cfg, db, cache.GetClient(), publisher), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher events.Publisher) *Server {
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	prom := fiberprometheus.New("ripple-api")

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		publisher:      publisher,
		userRepo:       userRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		likeRepo:       likeRepo,
		commentRepo:    commentRepo,
	}

	s.postService = service.NewPostService(postRepo, publisher)
	s.feedService = service.NewFeedService(postRepo)
	s.followService = service.NewFollowService(followRepo, userRepo, publisher)
	s.engagementService = service.NewEngagementService(likeRepo, commentRepo, postRepo)
	s.userService = service.NewUserService(userRepo, followRepo, postRepo)
	s.scheduler = scheduler.New(postRepo, publisher)

	return s
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for correlation
	app.Use(requestid.New())

	// Propagate request ID into the request context for logging
	app.Use(middleware.ContextMiddleware())

	// Request tracing
	app.Use(middleware.TracingMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
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

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)

	// Public post routes; viewer identity is optional and only enriches
	// liked_by_viewer / visibility of own scheduled posts.
	publicPosts := api.Group("/posts", middleware.AuthOptional)
	publicPosts.Get("/:id/comments", s.GetComments)
	publicPosts.Get("/:id/likers", s.GetLikers)
	publicPosts.Get("/:id", s.GetPost)

	// Public user routes
	publicUsers := api.Group("/users", middleware.AuthOptional)
	publicUsers.Get("/search", s.SearchUsers)
	publicUsers.Get("/:id/posts", s.GetUserPosts)
	publicUsers.Get("/:id/followers", s.GetFollowers)
	publicUsers.Get("/:id/following", s.GetFollowing)
	publicUsers.Get("/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	protected.Get("/feed", s.GetFeed)

	me := protected.Group("/me")
	me.Get("/", s.GetMyProfile)
	me.Put("/", s.UpdateMyProfile)
	me.Get("/posts/scheduled", s.GetScheduledPosts)
	me.Get("/likes", s.GetLikedPosts)

	posts := protected.Group("/posts")
	posts.Post("/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	// Specific /:id/:resource routes BEFORE the generic /:id route
	posts.Post("/:id/like", s.LikePost)
	posts.Delete("/:id/like", s.UnlikePost)
	posts.Get("/:id/like", s.GetLikeStatus)
	posts.Post("/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	posts.Delete("/:id", s.DeletePost)

	comments := protected.Group("/comments")
	comments.Put("/:id", s.UpdateComment)
	comments.Delete("/:id", s.DeleteComment)

	users := protected.Group("/users")
	users.Post("/:id/follow", middleware.RateLimit(
		s.redis, 30, time.Minute, "follow"), s.FollowUser)
	users.Delete("/:id/follow", s.UnfollowUser)
	users.Get("/:id/follow", s.GetFollowStatus)
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
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The app runs without Redis; readiness only reports it.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database":  dbStatus,
			"redis":     redisStatus,
			"scheduler": s.scheduler.Running(),
		},
		"time": time.Now(),
	})
}

// StartScheduler launches the publication scheduler when enabled.
func (s *Server) StartScheduler() {
	if !s.config.SchedulerEnabled {
		return
	}
	s.scheduler.Start(time.Duration(s.config.SchedulerIntervalMS) * time.Millisecond)
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Ripple API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	s.StartScheduler()

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.scheduler.Stop()

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	if s.publisher != nil {
		s.publisher.Close()
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
