// Package server contains the HTTP handlers for the application's API
// endpoints.
package server

import (
	"context"
	"fmt"
	"time"

	"ticketx/internal/cache"
	"ticketx/internal/config"
	"ticketx/internal/database"
	"ticketx/internal/middleware"
	"ticketx/internal/repository"
	"ticketx/internal/service"
	"ticketx/internal/ticketing"
	"ticketx/internal/uploads"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus

	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	sessionRepo repository.SessionRepository

	identity *service.IdentityService
	graph    *service.SocialGraphService
	content  *service.ContentService
	feeds    *service.FeedService
	gate     *service.SessionGate
	tickets  *ticketing.Service
	uploads  *uploads.Store
}

// NewServer creates a server instance, connecting the database and Redis
// from config.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a nil or miniredis client.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	store, err := uploads.NewStore(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("upload store init failed: %w", err)
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("ticketx-api"),
		userRepo:       userRepo,
		followRepo:     followRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		sessionRepo:    sessionRepo,
		uploads:        store,
	}

	s.identity = service.NewIdentityService(userRepo, sessionRepo)
	s.graph = service.NewSocialGraphService(userRepo, followRepo)
	s.content = service.NewContentService(userRepo, postRepo, commentRepo)
	s.feeds = service.NewFeedService(userRepo, followRepo, postRepo, service.FeedOptions{
		LikeWeight:    cfg.TrendingLikeWeight,
		CommentWeight: cfg.TrendingCommentWeight,
		Decay:         cfg.TrendingDecay,
		PageSize:      cfg.PageSize,
	})
	s.gate = service.NewSessionGate(sessionRepo)

	// The catalog is the fixed demo set, optionally padded with generated
	// filler. The fixed filler seed keeps the catalog identical across
	// restarts and replicas, like the seat maps.
	events := ticketing.MockEvents()
	if cfg.EventFiller > 0 {
		events = append(events, ticketing.RandomEvents(cfg.EventFiller, 1)...)
	}
	s.tickets = ticketing.NewService(events)

	return s, nil
}

// SetupMiddleware configures the middleware stack for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.SessionResolver(s.gate))
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.StructuredLogger())

	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.CSRFHeader,
		AllowCredentials: true,
		MaxAge:           86400,
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Uploaded images are served straight off disk.
	app.Static("/uploads", s.uploads.Dir())

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", s.Logout)
	auth.Get("/me", s.Me)

	// Public browse routes
	api.Get("/feed/global", s.GetGlobalFeed)
	api.Get("/feed/trending", s.GetTrendingFeed)
	api.Get("/tags/:tag", s.GetHashtagFeed)
	api.Get("/mentions/:username", s.GetMentionFeed)
	api.Get("/posts/:id/comments", s.GetComments)
	api.Get("/posts/:id", s.GetPost)
	api.Get("/users", s.ListUsers)
	api.Get("/users/:username", s.GetProfile)
	api.Get("/users/:username/followers", s.GetFollowers)
	api.Get("/users/:username/following", s.GetFollowing)

	// Ticketing routes
	events := api.Group("/events")
	events.Get("/", s.GetEvents)
	events.Get("/:id/seats", s.GetSeats)
	events.Get("/:id", s.GetEvent)

	// Everything below needs a login; state changes also need the CSRF
	// header issued at login.
	protected := api.Group("", middleware.RequireAuth)
	mutating := protected.Group("", middleware.RequireCSRF(s.gate))

	protected.Get("/feed", s.GetFollowingFeed)

	mutating.Put("/users/me", s.UpdateMyProfile)
	mutating.Post("/users/me/avatar", s.UploadAvatar)
	mutating.Post("/users/:username/follow", s.FollowUser)
	mutating.Delete("/users/:username/follow", s.UnfollowUser)

	mutating.Post("/posts", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.CreatePost)
	mutating.Post("/posts/:id/like", s.ToggleLike)
	mutating.Post("/posts/:id/comments", middleware.RateLimit(
		s.redis, 15, time.Minute, "create_comment"), s.CreateComment)

	mutating.Post("/uploads", s.UploadImage)

	mutating.Post("/cart/items", s.AddToCart)
	protected.Get("/cart", s.GetCart)
	mutating.Delete("/cart", s.ClearCart)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports whether the database and Redis are reachable.
// Redis being down degrades readiness but not liveness; the app serves
// without it.
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

	redisStatus := "disabled"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overall := "ready"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "not ready"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"db":     dbStatus,
		"redis":  redisStatus,
	})
}
