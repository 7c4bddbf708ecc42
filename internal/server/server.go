// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "chronicle/docs" // swagger docs
	"chronicle/internal/cache"
	"chronicle/internal/config"
	"chronicle/internal/database"
	"chronicle/internal/identity"
	"chronicle/internal/media"
	"chronicle/internal/middleware"
	"chronicle/internal/models"
	"chronicle/internal/notifications"
	"chronicle/internal/repository"
	"chronicle/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config            *config.Config
	db                *gorm.DB
	redis             *redis.Client
	app               *fiber.App
	promMiddleware    *fiberprometheus.FiberPrometheus
	shutdownCtx       context.Context
	shutdownFn        context.CancelFunc
	verifier          identity.Verifier
	uploader          media.Uploader
	userRepo          repository.UserRepository
	postRepo          repository.PostRepository
	commentRepo       repository.CommentRepository
	galleryRepo       repository.GalleryRepository
	notifier          *notifications.Notifier
	hub               *notifications.Hub
	userService       *service.UserService
	postService       *service.PostService
	commentService    *service.CommentService
	engagementService *service.EngagementService
	galleryService    *service.GalleryService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	verifier := identity.NewGoogleVerifier(
		cfg.GoogleTokenInfoURL, cfg.GoogleUserInfoURL, cfg.GoogleClientID, redisClient)
	uploader := media.NewBlobUploader(cfg.BlobUploadURL, cfg.BlobAPIKey)

	return NewServerWithDeps(cfg, db, redisClient, verifier, uploader)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	verifier identity.Verifier,
	uploader media.Uploader,
) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("chronicle-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		verifier:       verifier,
		uploader:       uploader,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		galleryRepo:    galleryRepo,
	}
	server.userService = service.NewUserService(userRepo, postRepo)
	server.postService = service.NewPostService(postRepo, userRepo, uploader)
	server.commentService = service.NewCommentService(commentRepo, postRepo)
	server.engagementService = service.NewEngagementService(postRepo, galleryRepo, userRepo)
	server.galleryService = service.NewGalleryService(galleryRepo, userRepo, uploader)

	// Initialize notifier and hub if Redis is available
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub()
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// OpenTelemetry spans per request
	app.Use(middleware.TracingMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
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

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// User routes. Every one of these needs a verified Google identity;
	// userLogin is the one that may run before a local user row exists.
	user := api.Group("/user", s.AuthRequired())
	user.Get("/userLogin", middleware.RateLimit(
		s.redis, 20, time.Minute, "login"), s.UserLogin)
	user.Get("/userDetails", s.UserDetails)
	user.Post("/makeAuthor", s.MakeAuthor)
	user.Get("/isAuthor", s.IsAuthor)
	user.Get("/myBlogs", s.MyBlogs)
	user.Get("/myLikedPosts", s.MyLikedPosts)

	// Public post routes (browse)
	post := api.Group("/post")
	post.Get("/getHomePosts", s.GetHomePosts)
	post.Get("/getPost/:postId", s.GetPost)
	post.Get("/getRecentNews/:recentCount", s.GetRecentNews)
	post.Get("/getCategory/:category", s.GetCategory)
	post.Get("/allArticles", s.AllArticles)
	post.Get("/trending", s.GetTrending)
	post.Get("/getAllGalleries", s.GetAllGalleries)

	// Protected post routes
	protected := api.Group("/post", s.AuthRequired())
	protected.Post("/createPost/:type", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_post"), s.CreatePost)
	protected.Post("/updatePost", s.UpdatePost)
	protected.Post("/deletePost", s.DeletePost)
	protected.Post("/likePost", middleware.RateLimit(
		s.redis, 30, time.Minute, "toggle_like"), s.LikePost)
	protected.Post("/likeGallery", middleware.RateLimit(
		s.redis, 30, time.Minute, "toggle_like"), s.LikeGallery)
	protected.Post("/trending/:postId", s.AddTrending)
	protected.Delete("/trending/:postId", s.RemoveTrending)
	protected.Post("/comment", middleware.RateLimit(
		s.redis, 10, time.Minute, "create_comment"), s.CreateComment)
	protected.Post("/editComment", s.EditComment)
	protected.Post("/deleteComment", s.DeleteComment)
	protected.Post("/creategallery", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "create_gallery"), s.CreateGallery)
	protected.Delete("/galleries/:galleryId/image", s.DeleteGalleryImage)
	protected.Delete("/galleries/:galleryId", s.DeleteGallery)

	// Websocket feed - protected by AuthRequired
	ws := api.Group("/ws", s.AuthRequired())
	ws.Get("/", s.WebsocketHandler())
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
		// Redis is considered required for full readiness in this app
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
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

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName:   "Chronicle API",
		BodyLimit: 32 * 1024 * 1024, // gallery uploads carry several images
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire the feed hub to the Redis subscriber if available
	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop the wiring goroutine
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
