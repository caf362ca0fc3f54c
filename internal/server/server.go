// Package server contains the HTTP handlers and route wiring for the API.
package server

import (
	"context"
	"fmt"
	"time"

	"vidtube/internal/cache"
	"vidtube/internal/config"
	"vidtube/internal/database"
	"vidtube/internal/middleware"
	"vidtube/internal/models"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/internal/storage"
	"vidtube/internal/token"

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

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *token.Service

	userRepo     repository.UserRepository
	videoRepo    repository.VideoRepository
	commentRepo  repository.CommentRepository
	tweetRepo    repository.TweetRepository
	likeRepo     repository.LikeRepository
	playlistRepo repository.PlaylistRepository
	subRepo      repository.SubscriptionRepository

	authService     *service.AuthService
	userService     *service.UserService
	videoService    *service.VideoService
	commentService  *service.CommentService
	tweetService    *service.TweetService
	likeService     *service.LikeService
	playlistService *service.PlaylistService
	subService      *service.SubscriptionService
}

// NewServer creates a server instance, connecting to Postgres, Redis and
// blob storage.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	uploader, err := storage.NewMinioStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("blob storage init failed: %w", err)
	}

	return NewServerWithDeps(cfg, db, redisClient, uploader), nil
}

// NewServerWithDeps creates a Server from already-initialized dependencies.
// Tests use this with miniredis, sqlmock or stub uploaders.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, uploader storage.Uploader) *Server {
	tokens := token.NewService(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL(), cfg.RefreshTokenTTL(),
	)

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: fiberprometheus.New("vidtube-api"),
		tokens:         tokens,
	}

	s.userRepo = repository.NewUserRepository(db)
	s.videoRepo = repository.NewVideoRepository(db)
	s.commentRepo = repository.NewCommentRepository(db)
	s.tweetRepo = repository.NewTweetRepository(db)
	s.likeRepo = repository.NewLikeRepository(db)
	s.playlistRepo = repository.NewPlaylistRepository(db)
	s.subRepo = repository.NewSubscriptionRepository(db)

	s.authService = service.NewAuthService(s.userRepo, tokens, uploader)
	s.userService = service.NewUserService(s.userRepo, uploader)
	s.videoService = service.NewVideoService(s.videoRepo, s.userRepo, uploader)
	s.commentService = service.NewCommentService(s.commentRepo, s.videoRepo)
	s.tweetService = service.NewTweetService(s.tweetRepo, s.userRepo)
	s.likeService = service.NewLikeService(s.likeRepo, s.videoRepo, s.commentRepo, s.tweetRepo)
	s.playlistService = service.NewPlaylistService(s.playlistRepo, s.videoRepo)
	s.subService = service.NewSubscriptionService(s.subRepo, s.userRepo)

	return s
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before short-circuiting middlewares so browser clients get
	// CORS headers on error responses too.
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
			return models.RespondWithError(c,
				models.NewTooManyRequestsError("Too many requests, please try again later."))
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api/v1")

	// User and auth routes
	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	users.Post("/refresh-token", s.RefreshToken)

	users.Post("/logout", s.AuthRequired(), s.Logout)
	users.Post("/change-password", s.AuthRequired(), s.ChangePassword)
	users.Get("/current-user", s.AuthRequired(), s.GetCurrentUser)
	users.Patch("/update-account", s.AuthRequired(), s.UpdateAccount)
	users.Patch("/avatar", s.AuthRequired(), s.UpdateAvatar)
	users.Patch("/cover-image", s.AuthRequired(), s.UpdateCoverImage)
	users.Get("/history", s.AuthRequired(), s.GetWatchHistory)
	users.Get("/c/:username", s.OptionalAuth(), s.GetChannelProfile)

	// Video routes
	videos := api.Group("/videos")
	videos.Get("/", s.OptionalAuth(), s.GetVideos)
	videos.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "publish_video"), s.PublishVideo)
	videos.Get("/:id", s.OptionalAuth(), s.GetVideo)
	videos.Patch("/:id", s.AuthRequired(), s.UpdateVideo)
	videos.Delete("/:id", s.AuthRequired(), s.DeleteVideo)
	videos.Patch("/toggle/publish/:id", s.AuthRequired(), s.TogglePublish)

	// Comment routes
	comments := api.Group("/comments")
	comments.Get("/:videoId", s.OptionalAuth(), s.GetComments)
	comments.Post("/:videoId", s.AuthRequired(), middleware.RateLimit(
		s.redis, 20, time.Minute, "create_comment"), s.AddComment)
	comments.Patch("/c/:commentId", s.AuthRequired(), s.UpdateComment)
	comments.Delete("/c/:commentId", s.AuthRequired(), s.DeleteComment)

	// Tweet routes
	tweets := api.Group("/tweets")
	tweets.Post("/", s.AuthRequired(), middleware.RateLimit(
		s.redis, 20, time.Minute, "create_tweet"), s.CreateTweet)
	tweets.Get("/user/:userId", s.OptionalAuth(), s.GetUserTweets)
	tweets.Patch("/:tweetId", s.AuthRequired(), s.UpdateTweet)
	tweets.Delete("/:tweetId", s.AuthRequired(), s.DeleteTweet)

	// Like routes
	likes := api.Group("/likes", s.AuthRequired())
	likes.Post("/toggle/v/:videoId", s.ToggleVideoLike)
	likes.Post("/toggle/c/:commentId", s.ToggleCommentLike)
	likes.Post("/toggle/t/:tweetId", s.ToggleTweetLike)
	likes.Get("/videos", s.GetLikedVideos)

	// Playlist routes
	playlists := api.Group("/playlists")
	playlists.Post("/", s.AuthRequired(), s.CreatePlaylist)
	playlists.Get("/user/:userId", s.GetUserPlaylists)
	playlists.Get("/:playlistId", s.GetPlaylist)
	playlists.Patch("/:playlistId", s.AuthRequired(), s.UpdatePlaylist)
	playlists.Delete("/:playlistId", s.AuthRequired(), s.DeletePlaylist)
	playlists.Patch("/add/:videoId/:playlistId", s.AuthRequired(), s.AddVideoToPlaylist)
	playlists.Patch("/remove/:videoId/:playlistId", s.AuthRequired(), s.RemoveVideoFromPlaylist)

	// Subscription routes
	subs := api.Group("/subscriptions")
	subs.Post("/c/:channelId", s.AuthRequired(), s.ToggleSubscription)
	subs.Get("/c/:channelId", s.GetChannelSubscribers)
	subs.Get("/u/:subscriberId", s.GetSubscribedChannels)
}

// Shutdown releases the server's external connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			middleware.Logger.WarnContext(ctx, "redis close failed", "error", err)
		}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports dependency health. Postgres and Redis must both
// answer for the service to be ready.
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
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overall := "healthy"
	if dbStatus != "healthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overall = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}
