package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/config"
	custommiddleware "storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/settings"
	"storefront/internal/storage"
	"storefront/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.IsDevelopment()))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subcategoryRepo := repository.NewSubcategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	footerPageRepo := repository.NewFooterPageRepository(db)
	socialMediaRepo := repository.NewSocialMediaRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg.JWT.Secret)
	catalogService := service.NewCatalogService(categoryRepo, subcategoryRepo, productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)

	// Settings live in a JSON file, not postgres
	settingsStore := settings.NewStore(cfg.Settings.FilePath)
	settingsNotifier := settings.NewNotifier()

	uploader := newUploader(cfg, logger)

	// Auth middleware chain: bearer token parsing, then the DB-backed admin
	// role check.
	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	optionalAuthMiddleware := custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger)
	requireAdmin := custommiddleware.RequireAdmin(userRepo, logger)
	adminMiddleware := func(next http.Handler) http.Handler {
		return authMiddleware(requireAdmin(next))
	}

	// Rate limit the credential endpoints
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	authRateLimit := custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
		RequestsPerWindow: 20,
		Window:            time.Minute,
		KeyPrefix:         "ratelimit:auth",
	}, logger)

	isDev := cfg.IsDevelopment()

	// Initialize handlers
	authHandler := transport.NewAuthHandler(authService, logger, isDev)
	productHandler := transport.NewProductHandler(catalogService, productRepo, logger, isDev)
	categoryHandler := transport.NewCategoryHandler(catalogService, categoryRepo, logger, isDev)
	subcategoryHandler := transport.NewSubcategoryHandler(catalogService, subcategoryRepo, logger, isDev)
	orderHandler := transport.NewOrderHandler(orderService, logger, isDev)
	reviewHandler := transport.NewReviewHandler(reviewRepo, productRepo, logger, isDev)
	cmsHandler := transport.NewCMSHandler(footerPageRepo, socialMediaRepo, logger, isDev)
	settingsHandler := transport.NewSettingsHandler(settingsStore, settingsNotifier, logger, isDev)
	uploadHandler := transport.NewUploadHandler(uploader, logger, isDev)

	// Register routes
	router.Group(func(r chi.Router) {
		r.Use(authRateLimit)
		authHandler.RegisterRoutes(r, authMiddleware)
	})
	productHandler.RegisterRoutes(router, adminMiddleware)
	categoryHandler.RegisterRoutes(router, adminMiddleware)
	subcategoryHandler.RegisterRoutes(router, adminMiddleware)
	orderHandler.RegisterRoutes(router, adminMiddleware)
	reviewHandler.RegisterRoutes(router, optionalAuthMiddleware, adminMiddleware)
	cmsHandler.RegisterRoutes(router, adminMiddleware)
	settingsHandler.RegisterRoutes(router, adminMiddleware)
	uploadHandler.RegisterRoutes(router, adminMiddleware)

	// Serve local uploads when S3 is not configured
	if cfg.Uploads.S3Bucket == "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.Uploads.LocalDir)))
		router.Get("/uploads/*", fileServer.ServeHTTP)
	}

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
	}

	return server
}

// newUploader picks S3 when a bucket is configured and the local disk
// fallback otherwise.
func newUploader(cfg *config.Config, logger *zap.Logger) storage.Uploader {
	if cfg.Uploads.S3Bucket != "" {
		uploader, err := storage.NewS3Uploader(
			context.Background(),
			cfg.Uploads.S3Region,
			cfg.Uploads.S3Bucket,
			cfg.Uploads.CDNBaseURL,
			logger,
		)
		if err == nil {
			return uploader
		}
		logger.Error("Failed to configure S3 uploader, falling back to local disk", zap.Error(err))
	}

	return &storage.LocalUploader{
		Dir:     cfg.Uploads.LocalDir,
		BaseURL: "/uploads",
	}
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis client", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
