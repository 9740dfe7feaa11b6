package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/johnquangdev/sponsor-digest/docs"
	"github.com/johnquangdev/sponsor-digest/internal/adapter/handler"
	"github.com/johnquangdev/sponsor-digest/internal/adapter/repository"
	domainrepo "github.com/johnquangdev/sponsor-digest/internal/domain/repositories"
	"github.com/johnquangdev/sponsor-digest/internal/infrastructure/cache"
	"github.com/johnquangdev/sponsor-digest/internal/infrastructure/database"
	httpmw "github.com/johnquangdev/sponsor-digest/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/sponsor-digest/internal/infrastructure/storage"
	"github.com/johnquangdev/sponsor-digest/internal/usecase/sponsorship"
	pkgai "github.com/johnquangdev/sponsor-digest/pkg/ai"
	"github.com/johnquangdev/sponsor-digest/pkg/config"
	"github.com/johnquangdev/sponsor-digest/pkg/media"
	"github.com/johnquangdev/sponsor-digest/pkg/sponsorblock"
	pkgvalidator "github.com/johnquangdev/sponsor-digest/pkg/validator"
	"github.com/johnquangdev/sponsor-digest/pkg/youtube"
)

// @title           Sponsor Digest API
// @version         1.0
// @description     Summarizes the sponsored segments of YouTube videos and channels
// @BasePath        /v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := zap.NewProduction()
	if !cfg.IsProduction() {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderXRequestID, httpmw.HeaderAPIKey},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")
	checks := map[string]handler.HealthCheck{}

	// Analysis history is optional
	var runs domainrepo.AnalysisRepository = repository.NoopAnalysisRepository{}
	if cfg.Database.Enabled {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db, cfg.Database.MigrationsDir); err != nil {
				log.Fatalf("Failed to run migrations: %v", err)
			}
		} else {
			log.Println("🔄 Skipping migrations; run cmd/migrate to manage the schema")
		}
		runs = repository.NewAnalysisRepository(db)

		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	} else {
		log.Println("⚠️  Database disabled; analysis runs will not be persisted")
	}

	// Report cache: Redis when enabled, in-process otherwise
	var reports domainrepo.ReportCache
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		reports = repository.NewRedisReportCache(redisClient)

		checks["redis"] = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	} else {
		log.Println("⚠️  Redis disabled; using in-memory report cache")
		store := cache.NewMemoryStoreWithCleanup(time.Minute)
		defer store.Stop()
		reports = repository.NewMemoryReportCache(store)
	}

	// Clip archive is optional
	var archive sponsorship.ClipArchive
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
		archive = minioClient
		checks["storage"] = minioClient.Ping
	}

	// External services
	log.Println("🌐 Initializing external clients...")
	segments := sponsorblock.NewClient(cfg.SponsorBlock.BaseURL, cfg.SponsorBlock.Categories, cfg.SponsorBlock.Timeout)

	ytOpts := []option.ClientOption{}
	if cfg.YouTube.BaseURL != "" {
		ytOpts = append(ytOpts, option.WithEndpoint(cfg.YouTube.BaseURL))
	}
	ytClient, err := youtube.NewClient(context.Background(), cfg.YouTube.APIKey, ytOpts...)
	if err != nil {
		log.Fatalf("Failed to initialize YouTube client: %v", err)
	}

	extractor := media.NewExtractor(
		cfg.Media.YtDlpPath,
		cfg.Media.FFmpegPath,
		cfg.Media.CookiesFile,
		cfg.Media.SampleRate,
		cfg.Media.Channels,
		media.ExecRunner{},
	)

	log.Println("🤖 Initializing AI components...")
	asmClient := pkgai.NewAssemblyAIClient(&cfg.Assembly)
	groqClient := pkgai.NewGroqClient(&cfg.Groq)

	svc := sponsorship.NewSponsorshipService(
		segments,
		extractor,
		asmClient,
		groqClient,
		ytClient,
		archive,
		reports,
		runs,
		sponsorship.OptionsFromConfig(&cfg.Analysis),
		logger,
	)
	sponsorshipHandler := handler.NewSponsorshipHandler(svc, cfg, logger)

	if cfg.Server.APIKey == "" {
		log.Println("⚠️  API_KEY not set; /v1 routes are public")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, sponsorshipHandler, checks)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
