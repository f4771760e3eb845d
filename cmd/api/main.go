package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-portfolio-site/config"
	_ "go-portfolio-site/docs" // Important for Swagger
	v1 "go-portfolio-site/internal/delivery/http/v1"
	"go-portfolio-site/internal/domain"
	"go-portfolio-site/internal/repository/filesystem"
	"go-portfolio-site/internal/repository/memory"
	"go-portfolio-site/internal/repository/postgres"
	redisrepo "go-portfolio-site/internal/repository/redis"
	"go-portfolio-site/internal/repository/sqlite"
	"go-portfolio-site/internal/repository/supabase"
	"go-portfolio-site/internal/usecase"
	"go-portfolio-site/pkg/database"
	"go-portfolio-site/pkg/email"
	"go-portfolio-site/pkg/logger"
	"go-portfolio-site/pkg/redis"
	"go-portfolio-site/pkg/validation"
	"go-portfolio-site/web"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Portfolio Site API
// @version         1.0
// @description     Server-rendered portfolio site with a contact form endpoint.
// @host            localhost:8000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	logger.Log.Info("Starting portfolio site", "port", cfg.Port, "store", cfg.StoreBackend)

	ctx := context.Background()

	// 3. Load site content and templates; both must be sound before serving
	content, err := filesystem.Load(cfg.ContentDir)
	if err != nil {
		logger.Log.Error("Failed to load site content", "dir", cfg.ContentDir, "error", err)
		os.Exit(1)
	}
	portfolioUC := usecase.NewPortfolioUsecase(filesystem.NewPortfolioRepository(content))
	// Acknowledgments are signed by the site owner unless SENDER_NAME says otherwise
	cfg.DefaultSenderName(content.Profile.Name)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}
	if err := dryRunPages(renderer, portfolioUC, content); err != nil {
		logger.Log.Error("Templates do not match site content", "error", err)
		os.Exit(1)
	}

	// 4. Setup Submission Store and Email Service
	contactRepo, closeStore, storeErr := newContactRepository(ctx, cfg)
	defer closeStore()

	emailService, emailErr := email.NewEmailService(cfg)

	// 5. Setup Duplicate Submission Guard
	redisClient := newRedisClient(ctx, cfg)
	var guard domain.SubmissionGuard = memory.NewSubmissionGuard()
	if redisClient != nil {
		defer redisClient.Close()
		guard = redisrepo.NewSubmissionGuard(redisClient)
	}

	// 6. Setup UseCases
	validate := validation.New()
	var contactUC domain.ContactUsecase
	if err := errors.Join(storeErr, emailErr); err != nil {
		logger.Log.Warn("Contact form unavailable", "error", err)
		contactUC = usecase.NewUnavailableContactUsecase(err, validate)
	} else {
		contactUC = usecase.NewContactUsecase(contactRepo, emailService, guard, cfg.IdempotencyTTL, validate)
	}
	healthUC := usecase.NewHealthUsecase(cfg.StoreBackend, storeErr == nil && emailErr == nil)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		PortfolioUC: portfolioUC,
		ContactUC:   contactUC,
		HealthUC:    healthUC,
		Renderer:    renderer,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Room for the store call plus the SMTP session
		WriteTimeout: cfg.StoreTimeout + cfg.SMTPTimeout + 15*time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

// dryRunPages renders every page once so a template/content mismatch stops startup.
func dryRunPages(renderer *web.Renderer, portfolioUC domain.PortfolioUsecase, content *domain.PortfolioData) error {
	for _, page := range web.Pages {
		view := portfolioUC.Page("/")
		if page == web.PageProject {
			var err error
			if view, err = portfolioUC.ProjectPage(content.Projects[0].ID); err != nil {
				return err
			}
		}
		if err := renderer.Execute(io.Discard, page, view); err != nil {
			return fmt.Errorf("page %s: %w", page, err)
		}
	}
	return nil
}

// newContactRepository builds the configured store. On error the returned closer is still safe to call.
func newContactRepository(ctx context.Context, cfg *config.Config) (domain.ContactRepository, func(), error) {
	noop := func() {}

	switch cfg.StoreBackend {
	case config.StoreBackendSupabase:
		repo, err := supabase.NewContactRepository(cfg.SupabaseUrl, cfg.SupabaseKey, cfg.StoreTimeout, nil)
		return repo, noop, err

	case config.StoreBackendPostgres:
		pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			return nil, noop, connectError("postgres", err)
		}
		return postgres.NewContactRepository(pool), pool.Close, nil

	case config.StoreBackendSQLite:
		db, err := database.NewSQLiteConnection(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, noop, connectError("sqlite", err)
		}
		return sqlite.NewContactRepository(db), func() { _ = db.Close() }, nil

	default:
		return nil, noop, &domain.ConfigError{
			Component: "submission store",
			Missing:   []string{fmt.Sprintf("STORE_BACKEND (supabase|postgres|sqlite, got %q)", cfg.StoreBackend)},
		}
	}
}

// connectError keeps configuration errors as they are and reports everything else as a store failure.
func connectError(backend string, err error) error {
	var cfgErr *domain.ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &domain.StoreError{Backend: backend, Err: err}
}

// newRedisClient returns nil when Redis is not configured or unreachable; callers fall back to in-memory state.
func newRedisClient(ctx context.Context, cfg *config.Config) *goredis.Client {
	if cfg.UpstashRedisURL == "" {
		return nil
	}
	client, err := redis.NewClient(ctx, redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	})
	if err != nil {
		logger.Log.Warn("Redis unavailable, using in-memory submission guard", "error", err)
		return nil
	}
	return client
}
