package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	maintenanceUC "github.com/chroma-excellence/chromaqa/internal/application/maintenance/usecases"
	portalUC "github.com/chroma-excellence/chromaqa/internal/application/portal/usecases"
	reportUC "github.com/chroma-excellence/chromaqa/internal/application/report/usecases"
	schoolUC "github.com/chroma-excellence/chromaqa/internal/application/school/usecases"
	"github.com/chroma-excellence/chromaqa/internal/domain/capability"
	"github.com/chroma-excellence/chromaqa/internal/domain/shared/events"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/ai"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/auth"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/cache"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/config"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/database"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/email"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/markdown"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/migration"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/permission"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/persistence/seeds"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/ratelimit"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/repository"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/scheduler"
	"github.com/chroma-excellence/chromaqa/internal/infrastructure/storage"
	httpRouter "github.com/chroma-excellence/chromaqa/internal/interfaces/http"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/handlers"
	"github.com/chroma-excellence/chromaqa/internal/interfaces/http/middleware"
	"github.com/chroma-excellence/chromaqa/internal/shared/clock"
	"github.com/chroma-excellence/chromaqa/internal/shared/logger"
)

var (
	env           string
	autoMigrate   bool
	templatesPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the ChromaQA HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run pending database migrations on startup (not recommended for production)")
	cmd.Flags().StringVar(&templatesPath, "templates", "./configs/templates.yaml", "Path to the checklist template seed file (empty to skip seeding)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()
	db := database.Get()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production, this is not recommended")
		}
		if err := migration.Up(db, cfg.Database.Driver); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	clk := clock.NewSystemClock()

	reportRepo := repository.NewReportRepository(db)
	schoolRepo := repository.NewSchoolRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	if templatesPath != "" {
		if err := seeds.SeedTemplates(context.Background(), templatesPath, templateRepo, log); err != nil {
			return fmt.Errorf("failed to seed checklist templates: %w", err)
		}
	}

	grantStore, err := permission.NewCasbinGrantStore(db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize grant store: %w", err)
	}
	registry, err := capability.NewRegistry(context.Background(), grantStore)
	if err != nil {
		return fmt.Errorf("failed to load capability registry: %w", err)
	}

	tokens := auth.NewStaffTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	hasher := auth.NewBcryptPINHasher(cfg.Portal.BcryptCost)
	sessions := cache.NewRedisSessionStore(redisClient, clk)
	limiter := ratelimit.NewRedisLoginLimiter(
		redisClient,
		cfg.Portal.LoginRateLimit,
		time.Duration(cfg.Portal.LoginRateWindowSec)*time.Second,
	)
	generator := ai.NewHTTPSummaryGenerator(&cfg.AI)
	renderer := markdown.NewRenderer()

	var photoStore handlers.PhotoStore
	var photoFiles reportUC.PhotoFileStore
	switch cfg.Storage.Driver {
	case "gcs":
		gcsStore, err := storage.NewGCSPhotoStore(context.Background(), &cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to initialize photo storage: %w", err)
		}
		defer gcsStore.Close()
		photoStore = gcsStore
		photoFiles = gcsStore
		log.Infow("photo storage ready", "driver", "gcs", "bucket", cfg.Storage.Bucket)
	case "local", "":
		localStore := storage.NewLocalPhotoStore(cfg.Storage.PhotoDir)
		photoStore = localStore
		photoFiles = localStore
		log.Infow("photo storage ready", "driver", "local", "photo_dir", cfg.Storage.PhotoDir)
	default:
		return fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if cfg.Email.Enabled {
		notifier := email.NewReviewNotifier(&cfg.Email, cfg.Email.Reviewers, log)
		if err := notifier.Register(eventDispatcher); err != nil {
			return fmt.Errorf("failed to register review notifier: %w", err)
		}
		log.Infow("review notifications enabled", "reviewers", len(cfg.Email.Reviewers))
	}

	sessionTTL := time.Duration(cfg.Portal.SessionTTLHours) * time.Hour
	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second

	createUC := reportUC.NewCreateReportUseCase(reportRepo, schoolRepo, templateRepo, registry, clk, log)
	saveUC := reportUC.NewSaveResponsesUseCase(reportRepo, registry, clk, log)
	submitUC := reportUC.NewSubmitReportUseCase(reportRepo, templateRepo, registry, eventDispatcher, clk, log)
	startReviewUC := reportUC.NewStartReviewUseCase(reportRepo, registry, clk, log)
	approveUC := reportUC.NewApproveReportUseCase(reportRepo, registry, eventDispatcher, clk, log)
	rejectUC := reportUC.NewRejectReportUseCase(reportRepo, registry, eventDispatcher, clk, log)
	reworkUC := reportUC.NewReworkReportUseCase(reportRepo, registry, clk, log)
	deleteUC := reportUC.NewDeleteReportUseCase(reportRepo, photoRepo, summaryRepo, photoFiles, registry, log)
	getUC := reportUC.NewGetReportUseCase(reportRepo, templateRepo, photoRepo, summaryRepo, registry, log)
	listUC := reportUC.NewListReportsUseCase(reportRepo, registry, log)
	progressUC := reportUC.NewGetProgressUseCase(reportRepo, templateRepo, registry, log)
	summaryUC := reportUC.NewGenerateSummaryUseCase(reportRepo, templateRepo, summaryRepo, generator, registry, clk, log, aiTimeout)
	exportUC := reportUC.NewExportReportUseCase(reportRepo, templateRepo, summaryRepo, renderer, registry, clk, log)
	statsUC := reportUC.NewGetStatsUseCase(reportRepo, templateRepo, registry, log)
	addPhotoUC := reportUC.NewAddPhotoUseCase(reportRepo, photoRepo, registry, clk, log)
	removePhotoUC := reportUC.NewRemovePhotoUseCase(reportRepo, photoRepo, photoFiles, registry, log)

	createSchoolUC := schoolUC.NewCreateSchoolUseCase(schoolRepo, registry, clk, log)
	updateSchoolUC := schoolUC.NewUpdateSchoolUseCase(schoolRepo, registry, clk, log)
	deleteSchoolUC := schoolUC.NewDeleteSchoolUseCase(schoolRepo, reportRepo, registry, log)
	getSchoolUC := schoolUC.NewGetSchoolUseCase(schoolRepo, log)
	listSchoolsUC := schoolUC.NewListSchoolsUseCase(schoolRepo, log)

	loginUC := portalUC.NewLoginUseCase(familyRepo, sessions, hasher, limiter, clk, log, sessionTTL)
	validateUC := portalUC.NewValidateSessionUseCase(sessions, clk, log)
	renewUC := portalUC.NewRenewSessionUseCase(sessions, clk, log, sessionTTL)
	probeUC := portalUC.NewProbeAdminUseCase(tokens, log)

	purgeUC := maintenanceUC.NewPurgeExpiredUseCase(
		[]maintenanceUC.ArtifactSource{storage.NewTempFileSource(cfg.Retention.TempDir)},
		clk,
		log,
	)
	cleanup := scheduler.NewCleanupScheduler(purgeUC, time.Duration(cfg.Retention.SweepIntervalHours)*time.Hour, log)
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	go cleanup.Start(cleanupCtx)

	reportHandler := handlers.NewReportHandler(
		createUC, saveUC, submitUC, startReviewUC, approveUC, rejectUC, reworkUC,
		deleteUC, getUC, listUC, progressUC, summaryUC, exportUC, statsUC,
		addPhotoUC, removePhotoUC, photoStore,
	)
	schoolHandler := handlers.NewSchoolHandler(createSchoolUC, updateSchoolUC, deleteSchoolUC, getSchoolUC, listSchoolsUC)
	checklistHandler := handlers.NewChecklistHandler(templateRepo)
	portalHandler := handlers.NewPortalHandler(loginUC, validateUC, renewUC, probeUC)
	authHandler := handlers.NewAuthHandler(tokens, registry, cfg.Server.Mode == "debug")

	router := httpRouter.NewRouter(httpRouter.RouterDeps{
		AuthHandler:      authHandler,
		ReportHandler:    reportHandler,
		SchoolHandler:    schoolHandler,
		ChecklistHandler: checklistHandler,
		PortalHandler:    portalHandler,
		AuthMiddleware:   middleware.NewAuthMiddleware(tokens, log),
		PortalMiddleware: middleware.NewPortalMiddleware(validateUC, log),
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		Mode:             cfg.Server.Mode,
		Logger:           log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	cleanup.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
