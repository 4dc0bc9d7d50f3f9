// Package admin implements the adresponsed server commands.
package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/adresponse/adresponse/internal/api/handlers"
	"github.com/adresponse/adresponse/internal/config"
	"github.com/adresponse/adresponse/internal/database"
	"github.com/adresponse/adresponse/internal/jobs"
	"github.com/adresponse/adresponse/internal/memstore"
	"github.com/adresponse/adresponse/internal/repository"
	"github.com/adresponse/adresponse/internal/seed"
	"github.com/adresponse/adresponse/internal/server"
	"github.com/adresponse/adresponse/internal/service"
	"github.com/adresponse/adresponse/internal/storage"
	"github.com/adresponse/adresponse/internal/telemetry"
	"github.com/adresponse/adresponse/internal/workflow"
)

// analysisPollInterval is how often the background worker checks for
// RFPs awaiting analysis
const analysisPollInterval = 30 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the AdResponse API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		// Default to 10% sampling in production, 100% in development
		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	var (
		rfpRepo     service.RFPRepositoryInterface
		emailRepo   service.EmailRepositoryInterface
		articleRepo service.ArticleRepositoryInterface
		teamRepo    handlers.TeamRepository
		seedStores  seed.Stores
	)

	if cfg.HasDatabase() {
		pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()
		log.Println("connected to database")

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
		}

		rfps := repository.NewRFPRepository(pool)
		emails := repository.NewEmailRepository(pool)
		articles := repository.NewArticleRepository(pool)
		team := repository.NewTeamRepository(pool)

		rfpRepo, emailRepo, articleRepo, teamRepo = rfps, emails, articles, team
		seedStores = seed.Stores{RFPs: rfps, Articles: articles, Team: team, Emails: emails}
	} else {
		log.Println("no database configured, using in-memory stores")

		rfps := memstore.NewRFPStore()
		emails := memstore.NewEmailStore()
		articles := memstore.NewArticleStore()
		team := memstore.NewTeamStore()

		rfpRepo, emailRepo, articleRepo, teamRepo = rfps, emails, articles, team
		seedStores = seed.Stores{RFPs: rfps, Articles: articles, Team: team, Emails: emails}

		// The in-memory mailbox starts empty; without seeding the
		// import flow has nothing to import
		if !cfg.SeedOnStart {
			log.Println("hint: set ADR_SEED_ON_START=true to load sample data")
		}
	}

	if cfg.SeedOnStart {
		if err := seed.Run(ctx, seedStores); err != nil {
			return fmt.Errorf("failed to seed sample data: %w", err)
		}
	}

	var storageClient service.StorageClientInterface
	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready", cfg.S3Bucket)
		storageClient = s3Client
	}

	var stages workflow.StageGenerator
	if cfg.HasOpenAI() {
		stages = workflow.NewOpenAIGenerator(cfg.OpenAIAPIKey)
		log.Println("workflow stages backed by OpenAI")
	} else {
		stages = workflow.NewTemplateGenerator()
	}

	rfpSvc := service.NewRFPService(rfpRepo, emailRepo, stages)
	articleSvc := service.NewArticleService(articleRepo)
	attachmentSvc := service.NewAttachmentService(rfpRepo, storageClient)
	dashboardSvc := service.NewDashboardService(rfpRepo, service.DashboardRates{
		AIResponseRate: cfg.AIResponseRate,
		WinRate:        cfg.WinRate,
	})

	var analysisWorker *jobs.Worker
	if cfg.HasOpenAI() {
		processor := jobs.NewAnalysisWorker(rfpRepo, rfpSvc)
		analysisWorker = jobs.NewWorker(processor, analysisPollInterval)
		go analysisWorker.Start(ctx)
		log.Println("analysis worker started")
	}

	router := server.NewRouter(server.RouterConfig{
		RFPHandler:       handlers.NewRFPHandler(rfpSvc, attachmentSvc),
		ArticleHandler:   handlers.NewArticleHandler(articleSvc),
		TeamHandler:      handlers.NewTeamHandler(teamRepo),
		DashboardHandler: handlers.NewDashboardHandler(dashboardSvc),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	if analysisWorker != nil {
		analysisWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	// golang-migrate needs a database/sql connection
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
