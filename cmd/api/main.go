package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alfredoptarigan/capstone-matcher/internal/config"
	"alfredoptarigan/capstone-matcher/internal/handlers"
	"alfredoptarigan/capstone-matcher/internal/repositories"
	"alfredoptarigan/capstone-matcher/internal/services"
)

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "Serve the capstone project matcher HTTP API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          serve,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.yaml or ./config/config.yaml)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := repositories.NewRepository(db)

	locker, err := buildLocker(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize admission lock: %w", err)
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	vectorizer := services.NewVectorizer(cfg.Similarity.MaxFeatures, cfg.Similarity.ExtraStopWords)
	scorer := services.NewSimilarityScorer(vectorizer, logger)
	admission := services.NewAdmissionService(
		services.NewAggregator(repo.Corpus),
		scorer,
		repo.Proposal,
		services.NewYearResolver(time.Now),
		locker,
		services.AdmissionOptions{
			Threshold: cfg.Similarity.Threshold,
			Timeout:   cfg.Admission.Timeout,
		},
		logger,
	)

	teamIdeas := services.NewTeamIdeaService(repo, admission, logger)
	archive := services.NewArchiveService(repo.Project, services.NewPDFParserService(), logger)
	collegeIdeas := services.NewCollegeIdeaService(repo)
	recommendations := services.NewRecommendationService(
		repo,
		services.NewRecommenderClient(cfg.Recommender.BaseURL, cfg.Recommender.Timeout),
		logger,
	)
	logger.Info("services initialized",
		zap.Float64("similarity_threshold", cfg.Similarity.Threshold),
		zap.Int("max_features", cfg.Similarity.MaxFeatures),
		zap.String("admission_lock", cfg.Admission.Lock),
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Capstone Project Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(handlers.RequestID())
	app.Use(handlers.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))

	handlers.Register(app, handlers.Handlers{
		ProjectIdea:    handlers.NewProjectIdeaHandler(teamIdeas),
		Archive:        handlers.NewArchiveHandler(archive, storageService, cfg.Storage.MaxFileSize),
		CollegeIdea:    handlers.NewCollegeIdeaHandler(collegeIdeas),
		Recommendation: handlers.NewRecommendationHandler(recommendations),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			logger.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return err
	}
	return nil
}

func buildLocker(cfg *config.Config, logger *zap.Logger) (services.YearLocker, error) {
	switch cfg.Admission.Lock {
	case config.LockRedis:
		rdb, err := config.InitRedis(cfg, logger)
		if err != nil {
			return nil, err
		}
		return services.NewRedisYearLocker(rdb, cfg.Admission.LockTTL, logger), nil
	case config.LockNone:
		logger.Warn("admission lock disabled, concurrent near-duplicate proposals may both be admitted")
		return services.NewNoopYearLocker(), nil
	}
	return services.NewLocalYearLocker(), nil
}
