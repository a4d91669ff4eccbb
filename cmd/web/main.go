package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"board-web/internal/client"
	"board-web/internal/config"
	"board-web/internal/job"
	"board-web/internal/metrics"
	"board-web/internal/router"
	"board-web/internal/session"
	"board-web/internal/theme"
	"board-web/internal/view"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting board-web",
		zap.Int("port", cfg.Server.Port),
		zap.String("env", cfg.Server.Env),
		zap.String("board_api_url", cfg.BoardAPI.BaseURL),
		zap.Int64("viewer_user_id", cfg.Viewer.UserID),
		zap.String("session_store", cfg.Session.Store),
		zap.String("profile_source", cfg.Profile.Source),
	)

	ctx := context.Background()

	// Initialize metrics
	m := metrics.NewWithLogger(logger)

	boardClient := client.NewBoardClient(cfg.BoardAPI.BaseURL, cfg.BoardAPI.Timeout, logger, m)

	var pictures client.ProfilePicResolver = client.NewAPIProfilePics(cfg.BoardAPI.BaseURL)
	if cfg.Profile.Source == config.ProfileSourceS3 {
		s3Pictures, err := client.NewS3ProfilePics(ctx, &cfg.S3)
		if err != nil {
			logger.Warn("Failed to initialize S3 profile pictures, falling back to board-api URLs", zap.Error(err))
		} else {
			pictures = s3Pictures
			logger.Info("S3 profile pictures initialized",
				zap.String("bucket", cfg.S3.Bucket),
				zap.String("region", cfg.S3.Region),
			)
		}
	}

	scheduler := job.NewScheduler(logger)

	var store session.Store
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		redisClient, err := session.NewRedisClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		store = session.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		memoryStore := session.NewMemoryStore(cfg.Session.TTL)
		if err := scheduler.Add("session-sweep", "@every 1m", job.NewSessionSweepJob(memoryStore, logger)); err != nil {
			logger.Fatal("Failed to schedule session sweep", zap.Error(err))
		}
		store = memoryStore
	}
	sessions := session.NewManager(store, logger, m)

	// The profile panel is shared by every visitor; load it once up front
	panel := view.NewProfilePanel(boardClient, cfg.Viewer.UserID, logger, m)
	refreshJob := job.NewSidebarRefreshJob(panel, cfg.BoardAPI.Timeout*2, logger)
	refreshJob.Run()
	if err := scheduler.Add("sidebar-refresh", cfg.Sidebar.RefreshSpec, refreshJob); err != nil {
		logger.Fatal("Failed to schedule sidebar refresh", zap.Error(err))
	}
	scheduler.Start()

	r := router.Setup(router.Config{
		Logger:      logger,
		Metrics:     m,
		BoardClient: boardClient,
		ProfilePics: pictures,
		Sessions:    sessions,
		Panel:       panel,
		Theme:       theme.Default(),
		ViewerID:    cfg.Viewer.UserID,
		Location:    cfg.Location(),
		CookieName:  cfg.Session.CookieName,
		SessionTTL:  cfg.Session.TTL,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("board-web started successfully", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
