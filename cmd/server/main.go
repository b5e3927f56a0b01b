package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Harsha-bonthu/pt2/internal/auth"
	"github.com/Harsha-bonthu/pt2/internal/config"
	"github.com/Harsha-bonthu/pt2/internal/db"
	"github.com/Harsha-bonthu/pt2/internal/httpapi"
	"github.com/Harsha-bonthu/pt2/internal/logging"
	"github.com/Harsha-bonthu/pt2/internal/seed"
	"github.com/Harsha-bonthu/pt2/internal/service"
	"github.com/Harsha-bonthu/pt2/internal/store"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "pt2",
		Short:        "Employees & tasks API",
		SilenceUsage: true,
		RunE:         runServe,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(
		&cobra.Command{Use: "serve", Short: "Run the HTTP API (default)", RunE: runServe},
		&cobra.Command{Use: "migrate", Short: "Create or update database tables", RunE: runMigrate},
		&cobra.Command{Use: "seed", Short: "Insert sample employees and tasks into an empty database", RunE: runSeed},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap loads configuration, builds the logger and opens a migrated
// database.
func bootstrap() (config.Config, *logrus.Logger, *gorm.DB, error) {
	envErr := godotenv.Load(envFile)

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger := logging.New(cfg)
	if envErr != nil {
		logger.Debugf("no env file loaded from %s: %v", envFile, envErr)
	}

	database, err := db.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Errorf("database connection error: %v", err)
		return config.Config{}, nil, nil, err
	}
	if err := db.Migrate(database); err != nil {
		logger.Errorf("database migration error: %v", err)
		closeDatabase(database, logger)
		return config.Config{}, nil, nil, err
	}

	return cfg, logger, database, nil
}

func closeDatabase(database *gorm.DB, logger *logrus.Logger) {
	if err := db.Close(database); err != nil {
		logger.Errorf("database close error: %v", err)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	_, logger, database, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDatabase(database, logger)
	logger.Info("migrations applied")
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	_, logger, database, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDatabase(database, logger)

	seeded, err := seed.Run(cmd.Context(), store.New(database))
	if err != nil {
		logger.Errorf("seed failed: %v", err)
		return err
	}
	if seeded {
		logger.Info("seeded sample employees and tasks")
	} else {
		logger.Info("database already seeded")
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, database, err := bootstrap()
	if err != nil {
		return err
	}
	// Closed after Shutdown has drained in-flight requests.
	defer closeDatabase(database, logger)

	if cfg.UsesDefaultSecret() {
		logger.Warn("SECRET_KEY not set; signing tokens with the development key")
	}

	gate, err := auth.NewGate(cfg)
	if err != nil {
		logger.Errorf("auth setup error: %v", err)
		return err
	}

	st := store.New(database)
	handler := httpapi.NewHandler(
		service.NewEmployeeService(st),
		service.NewTaskService(st),
		gate,
		logger,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapi.Wrap(handler.Routes(), logger, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("starting server, listening to port %s...", cfg.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
		return err
	}
	return nil
}
