package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"memoir-backend/application/services"
	"memoir-backend/infrastructure/ai"
	"memoir-backend/infrastructure/ai/openai"
	"memoir-backend/infrastructure/config"
	"memoir-backend/infrastructure/persistence/filestore"
	"memoir-backend/interfaces/http/rest"
	"memoir-backend/pkg/observability"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "memoir",
		Short:        "Backend for the memoir writing assistant",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCommand(), newMigrateCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			defer logger.Sync()

			// One server per data root. A second instance would race the
			// read-modify-write cycles of the first.
			lock := flock.New(cfg.DataRoot + ".lock")
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire data lock: %w", err)
			}
			if !ok {
				return fmt.Errorf("another instance is already serving %s", cfg.DataRoot)
			}
			defer lock.Unlock()

			store := filestore.New(cfg.DataRoot, logger)
			if err := store.Migrate(); err != nil {
				return fmt.Errorf("migrate legacy data: %w", err)
			}

			var provider ai.Provider
			if cfg.AIConfigured() {
				p, err := openai.NewProvider(cfg.AIAPIKey, cfg.AIBaseURL, openai.WithModel(cfg.AIModel))
				if err != nil {
					return fmt.Errorf("initialize AI provider: %w", err)
				}
				provider = p
			} else {
				logger.Warn("no AI API key configured; assistance endpoints will return errors")
			}

			router := rest.NewRouter(rest.Options{
				Store:      store,
				Assist:     services.NewAssistService(provider, logger),
				Export:     services.NewExportService(store, cfg.UploadRoot, logger),
				Upload:     services.NewUploadService(cfg.UploadRoot, logger),
				Metrics:    observability.NewMetrics(),
				Logger:     logger,
				PublicDir:  cfg.PublicDir,
				UploadRoot: cfg.UploadRoot,
				EnableCORS: cfg.EnableCORS,
			})

			srv := &http.Server{
				Addr:        cfg.ServerAddress,
				Handler:     router.Setup(),
				ReadTimeout: 30 * time.Second,
				// Assistance calls wait on the LLM and can legitimately
				// take tens of seconds.
				WriteTimeout: 2 * time.Minute,
				IdleTimeout:  60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting server",
					zap.String("address", cfg.ServerAddress),
					zap.String("environment", cfg.Environment),
					zap.String("dataRoot", cfg.DataRoot),
				)
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- err
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			case <-sigChan:
			}

			logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("Server shutdown error", zap.Error(err))
			}
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Move a legacy flat data directory into the per-project layout",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return fmt.Errorf("initialize logger: %w", err)
			}
			defer logger.Sync()

			return filestore.New(cfg.DataRoot, logger).Migrate()
		},
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.IsDevelopment() {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
