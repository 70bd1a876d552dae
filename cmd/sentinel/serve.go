package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sentinel/sentinel/internal/config"
	"github.com/sentinel/sentinel/internal/infra/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			log := logger.NewStructuredLogger(logger.LoggerConfig{
				Level:       cfg.LogLevel,
				Format:      cfg.LogFormat,
				ServiceName: "sentinel",
			})

			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	log.Info(ctx, "Starting Sentinel", map[string]interface{}{
		"version":         Version,
		"environment":     cfg.Environment,
		"session_backend": cfg.SessionBackend,
		"session_codec":   cfg.SessionCodec,
		"ai_provider":     cfg.AIProvider,
	})

	for _, warning := range cfg.Warnings() {
		log.Warn(ctx, "Unsafe production setting", map[string]interface{}{
			"warning": warning,
		})
	}

	app, err := buildApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "Error during server shutdown", err, nil)
		return err
	}

	log.Info(shutdownCtx, "Server stopped", nil)
	return nil
}
