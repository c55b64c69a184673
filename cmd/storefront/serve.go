package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/infrastructure/api"
	"github.com/inkwell-shop/storefront/internal/config"
	"github.com/inkwell-shop/storefront/internal/log"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                 Server host to bind to (default: 0.0.0.0)
  PORT                 Server port to listen on (default: 8080)
  DATA_DIR             Data directory (default: .storefront)
  DB_URL               Database URL (default: sqlite:///{data_dir}/storefront.db)
  LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT           Log format: pretty, json (default: pretty)
  API_KEYS             Comma-separated keys required for catalog writes
  CORS_ALLOWED_ORIGINS Comma-separated allowed origins (default: *)

  IMAGE_STORE          Upload backend: local, memory, spaces (default: local)
  UPLOAD_DIR           Directory for local uploads (default: {data_dir}/uploads)
  SPACES_*             S3-compatible storage for IMAGE_STORE=spaces
    ENDPOINT, REGION, KEY, SECRET, BUCKET, PUBLIC_BASE, FOLDER

  JWT_SECRET             Signs login tokens, which are disabled when unset
  JWT_TTL_SECONDS        Token lifetime (default: 86400)
  RESET_CODE_TTL_SECONDS Password reset code lifetime (default: 900)
  RESET_MAX_ATTEMPTS     Confirmations allowed per reset code (default: 5)
  BCRYPT_COST            Password hashing cost (default: 10)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	logger := log.Configure(cfg).Slog()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting storefront", attrs...)

	opts := append(storefront.OptionsFromConfig(cfg), storefront.WithLogger(logger))
	client, err := storefront.New(opts...)
	if err != nil {
		return fmt.Errorf("create storefront client: %w", err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close storefront client", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewAPIServer(client,
		api.WithCORSOrigins(cfg.CORSOrigins()),
		api.WithVersion(version),
	)
	if err := server.Run(ctx, cfg.Addr()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
