package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/internal/log"
	"github.com/inkwell-shop/storefront/internal/mcp"
	"github.com/spf13/cobra"
)

func mcpCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:     "mcp",
		Aliases: []string{"stdio"},
		Short:   "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants browse the navigation menu, categories and products.
Configuration is loaded from environment variables and .env file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runMCP(envFile string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	// stdout carries the protocol, so logs go to stderr.
	logger := log.NewLoggerWithWriter(os.Stderr, cfg.LogFormat(), cfg.LogLevel()).Slog()
	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

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

	server := mcp.NewServer(client.Navigation, client.Categories, client.Catalog, version, logger)
	return server.ServeStdio()
}
