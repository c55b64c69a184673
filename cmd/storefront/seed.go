package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inkwell-shop/storefront"
	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/internal/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// menuEntry is one node of a seed file.
type menuEntry struct {
	Title   string      `yaml:"title"`
	Path    string      `yaml:"path"`
	Order   *int        `yaml:"order"`
	Submenu []menuEntry `yaml:"submenu"`
}

func (m menuEntry) submission() navigation.Submission {
	sub := navigation.Submission{Title: m.Title, Path: m.Path, Order: m.Order}
	for _, child := range m.Submenu {
		sub.Submenu = append(sub.Submenu, child.submission())
	}
	return sub
}

// parseMenus reads a YAML list of menu trees.
func parseMenus(r io.Reader) ([]navigation.Submission, error) {
	var entries []menuEntry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode menu file: %w", err)
	}

	subs := make([]navigation.Submission, len(entries))
	for i, e := range entries {
		subs[i] = e.submission()
	}
	return subs, nil
}

func seedCmd() *cobra.Command {
	var (
		envFile string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load navigation menus from a YAML file",
		Long: `Load navigation menus from a YAML file.

The file is a list of menu trees:

  - title: Stationery
    path: /stationery
    submenu:
      - title: Pens
        path: /pens

Each top-level tree is written in its own transaction, exactly as a
POST /api/navlinks would write it. Trees whose root path already exists
are skipped, so the file can be applied more than once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context(), cmd.OutOrStdout(), envFile, file)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML menu file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runSeed(ctx context.Context, out io.Writer, envFile, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open menu file: %w", err)
	}
	defer func() { _ = f.Close() }()

	menus, err := parseMenus(f)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	logger := log.Configure(cfg).Slog()

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

	return seedMenus(ctx, client, out, menus)
}

func seedMenus(ctx context.Context, client *storefront.Client, out io.Writer, menus []navigation.Submission) error {
	for _, menu := range menus {
		exists, err := client.Navigation.HasRoot(ctx, menu.Path)
		if err != nil {
			return fmt.Errorf("seed %q: %w", menu.Title, err)
		}
		if exists {
			_, _ = fmt.Fprintf(out, "skipped %s (%s already present)\n", menu.Title, navigation.RootSlug(menu.Path))
			continue
		}

		id, err := client.Navigation.Save(ctx, menu)
		if err != nil {
			return fmt.Errorf("seed %q: %w", menu.Title, err)
		}
		_, _ = fmt.Fprintf(out, "seeded %s (%s)\n", menu.Title, id)
	}
	return nil
}
