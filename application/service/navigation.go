package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-shop/storefront/domain/navigation"
	"github.com/inkwell-shop/storefront/domain/repository"
)

// Navigation reads and writes the site menu.
type Navigation struct {
	repository.Collection[navigation.NavNode]
	store  navigation.Store
	logger *slog.Logger
}

// NewNavigation creates a new Navigation service.
func NewNavigation(store navigation.Store, logger *slog.Logger) *Navigation {
	return &Navigation{
		Collection: repository.NewCollection[navigation.NavNode](store),
		store:      store,
		logger:     logger,
	}
}

// Menu builds the nested menu from published rows. Rows whose parent is
// missing are left out and logged.
func (s *Navigation) Menu(ctx context.Context) ([]navigation.MenuNode, error) {
	opts := append([]repository.Option{repository.WithPublished(true)}, navigation.WithTreeOrder()...)
	rows, err := s.store.Find(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load nav links: %w", err)
	}

	menu, dropped := navigation.BuildMenu(rows)
	if len(dropped) > 0 {
		ids := make([]string, len(dropped))
		for i, n := range dropped {
			ids[i] = n.ID()
		}
		s.logger.WarnContext(ctx, "nav links dropped from menu: parent missing or unpublished", "count", len(ids), "ids", ids)
	}
	return menu, nil
}

// HasRoot reports whether a top-level entry with the given path exists.
func (s *Navigation) HasRoot(ctx context.Context, path string) (bool, error) {
	exists, err := s.store.Exists(ctx, navigation.WithRoots(), navigation.WithSlug(navigation.RootSlug(path)))
	if err != nil {
		return false, fmt.Errorf("check menu root: %w", err)
	}
	return exists, nil
}

// Save validates the submission and writes the whole tree atomically,
// returning the new root id.
func (s *Navigation) Save(ctx context.Context, sub navigation.Submission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}
	id, err := s.store.InsertTree(ctx, sub)
	if err != nil {
		return "", fmt.Errorf("save menu: %w", err)
	}
	s.logger.InfoContext(ctx, "menu saved", "root_id", id, "path", sub.Path)
	return id, nil
}
