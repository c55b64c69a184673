// Package storefront is the backend of a small online shop: a navigation
// menu edited as whole subtrees, categories derived from its leaves, a
// product catalog with image uploads, customer accounts, checkout and
// product reviews.
//
// Basic usage:
//
//	client, err := storefront.New(
//	    storefront.WithSQLite(".storefront/storefront.db"),
//	    storefront.WithLocalUploads(".storefront/uploads"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	menu, err := client.Navigation.Menu(ctx)
//	categories, err := client.Categories.List(ctx)
package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/inkwell-shop/storefront/application/service"
	"github.com/inkwell-shop/storefront/domain/media"
	"github.com/inkwell-shop/storefront/infrastructure/persistence"
	"github.com/inkwell-shop/storefront/infrastructure/security"
	"github.com/inkwell-shop/storefront/infrastructure/storage"
	"github.com/inkwell-shop/storefront/internal/config"
	"github.com/inkwell-shop/storefront/internal/database"
)

// ErrClientClosed is returned by Close on an already closed client.
var ErrClientClosed = errors.New("storefront: client is closed")

// Client is the main entry point for the storefront library.
//
// Access services via struct fields:
//
//	client.Navigation.Save(ctx, submission)
//	client.Catalog.List(ctx, catalog.NewListing("all", "", 1, 20))
type Client struct {
	Navigation *service.Navigation
	Categories *service.Categories
	Catalog    *service.Catalog
	Uploads    *service.Uploads
	Auth       *service.Auth
	Checkout   *service.Checkout
	Reviews    *service.Reviews

	db      database.Database
	media   media.Store
	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options. The schema is migrated
// before New returns.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = config.DefaultLogger()
	}

	dataDir, err := config.PrepareDataDir(cfg.dataDir)
	if err != nil {
		return nil, err
	}

	dbURL := cfg.dbURL
	if dbURL == "" {
		dbURL = "sqlite:///" + filepath.Join(dataDir, config.DefaultDBFile)
	}

	images, err := buildImageStore(cfg, dataDir)
	if err != nil {
		return nil, fmt.Errorf("image store: %w", err)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	navStore := persistence.NewNavigationStore(db)
	productStore := persistence.NewProductStore(db)
	userStore := persistence.NewUserStore(db)
	orderStore := persistence.NewOrderStore(db)
	reviewStore := persistence.NewReviewStore(db)

	authCfg := cfg.auth
	authOpts := []service.AuthOption{
		service.WithResetTTL(authCfg.ResetCodeTTL()),
		service.WithMaxResetAttempts(authCfg.ResetAttempts()),
	}
	if cfg.mailer != nil {
		authOpts = append(authOpts, service.WithMailer(cfg.mailer))
	}

	client := &Client{
		Navigation: service.NewNavigation(navStore, logger),
		Categories: service.NewCategories(navStore, productStore),
		Catalog:    service.NewCatalog(productStore, logger),
		Uploads:    service.NewUploads(images, logger),
		Auth: service.NewAuth(
			userStore,
			security.NewBcryptHasher(authCfg.BcryptCost()),
			security.NewJWTTokens(authCfg.JWTSecret(), authCfg.TokenTTL()),
			logger,
			authOpts...,
		),
		Checkout: service.NewCheckout(orderStore, logger),
		Reviews:  service.NewReviews(reviewStore, productStore, logger),

		db:      db,
		media:   images,
		logger:  logger,
		dataDir: dataDir,
		apiKeys: cfg.apiKeys,
	}

	if !authCfg.TokensEnabled() {
		logger.Warn("JWT_SECRET not set: login will not issue tokens and /auth/me will reject every request")
	}
	return client, nil
}

func buildImageStore(cfg *clientConfig, dataDir string) (media.Store, error) {
	if cfg.imageStore != nil {
		return cfg.imageStore, nil
	}
	switch cfg.imageKind {
	case imageStoreMemory:
		return storage.NewMemory(), nil
	case imageStoreSpaces:
		return storage.NewSpaces(cfg.spaces)
	default:
		return storage.NewLocal(cfg.resolvedUploadDir(dataDir)), nil
	}
}

// Close releases the database connection. It is safe to call once;
// later calls return ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("storefront client closed")
	return nil
}

// Ping reports whether the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.db.Ping(ctx)
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Media returns the image store.
func (c *Client) Media() media.Store {
	return c.media
}

// APIKeys returns the keys accepted on write-protected routes.
func (c *Client) APIKeys() []string {
	return append([]string(nil), c.apiKeys...)
}

// DataDir returns the prepared data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}
