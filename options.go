package storefront

import (
	"log/slog"
	"path/filepath"

	"github.com/inkwell-shop/storefront/domain/account"
	"github.com/inkwell-shop/storefront/domain/media"
	"github.com/inkwell-shop/storefront/internal/config"
)

// imageStoreKind identifies where uploads go when no store is injected.
type imageStoreKind int

const (
	imageStoreLocal imageStoreKind = iota
	imageStoreMemory
	imageStoreSpaces
)

// clientConfig holds configuration for Client construction.
// Use newClientConfig() to create with defaults from internal/config.
type clientConfig struct {
	dbURL      string
	dataDir    string
	uploadDir  string
	imageKind  imageStoreKind
	imageStore media.Store
	spaces     config.SpacesConfig
	auth       config.AuthConfig
	mailer     account.Mailer
	logger     *slog.Logger
	apiKeys    []string
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir: config.DefaultDataDir(),
		spaces:  config.NewSpacesConfig(),
		auth:    config.NewAuthConfig(),
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores everything in the SQLite file at path. Use ":memory:"
// for a throwaway database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.dbURL = "sqlite:///" + path
	}
}

// WithPostgres stores everything in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.dbURL = dsn
	}
}

// WithDatabaseURL sets a sqlite:/// or postgres:// URL directly.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithDataDir sets the data directory. Local uploads default to a
// subdirectory of it.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithLocalUploads keeps uploaded images on disk under dir.
func WithLocalUploads(dir string) Option {
	return func(c *clientConfig) {
		c.imageKind = imageStoreLocal
		c.uploadDir = dir
	}
}

// WithMemoryUploads keeps uploaded images in process memory.
func WithMemoryUploads() Option {
	return func(c *clientConfig) {
		c.imageKind = imageStoreMemory
	}
}

// WithSpaces keeps uploaded images in S3-compatible object storage.
func WithSpaces(cfg config.SpacesConfig) Option {
	return func(c *clientConfig) {
		c.imageKind = imageStoreSpaces
		c.spaces = cfg
	}
}

// WithImageStore injects a custom image store, overriding the other upload
// options.
func WithImageStore(store media.Store) Option {
	return func(c *clientConfig) {
		c.imageStore = store
	}
}

// WithAuth sets token, reset code and hashing parameters.
func WithAuth(cfg config.AuthConfig) Option {
	return func(c *clientConfig) {
		c.auth = cfg
	}
}

// WithMailer sets how password reset codes are delivered.
func WithMailer(m account.Mailer) Option {
	return func(c *clientConfig) {
		c.mailer = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the keys accepted on write-protected routes.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = append(c.apiKeys, keys...)
	}
}

// OptionsFromConfig translates an AppConfig into client options.
func OptionsFromConfig(cfg config.AppConfig) []Option {
	opts := []Option{
		WithDatabaseURL(cfg.DBURL()),
		WithDataDir(cfg.DataDir()),
		WithAuth(cfg.Auth()),
		WithAPIKeys(cfg.APIKeys()...),
	}
	switch cfg.ImageStore() {
	case config.ImageStoreMemory:
		opts = append(opts, WithMemoryUploads())
	case config.ImageStoreSpaces:
		opts = append(opts, WithSpaces(cfg.Spaces()))
	default:
		opts = append(opts, WithLocalUploads(cfg.UploadDir()))
	}
	return opts
}

func (c *clientConfig) resolvedUploadDir(dataDir string) string {
	if c.uploadDir != "" {
		return c.uploadDir
	}
	return filepath.Join(dataDir, config.DefaultUploadSubdir)
}
