// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8080
	DefaultLogLevel       = "INFO"
	DefaultDataDirName    = ".storefront"
	DefaultDBFile         = "storefront.db"
	DefaultUploadSubdir   = "uploads"
	DefaultCORSOrigins    = "*"
	DefaultSpacesRegion   = "us-east-1"
	DefaultSpacesFolder   = "products"
	DefaultTokenTTL       = 24 * time.Hour
	DefaultResetCodeTTL   = 15 * time.Minute
	DefaultResetAttempts  = 5
	DefaultBcryptCost     = 10
	DefaultRequestTimeout = 60 * time.Second
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ImageStoreKind selects where uploaded images are kept.
type ImageStoreKind string

// ImageStoreKind values.
const (
	ImageStoreLocal  ImageStoreKind = "local"
	ImageStoreMemory ImageStoreKind = "memory"
	ImageStoreSpaces ImageStoreKind = "spaces"
)

// SpacesConfig configures S3-compatible object storage (DigitalOcean
// Spaces, MinIO).
type SpacesConfig struct {
	endpoint   string
	region     string
	accessKey  string
	secretKey  string
	bucket     string
	publicBase string
	folder     string
}

// NewSpacesConfig creates a SpacesConfig with defaults.
func NewSpacesConfig() SpacesConfig {
	return SpacesConfig{
		region: DefaultSpacesRegion,
		folder: DefaultSpacesFolder,
	}
}

// Endpoint returns the service URL, e.g. https://sgp1.digitaloceanspaces.com.
func (s SpacesConfig) Endpoint() string { return s.endpoint }

// Region returns the bucket region.
func (s SpacesConfig) Region() string { return s.region }

// AccessKey returns the access key id.
func (s SpacesConfig) AccessKey() string { return s.accessKey }

// SecretKey returns the secret access key.
func (s SpacesConfig) SecretKey() string { return s.secretKey }

// Bucket returns the bucket name.
func (s SpacesConfig) Bucket() string { return s.bucket }

// PublicBase returns the public URL prefix objects are served from.
func (s SpacesConfig) PublicBase() string { return s.publicBase }

// Folder returns the key prefix uploads are placed under.
func (s SpacesConfig) Folder() string { return s.folder }

// IsConfigured returns true when every required value is present.
func (s SpacesConfig) IsConfigured() bool {
	return s.endpoint != "" && s.accessKey != "" && s.secretKey != "" && s.bucket != "" && s.publicBase != ""
}

// WithEndpoint returns a new config with the specified endpoint.
func (s SpacesConfig) WithEndpoint(endpoint string) SpacesConfig {
	s.endpoint = endpoint
	return s
}

// WithRegion returns a new config with the specified region.
func (s SpacesConfig) WithRegion(region string) SpacesConfig {
	if region != "" {
		s.region = region
	}
	return s
}

// WithCredentials returns a new config with the specified key pair.
func (s SpacesConfig) WithCredentials(accessKey, secretKey string) SpacesConfig {
	s.accessKey = accessKey
	s.secretKey = secretKey
	return s
}

// WithBucket returns a new config with the specified bucket.
func (s SpacesConfig) WithBucket(bucket string) SpacesConfig {
	s.bucket = bucket
	return s
}

// WithPublicBase returns a new config with the specified public URL prefix.
func (s SpacesConfig) WithPublicBase(base string) SpacesConfig {
	s.publicBase = strings.TrimRight(base, "/")
	return s
}

// WithFolder returns a new config with the specified key prefix.
func (s SpacesConfig) WithFolder(folder string) SpacesConfig {
	if folder = strings.Trim(folder, "/"); folder != "" {
		s.folder = folder
	}
	return s
}

// AuthConfig configures credentials and tokens.
type AuthConfig struct {
	jwtSecret    string
	tokenTTL     time.Duration
	resetCodeTTL time.Duration
	resetTries   int
	bcryptCost   int
}

// NewAuthConfig creates an AuthConfig with defaults. Tokens stay disabled
// until a secret is set.
func NewAuthConfig() AuthConfig {
	return AuthConfig{
		tokenTTL:     DefaultTokenTTL,
		resetCodeTTL: DefaultResetCodeTTL,
		resetTries:   DefaultResetAttempts,
		bcryptCost:   DefaultBcryptCost,
	}
}

// JWTSecret returns the token signing secret.
func (a AuthConfig) JWTSecret() string { return a.jwtSecret }

// TokenTTL returns the access token lifetime.
func (a AuthConfig) TokenTTL() time.Duration { return a.tokenTTL }

// ResetCodeTTL returns how long a password reset code stays valid.
func (a AuthConfig) ResetCodeTTL() time.Duration { return a.resetCodeTTL }

// ResetAttempts returns how many confirmations one reset code allows.
func (a AuthConfig) ResetAttempts() int { return a.resetTries }

// BcryptCost returns the bcrypt work factor.
func (a AuthConfig) BcryptCost() int { return a.bcryptCost }

// TokensEnabled reports whether a signing secret is set.
func (a AuthConfig) TokensEnabled() bool { return a.jwtSecret != "" }

// WithJWTSecret returns a new config with the specified secret.
func (a AuthConfig) WithJWTSecret(secret string) AuthConfig {
	a.jwtSecret = secret
	return a
}

// WithTokenTTL returns a new config with the specified token lifetime.
func (a AuthConfig) WithTokenTTL(d time.Duration) AuthConfig {
	if d > 0 {
		a.tokenTTL = d
	}
	return a
}

// WithResetCodeTTL returns a new config with the specified reset code lifetime.
func (a AuthConfig) WithResetCodeTTL(d time.Duration) AuthConfig {
	if d > 0 {
		a.resetCodeTTL = d
	}
	return a
}

// WithResetAttempts returns a new config with the specified attempt limit.
func (a AuthConfig) WithResetAttempts(n int) AuthConfig {
	if n > 0 {
		a.resetTries = n
	}
	return a
}

// WithBcryptCost returns a new config with the specified work factor.
func (a AuthConfig) WithBcryptCost(cost int) AuthConfig {
	if cost > 0 {
		a.bcryptCost = cost
	}
	return a
}

// AppConfig holds the main application configuration.
type AppConfig struct {
	host        string
	port        int
	dataDir     string
	dbURL       string
	logLevel    string
	logFormat   LogFormat
	apiKeys     []string
	corsOrigins []string
	uploadDir   string
	imageStore  ImageStoreKind
	spaces      SpacesConfig
	auth        AuthConfig
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	return DefaultDataDirName
}

// DefaultLogger returns the default slog logger for library consumers.
func DefaultLogger() *slog.Logger {
	return slog.Default()
}

// PrepareDataDir creates the data directory if it does not exist and returns it.
func PrepareDataDir(dataDir string) (string, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	return dataDir, nil
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:        DefaultHost,
		port:        DefaultPort,
		dataDir:     dataDir,
		dbURL:       defaultDBURL(dataDir),
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
		apiKeys:     []string{},
		corsOrigins: []string{DefaultCORSOrigins},
		imageStore:  ImageStoreLocal,
		spaces:      NewSpacesConfig(),
		auth:        NewAuthConfig(),
	}
}

func defaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// APIKeys returns a copy of the keys that unlock write routes.
func (c AppConfig) APIKeys() []string {
	result := make([]string, len(c.apiKeys))
	copy(result, c.apiKeys)
	return result
}

// CORSOrigins returns the allowed CORS origins.
func (c AppConfig) CORSOrigins() []string {
	result := make([]string, len(c.corsOrigins))
	copy(result, c.corsOrigins)
	return result
}

// UploadDir returns the local upload directory, defaulting under DataDir.
func (c AppConfig) UploadDir() string {
	if c.uploadDir != "" {
		return c.uploadDir
	}
	return filepath.Join(c.dataDir, DefaultUploadSubdir)
}

// ImageStore returns the configured image store kind.
func (c AppConfig) ImageStore() ImageStoreKind { return c.imageStore }

// Spaces returns the object storage configuration.
func (c AppConfig) Spaces() SpacesConfig { return c.spaces }

// Auth returns the credential and token configuration.
func (c AppConfig) Auth() AuthConfig { return c.auth }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	return os.MkdirAll(c.dataDir, 0o755)
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		// Keep the default database inside the data directory.
		if c.dbURL == "" || c.dbURL == defaultDBURL(c.dataDir) {
			c.dbURL = defaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithAPIKeys sets the API keys.
func WithAPIKeys(keys []string) AppConfigOption {
	return func(c *AppConfig) {
		c.apiKeys = make([]string, len(keys))
		copy(c.apiKeys, keys)
	}
}

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) AppConfigOption {
	return func(c *AppConfig) {
		if len(origins) > 0 {
			c.corsOrigins = append([]string(nil), origins...)
		}
	}
}

// WithUploadDir sets the local upload directory.
func WithUploadDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.uploadDir = dir }
}

// WithImageStore sets the image store kind.
func WithImageStore(kind ImageStoreKind) AppConfigOption {
	return func(c *AppConfig) { c.imageStore = kind }
}

// WithSpacesConfig sets the object storage configuration.
func WithSpacesConfig(s SpacesConfig) AppConfigOption {
	return func(c *AppConfig) { c.spaces = s }
}

// WithAuthConfig sets the credential and token configuration.
func WithAuthConfig(a AuthConfig) AppConfigOption {
	return func(c *AppConfig) { c.auth = a }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Validate reports configuration that cannot work at runtime.
func (c AppConfig) Validate() error {
	switch c.imageStore {
	case ImageStoreLocal, ImageStoreMemory:
	case ImageStoreSpaces:
		if !c.spaces.IsConfigured() {
			return fmt.Errorf("image store %q requires SPACES_ENDPOINT, SPACES_KEY, SPACES_SECRET, SPACES_BUCKET and SPACES_PUBLIC_BASE", c.imageStore)
		}
	default:
		return fmt.Errorf("unknown image store %q", c.imageStore)
	}
	return nil
}

// LogAttrs returns slog attributes for logging the configuration.
// Secrets are masked or shown as counts.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("data_dir", c.dataDir),
		slog.String("log_level", c.logLevel),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("image_store", string(c.imageStore)),
		slog.String("upload_dir", c.UploadDir()),
		slog.String("spaces_bucket", c.spaces.bucket),
		slog.Int("api_keys_count", len(c.apiKeys)),
		slog.Bool("tokens_enabled", c.auth.TokensEnabled()),
		slog.Any("cors_origins", c.corsOrigins),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}

// ParseList parses a comma-separated string, dropping blanks.
func ParseList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// ParseAPIKeys parses a comma-separated string of API keys.
func ParseAPIKeys(s string) []string {
	return ParseList(s)
}
