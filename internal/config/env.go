package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
// Nested structs use an underscore delimiter (e.g. SPACES_BUCKET).
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR (default: .storefront)
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/storefront.db
	DBURL string `envconfig:"DB_URL"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// APIKeys is a comma-separated list of keys that unlock write routes.
	// Env: API_KEYS
	APIKeys string `envconfig:"API_KEYS"`

	// CORSAllowedOrigins is a comma-separated list of allowed origins.
	// Env: CORS_ALLOWED_ORIGINS (default: *)
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// UploadDir is where the local image store writes files.
	// Env: UPLOAD_DIR (default: {data_dir}/uploads)
	UploadDir string `envconfig:"UPLOAD_DIR"`

	// ImageStore selects local, memory or spaces.
	// Env: IMAGE_STORE (default: local)
	ImageStore string `envconfig:"IMAGE_STORE" default:"local"`

	// Spaces configures S3-compatible object storage.
	Spaces SpacesEnv `envconfig:"SPACES"`

	// JWTSecret signs access tokens. Tokens are not issued when empty.
	// Env: JWT_SECRET
	JWTSecret string `envconfig:"JWT_SECRET"`

	// JWTTTLSeconds is the access token lifetime.
	// Env: JWT_TTL_SECONDS (default: 86400)
	JWTTTLSeconds int `envconfig:"JWT_TTL_SECONDS" default:"86400"`

	// ResetCodeTTLSeconds is how long a password reset code stays valid.
	// Env: RESET_CODE_TTL_SECONDS (default: 900)
	ResetCodeTTLSeconds int `envconfig:"RESET_CODE_TTL_SECONDS" default:"900"`

	// ResetMaxAttempts is how many confirmations one reset code allows.
	// Env: RESET_MAX_ATTEMPTS (default: 5)
	ResetMaxAttempts int `envconfig:"RESET_MAX_ATTEMPTS" default:"5"`

	// BcryptCost is the password hashing work factor.
	// Env: BCRYPT_COST (default: 10)
	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`
}

// SpacesEnv holds object storage environment configuration.
type SpacesEnv struct {
	// Env: SPACES_ENDPOINT
	Endpoint string `envconfig:"ENDPOINT"`

	// Env: SPACES_REGION (default: us-east-1)
	Region string `envconfig:"REGION" default:"us-east-1"`

	// Env: SPACES_KEY
	Key string `envconfig:"KEY"`

	// Env: SPACES_SECRET
	Secret string `envconfig:"SECRET"`

	// Env: SPACES_BUCKET
	Bucket string `envconfig:"BUCKET"`

	// PublicBase is the URL prefix objects are served from,
	// e.g. https://bucket.sgp1.cdn.digitaloceanspaces.com.
	// Env: SPACES_PUBLIC_BASE
	PublicBase string `envconfig:"PUBLIC_BASE"`

	// Env: SPACES_FOLDER (default: products)
	Folder string `envconfig:"FOLDER" default:"products"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "STOREFRONT" would require STOREFRONT_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// Normalize trims whitespace and lowercases enum-like values.
func (e EnvConfig) Normalize() EnvConfig {
	e.Host = strings.TrimSpace(e.Host)
	e.DataDir = strings.TrimSpace(e.DataDir)
	e.DBURL = strings.TrimSpace(e.DBURL)
	e.LogLevel = strings.ToUpper(strings.TrimSpace(e.LogLevel))
	e.LogFormat = strings.ToLower(strings.TrimSpace(e.LogFormat))
	e.UploadDir = strings.TrimSpace(e.UploadDir)
	e.ImageStore = strings.ToLower(strings.TrimSpace(e.ImageStore))
	e.Spaces.Endpoint = strings.TrimSpace(e.Spaces.Endpoint)
	e.Spaces.Bucket = strings.TrimSpace(e.Spaces.Bucket)
	e.Spaces.PublicBase = strings.TrimSpace(e.Spaces.PublicBase)
	return e
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	cfg := NewAppConfig()

	if e.Host != "" {
		cfg = applyOption(cfg, WithHost(e.Host))
	}
	if e.Port != 0 {
		cfg = applyOption(cfg, WithPort(e.Port))
	}
	if e.DataDir != "" {
		cfg = applyOption(cfg, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		cfg = applyOption(cfg, WithDBURL(e.DBURL))
	}
	if e.LogLevel != "" {
		cfg = applyOption(cfg, WithLogLevel(e.LogLevel))
	}
	cfg = applyOption(cfg, WithLogFormat(parseLogFormat(e.LogFormat)))

	if e.APIKeys != "" {
		cfg = applyOption(cfg, WithAPIKeys(ParseAPIKeys(e.APIKeys)))
	}
	cfg = applyOption(cfg, WithCORSOrigins(ParseList(e.CORSAllowedOrigins)))

	if e.UploadDir != "" {
		cfg = applyOption(cfg, WithUploadDir(e.UploadDir))
	}
	if e.ImageStore != "" {
		cfg = applyOption(cfg, WithImageStore(ImageStoreKind(e.ImageStore)))
	}
	cfg = applyOption(cfg, WithSpacesConfig(e.Spaces.ToSpacesConfig()))
	cfg = applyOption(cfg, WithAuthConfig(e.toAuthConfig()))

	return cfg
}

func (e EnvConfig) toAuthConfig() AuthConfig {
	return NewAuthConfig().
		WithJWTSecret(e.JWTSecret).
		WithTokenTTL(time.Duration(e.JWTTTLSeconds) * time.Second).
		WithResetCodeTTL(time.Duration(e.ResetCodeTTLSeconds) * time.Second).
		WithResetAttempts(e.ResetMaxAttempts).
		WithBcryptCost(e.BcryptCost)
}

// ToSpacesConfig converts SpacesEnv to SpacesConfig.
func (s SpacesEnv) ToSpacesConfig() SpacesConfig {
	return NewSpacesConfig().
		WithEndpoint(s.Endpoint).
		WithRegion(s.Region).
		WithCredentials(s.Key, s.Secret).
		WithBucket(s.Bucket).
		WithPublicBase(s.PublicBase).
		WithFolder(s.Folder)
}

// applyOption applies an option to the config.
func applyOption(cfg AppConfig, opt AppConfigOption) AppConfig {
	opt(&cfg)
	return cfg
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
