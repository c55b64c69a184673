package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, DefaultHost, cfg.Host())
	assert.Equal(t, DefaultPort, cfg.Port())
	assert.Equal(t, DefaultDataDirName, cfg.DataDir())
	assert.Equal(t, "sqlite:///"+filepath.Join(DefaultDataDirName, DefaultDBFile), cfg.DBURL())
	assert.Equal(t, filepath.Join(DefaultDataDirName, DefaultUploadSubdir), cfg.UploadDir())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Empty(t, cfg.APIKeys())
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins())
	assert.Equal(t, ImageStoreLocal, cfg.ImageStore())
	assert.False(t, cfg.Spaces().IsConfigured())
	assert.Equal(t, DefaultTokenTTL, cfg.Auth().TokenTTL())
	assert.Equal(t, DefaultBcryptCost, cfg.Auth().BcryptCost())
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_WithDataDirMovesDefaultDB(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithDataDir("/var/shop"))
	assert.Equal(t, "sqlite:///"+filepath.Join("/var/shop", DefaultDBFile), cfg.DBURL())

	custom := NewAppConfigWithOptions(
		WithDBURL("postgres://u:p@db/shop"),
		WithDataDir("/var/shop"),
	)
	assert.Equal(t, "postgres://u:p@db/shop", custom.DBURL())
}

func TestAppConfig_ApplyIsImmutable(t *testing.T) {
	base := NewAppConfig()
	changed := base.Apply(WithPort(9000), WithAPIKeys([]string{"a"}))

	assert.Equal(t, DefaultPort, base.Port())
	assert.Equal(t, 9000, changed.Port())

	keys := changed.APIKeys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, changed.APIKeys())
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithImageStore(ImageStoreSpaces))
	require.Error(t, cfg.Validate())

	spaces := NewSpacesConfig().
		WithEndpoint("https://nyc3.digitaloceanspaces.com").
		WithCredentials("ak", "sk").
		WithBucket("b").
		WithPublicBase("https://cdn.example.com")
	cfg = cfg.Apply(WithSpacesConfig(spaces))
	assert.NoError(t, cfg.Validate())

	cfg = cfg.Apply(WithImageStore("ftp"))
	assert.ErrorContains(t, cfg.Validate(), "unknown image store")
}

func TestAuthConfig_IgnoresNonPositive(t *testing.T) {
	a := NewAuthConfig().WithTokenTTL(0).WithResetCodeTTL(-time.Second).WithResetAttempts(0).WithBcryptCost(0)
	assert.Equal(t, DefaultTokenTTL, a.TokenTTL())
	assert.Equal(t, DefaultResetCodeTTL, a.ResetCodeTTL())
	assert.Equal(t, DefaultResetAttempts, a.ResetAttempts())
	assert.Equal(t, DefaultBcryptCost, a.BcryptCost())
}

func TestAppConfig_LogAttrsMasksSecrets(t *testing.T) {
	cfg := NewAppConfigWithOptions(
		WithDBURL("postgres://admin:hunter2@db:5432/shop"),
		WithAPIKeys([]string{"k1", "k2"}),
		WithAuthConfig(NewAuthConfig().WithJWTSecret("secret")),
	)

	attrs := map[string]string{}
	for _, a := range cfg.LogAttrs() {
		attrs[a.Key] = a.Value.String()
	}
	assert.Equal(t, "postgres://***@***", attrs["db_url"])
	assert.Equal(t, "2", attrs["api_keys_count"])
	assert.Equal(t, "true", attrs["tokens_enabled"])
	for _, v := range attrs {
		assert.NotContains(t, v, "hunter2")
		assert.NotContains(t, v, "secret")
	}
}

func TestParseList(t *testing.T) {
	assert.Equal(t, []string{}, ParseList(""))
	assert.Equal(t, []string{"a", "b"}, ParseList(" a, ,b ,"))
	assert.Equal(t, []string{"key"}, ParseAPIKeys("key"))
}

func TestPrepareDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	got, err := PrepareDataDir(dir)
	require.NoError(t, err)
	assert.DirExists(t, got)
	assert.NoError(t, NewAppConfigWithOptions(WithDataDir(dir)).EnsureDataDir())
}
