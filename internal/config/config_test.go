package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("GROCERY_DB_PATH", "/tmp/groceries.db")

	yamlContent := `
app:
  name: "groceries"
database:
  path: "${GROCERY_DB_PATH}"
api:
  http:
    port: 9000
    create_status: 201
  cors:
    allowed_origins: ["https://example.com"]
    allow_credentials: true
  rate_limit:
    rps: 10
    trust_proxy: true
redis:
  address: "localhost:6379"
monitoring:
  prometheus_enabled: true
logging:
  level: "debug"
  format: "console"
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "groceries", cfg.App.Name)
	assert.Equal(t, "/tmp/groceries.db", cfg.Database.Path)
	assert.Equal(t, 9000, cfg.API.HTTP.Port)
	assert.Equal(t, 201, cfg.API.HTTP.CreateStatus)
	assert.Equal(t, []string{"https://example.com"}, cfg.API.CORS.AllowedOrigins)
	assert.True(t, cfg.API.CORS.AllowCredentials)
	assert.Equal(t, 10.0, cfg.API.RateLimit.RPS)
	assert.Equal(t, 5, cfg.API.RateLimit.Burst)
	assert.True(t, cfg.API.RateLimit.TrustProxy)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "grocery-list", cfg.App.Name)
	assert.Equal(t, "grocery.db", cfg.Database.Path)
	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.Equal(t, 200, cfg.API.HTTP.CreateStatus)
	assert.False(t, cfg.API.HTTP.HealthDisabled)
	assert.Equal(t, int64(1<<20), cfg.API.HTTP.MaxBodyBytes)
	assert.Equal(t, []string{"*"}, cfg.API.CORS.AllowedOrigins)
	assert.False(t, cfg.API.CORS.AllowCredentials)
	assert.Zero(t, cfg.API.RateLimit.RPS)
	assert.Zero(t, cfg.API.RateLimit.Burst)
	assert.False(t, cfg.Monitoring.PrometheusEnabled)
	assert.Zero(t, cfg.Monitoring.PrometheusPort)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("api: [unclosed"), 0o644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidCreateStatus(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("api:\n  http:\n    create_status: 202\n"), 0o644))

	_, err := Load(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create_status")
}

func TestValidateConfig(t *testing.T) {
	valid := func() Config {
		return *Default()
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing db path", mutate: func(c *Config) { c.Database.Path = "" }, wantErr: true},
		{name: "bad port", mutate: func(c *Config) { c.API.HTTP.Port = 70000 }, wantErr: true},
		{name: "created status", mutate: func(c *Config) { c.API.HTTP.CreateStatus = 201 }, wantErr: false},
		{name: "bad create status", mutate: func(c *Config) { c.API.HTTP.CreateStatus = 204 }, wantErr: true},
		{name: "negative rps", mutate: func(c *Config) { c.API.RateLimit.RPS = -1 }, wantErr: true},
		{
			name: "metrics port clash",
			mutate: func(c *Config) {
				c.Monitoring.PrometheusEnabled = true
				c.Monitoring.PrometheusPort = c.API.HTTP.Port
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
