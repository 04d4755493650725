package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("EDUNEST_CONFIG", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAdminPIN, cfg.Admin.PIN)
	assert.Equal(t, "http://localhost:5000/api", cfg.Gateway.APIBaseURL)
	assert.Zero(t, cfg.Gateway.Timeout)
	assert.False(t, cfg.Database.IsPostgres())
	assert.Equal(t, "./database.sqlite", cfg.Database.GetSQLitePath())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("EDUNEST_CONFIG", "")
	t.Setenv("ADMIN_PIN", "4242")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("DATABASE_URL", "postgres://edunest:secret@db:5432/edunest?sslmode=disable")
	t.Setenv("ALLOWED_HOSTS", "https://edunest.school,https://admin.edunest.school")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4242", cfg.Admin.PIN)
	assert.Equal(t, 3*time.Second, cfg.Gateway.Timeout)
	assert.True(t, cfg.Database.IsPostgres())
	assert.Equal(t, []string{"https://edunest.school", "https://admin.edunest.school"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverlaysYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edunest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
admin:
  pin: "9999"
gateway:
  api_base_url: http://school.local/api
  timeout: 5s
log:
  format: console
`), 0o600))
	t.Setenv("EDUNEST_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Admin.PIN)
	assert.Equal(t, "http://school.local/api", cfg.Gateway.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.Gateway.Timeout)
	assert.Equal(t, "console", cfg.Log.Format)
	// untouched keys keep their environment defaults
	assert.Equal(t, "5000", cfg.App.Port)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Setenv("EDUNEST_CONFIG", "")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	assert.ErrorContains(t, err, "LOG_FORMAT")
}
