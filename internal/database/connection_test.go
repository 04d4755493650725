package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"edunest/internal/config"
	"edunest/internal/domain"
)

func TestOpenSQLiteMigratesModels(t *testing.T) {
	cfg := &config.DatabaseConfig{URL: "sqlite:///" + filepath.Join(t.TempDir(), "edunest.db")}

	db, err := Open(cfg, zap.NewNop(), &domain.Inquiry{}, &domain.Admission{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.True(t, db.Migrator().HasTable(&domain.Inquiry{}))
	assert.True(t, db.Migrator().HasTable(&domain.Admission{}))
	assert.NoError(t, Ping(db))

	stats, err := GetStats(db)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}
