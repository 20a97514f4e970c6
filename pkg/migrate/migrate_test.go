package migrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beggy/beggy-backend/pkg/config"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return conn
}

func TestEmbeddedMigrationsAreConsistent(t *testing.T) {
	require.NoError(t, ValidateEmbedded())
}

func TestPostgresMigrationsDeclareConstraints(t *testing.T) {
	data, err := embedded.ReadFile("migrations/postgres/20260301120100_create_containers.sql")
	require.NoError(t, err)
	content := string(data)
	for _, sub := range []string{
		"CREATE TABLE IF NOT EXISTS containers",
		"REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (max_weight > 0)",
		"containers_user_kind_name_key",
		"DROP TABLE IF EXISTS containers",
	} {
		require.Contains(t, content, sub)
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	conn := openSQLite(t)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, Run(ctx, sqlDB, config.DriverSQLite, "up"))
	for _, table := range []string{"users", "containers", "items"} {
		require.True(t, conn.Migrator().HasTable(table), "expected table %s", table)
	}

	version, err := Version(ctx, sqlDB, config.DriverSQLite)
	require.NoError(t, err)
	require.Equal(t, int64(20260301120200), version)

	require.NoError(t, MigrateToVersion(ctx, sqlDB, config.DriverSQLite, "20260301120000"))
	require.False(t, conn.Migrator().HasTable("items"))
	require.True(t, conn.Migrator().HasTable("users"))

	require.Error(t, MigrateToVersion(ctx, sqlDB, config.DriverSQLite, "latest"))
}

func TestCreateSQLMigrationWritesBothDialects(t *testing.T) {
	root := t.TempDir()
	now := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)

	paths, err := CreateSQLMigration(root, "Add Trip Table!", now)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	for _, p := range paths {
		require.True(t, strings.HasSuffix(p, "20260504030201_add_trip_table.sql"), p)
	}
	require.NoError(t, ValidateDir(root))

	_, err = CreateSQLMigration(root, "Add Trip Table!", now)
	require.Error(t, err)

	_, err = CreateSQLMigration(root, "!!!", now)
	require.Error(t, err)
}

func TestValidateDirDetectsDivergence(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "postgres"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "sqlite"), 0o755))
	body := []byte("-- +goose Up\nSELECT 1;\n-- +goose Down\nSELECT 1;\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, "postgres", "20260101000000_x.sql"), body, 0o644))

	require.ErrorContains(t, ValidateDir(root), "diverge")

	require.NoError(t, os.WriteFile(filepath.Join(root, "sqlite", "bad-name.sql"), body, 0o644))
	require.ErrorContains(t, ValidateDir(root), "invalid migration filename")
}

func TestDirSelectsDialect(t *testing.T) {
	require.Equal(t, "migrations/sqlite", Dir("migrations", config.DriverSQLite))
	require.Equal(t, "migrations/postgres", Dir("migrations", config.DriverPostgres))
	require.Equal(t, "sqlite3", dialect(config.DriverSQLite))
}
