package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("creates up and down files", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "add orders table")
		require.NoError(t, err)

		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
		assert.True(t, strings.HasSuffix(mf.UpPath, "_add_orders_table.up.sql"))
		assert.True(t, strings.HasSuffix(mf.DownPath, "_add_orders_table.down.sql"))
		assert.Len(t, mf.Version, 14)
	})

	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		_, err := CreateMigration(dir, "init")
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "AddOrders", "addorders"},
		{"spaces to underscores", "add orders table", "add_orders_table"},
		{"collapses separators", "add  --  orders", "add_orders"},
		{"strips special characters", "add!orders?", "addorders"},
		{"trims trailing separator", "add orders ", "add_orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	t.Run("returns up migration base names", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"20240101000000_init.up.sql",
			"20240101000000_init.down.sql",
			"20240102000000_add_batches.up.sql",
			"20240102000000_add_batches.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"20240101000000_init", "20240102000000_add_batches"}, migrations)
	})

	t.Run("missing directory yields empty list", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
