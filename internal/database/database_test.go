package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/internal/database"
)

func TestOpenAndMigrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "enigma.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(db))
	// second run is a no-op
	require.NoError(t, database.Migrate(db))

	var applied int
	require.NoError(t, db.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied))
	assert.Equal(t, 1, applied)

	for _, table := range []string{"users", "sessions"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err)
		assert.Equal(t, table, name)
	}
}
