package assets_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/enigma/assets"
	"github.com/robalobadob/enigma/internal/enigma"
)

func TestLoadWiring_Embedded(t *testing.T) {
	cfg, err := assets.LoadWiring("")
	require.NoError(t, err)
	assert.Equal(t, enigma.DefaultConfig(), cfg)
}

func TestLoadWiring_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wiring.yaml")
	doc := "rotors:\n  slow: BDFHJLCPRTXVZNYEIWGAKMUSQO\n  medium: AJDKSIRUXBLHWTMCQGZNPYFVOE\n  fast: EKMFLGDQVZNTOWYHXUSPAIBRCJ\nreflector: IXUHFEZDAOMTKQJWNSRLCYPBVG\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := assets.LoadWiring(path)
	require.NoError(t, err)
	assert.Equal(t, "BDFHJLCPRTXVZNYEIWGAKMUSQO", cfg.Rotors[enigma.Slow])
	assert.Equal(t, "EKMFLGDQVZNTOWYHXUSPAIBRCJ", cfg.Rotors[enigma.Fast])
}

func TestLoadWiring_MissingFile(t *testing.T) {
	_, err := assets.LoadWiring(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMigrations(t *testing.T) {
	ms, err := assets.Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, ms)
	assert.Equal(t, "sql/001_init.sql", ms[0].Name)
	assert.Contains(t, ms[0].SQL, "CREATE TABLE IF NOT EXISTS sessions")
}
