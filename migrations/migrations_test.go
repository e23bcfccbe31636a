package migrations

import (
	"io"
	"testing"

	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	source, err := iofs.New(FS, ".")
	require.NoError(t, err)
	defer source.Close()

	first, err := source.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)

	up, _, err := source.ReadUp(first)
	require.NoError(t, err)
	body, err := io.ReadAll(up)
	require.NoError(t, err)
	_ = up.Close()

	for _, want := range []string{
		"CREATE TABLE IF NOT EXISTS venues",
		"CREATE TABLE IF NOT EXISTS artists",
		"REFERENCES venues (id) ON DELETE CASCADE",
		"REFERENCES artists (id) ON DELETE CASCADE",
		"genres              TEXT[]",
	} {
		assert.Contains(t, string(body), want)
	}

	down, _, err := source.ReadDown(first)
	require.NoError(t, err)
	_ = down.Close()
}
