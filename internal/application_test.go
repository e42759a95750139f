package application

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func TestNewRepositories(t *testing.T) {
	ctx := context.Background()

	t.Run("SQLite", func(t *testing.T) {
		// Given: a config pointing at a fresh database file
		conf := &config.Config{
			Storage:           config.Storage{Driver: config.SQLiteDriver},
			SQLiteStoragePath: filepath.Join(t.TempDir(), "app.db"),
		}

		// When: repositories are built
		repos, err := newRepositories(ctx, conf)
		require.NoError(t, err)
		t.Cleanup(func() { _ = repos.closer.Close() })

		// Then: the schema is ready to use
		require.NoError(t, repos.players.CreateOrUpdate(ctx, &entity.Player{ID: "1", Name: "Alice"}))

		player, err := repos.players.GetByName(ctx, "Alice")
		require.NoError(t, err)
		assert.Equal(t, "1", player.ID)
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, err := newRepositories(ctx, &config.Config{Storage: config.Storage{Driver: "mongo"}})

		require.ErrorIs(t, err, config.ErrUnknownDriver)
	})
}
