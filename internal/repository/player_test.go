package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/testing/suite"
)

type newPlayerRepo func(t *testing.T) (context.Context, PlayerRepository)

func redisPlayerRepo(t *testing.T) (context.Context, PlayerRepository) {
	ctx, st := suite.New(t)

	return ctx, NewPlayerRepository(st.Storage)
}

func sqlPlayerRepo(t *testing.T) (context.Context, PlayerRepository) {
	ctx, st := suite.NewSQLite(t)

	return ctx, NewSQLPlayerRepository(st.SQL.Connection)
}

func TestPlayerRepository(t *testing.T) {
	backends := map[string]newPlayerRepo{
		"Redis":  redisPlayerRepo,
		"SQLite": sqlPlayerRepo,
	}

	for name, newRepo := range backends {
		t.Run(name, func(t *testing.T) {
			testPlayerRepository(t, newRepo)
		})
	}
}

func testPlayerRepository(t *testing.T, newRepo newPlayerRepo) {
	t.Run("CreateOrUpdate_Success", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		// Given: a player with ID and name
		player := &entity.Player{ID: "123", Name: "Olena"}

		// When: CreateOrUpdate is called
		err := playerRepo.CreateOrUpdate(ctx, player)

		// Then: the player can be read back by ID and by name
		require.NoError(t, err)

		byID, err := playerRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, player, byID)

		byName, err := playerRepo.GetByName(ctx, "Olena")
		require.NoError(t, err)
		assert.Equal(t, player, byName)
	})

	t.Run("CreateOrUpdate_Rename", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		// Given: a stored player
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "1", Name: "Ann"}))

		// When: the same ID is saved under a new name
		err := playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "1", Name: "Anna"})

		// Then: only the new name resolves
		require.NoError(t, err)

		_, err = playerRepo.GetByName(ctx, "Ann")
		require.ErrorIs(t, err, ErrPlayerNotFound)

		player, err := playerRepo.GetByName(ctx, "Anna")
		require.NoError(t, err)
		assert.Equal(t, "1", player.ID)
	})

	t.Run("CreateOrUpdate_NameTaken", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		// Given: a player owning the name
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "1", Name: "Ann"}))

		// When: another ID claims the same name
		err := playerRepo.CreateOrUpdate(ctx, &entity.Player{ID: "2", Name: "Ann"})

		// Then: ErrPlayerNameTaken is returned and the owner is unchanged
		require.ErrorIs(t, err, ErrPlayerNameTaken)

		player, err := playerRepo.GetByName(ctx, "Ann")
		require.NoError(t, err)
		assert.Equal(t, "1", player.ID)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		// When: GetByID is called with non-existent ID
		player, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Nil(t, player)
	})

	t.Run("GetByName_NotFound", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		_, err := playerRepo.GetByName(ctx, "nobody")

		require.ErrorIs(t, err, ErrPlayerNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		// Given: three players saved out of order
		for _, player := range []*entity.Player{
			{ID: "3", Name: "Cyril"},
			{ID: "1", Name: "Ann"},
			{ID: "2", Name: "bot:hard"},
		} {
			require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))
		}

		// When: List is called
		players, err := playerRepo.List(ctx)

		// Then: they come back sorted by name
		require.NoError(t, err)
		require.Len(t, players, 3)
		assert.Equal(t, "Ann", players[0].Name)
		assert.Equal(t, "Cyril", players[1].Name)
		assert.Equal(t, "bot:hard", players[2].Name)
	})

	t.Run("List_Empty", func(t *testing.T) {
		ctx, playerRepo := newRepo(t)

		players, err := playerRepo.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, players)
	})
}
