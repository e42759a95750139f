package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrPlayerNameTaken = errors.New("player name is taken")
)

const playersKey = "players"

type PlayerRepository interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
	GetByName(ctx context.Context, name string) (*entity.Player, error)
	List(ctx context.Context) ([]*entity.Player, error)
}

type dbPlayer struct {
	client *redis.Client
}

func NewPlayerRepository(client *redis.Client) PlayerRepository {
	return &dbPlayer{
		client: client,
	}
}

func playerKey(id string) string {
	return "player:" + id
}

func playerNameKey(name string) string {
	return "player:name:" + name
}

func (that *dbPlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	playerJSON, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	claimed, err := that.client.SetNX(ctx, playerNameKey(player.Name), player.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve player name: %w", err)
	}

	if !claimed {
		owner, err := that.client.Get(ctx, playerNameKey(player.Name)).Result()
		if err != nil {
			return fmt.Errorf("failed to get player name owner: %w", err)
		}

		if owner != player.ID {
			return fmt.Errorf("%w: %q", ErrPlayerNameTaken, player.Name)
		}
	}

	previous, err := that.GetByID(ctx, player.ID)
	if err != nil && !errors.Is(err, ErrPlayerNotFound) {
		return err
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previous != nil && previous.Name != player.Name {
			pipe.Del(ctx, playerNameKey(previous.Name))
		}

		pipe.Set(ctx, playerKey(player.ID), playerJSON, 0)
		pipe.SAdd(ctx, playersKey, player.ID)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set player: %w", err)
	}

	return nil
}

func (that *dbPlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	response, err := that.client.Get(ctx, playerKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by ID: %w", err)
	}

	var existingPlayer entity.Player
	if err = json.Unmarshal([]byte(response), &existingPlayer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", err)
	}

	return &existingPlayer, nil
}

func (that *dbPlayer) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	id, err := that.client.Get(ctx, playerNameKey(name)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrPlayerNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by name: %w", err)
	}

	return that.GetByID(ctx, id)
}

func (that *dbPlayer) List(ctx context.Context) ([]*entity.Player, error) {
	ids, err := that.client.SMembers(ctx, playersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list player IDs: %w", err)
	}

	players := make([]*entity.Player, 0, len(ids))
	for _, id := range ids {
		player, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrPlayerNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})

	return players, nil
}
