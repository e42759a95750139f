package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// resultSeqKey - counter whose value prefixes each result in the player sorted sets.
const resultSeqKey = "results:seq"

var ErrGameResultNotFound = errors.New("game result not found")

type GameResultRepository interface {
	Add(ctx context.Context, result *entity.GameResult) error
	GetByID(ctx context.Context, id string) (*entity.GameResult, error)
	// GetPlayerGames returns the player's results newest first. A limit of zero or less returns all of them.
	GetPlayerGames(ctx context.Context, playerID string, limit int) ([]*entity.GameResult, error)
}

type dbGameResult struct {
	client *redis.Client
}

func NewGameResultRepository(client *redis.Client) GameResultRepository {
	return &dbGameResult{
		client: client,
	}
}

func resultKey(id string) string {
	return "result:" + id
}

func playerResultsKey(playerID string) string {
	return "player:" + playerID + ":results"
}

// playerResultsMember - zero padded so that results sharing a score sort by insertion order.
func playerResultsMember(seq int64, id string) string {
	return fmt.Sprintf("%020d:%s", seq, id)
}

func (that *dbGameResult) Add(ctx context.Context, result *entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	seq, err := that.client.Incr(ctx, resultSeqKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get result sequence: %w", err)
	}

	member := redis.Z{
		Score:  float64(result.PlayedAt.UnixMicro()),
		Member: playerResultsMember(seq, result.ID),
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, resultKey(result.ID), resultJSON, 0)
		pipe.ZAdd(ctx, playerResultsKey(result.PlayerX), member)
		pipe.ZAdd(ctx, playerResultsKey(result.PlayerO), member)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to add game result: %w", err)
	}

	return nil
}

func (that *dbGameResult) GetByID(ctx context.Context, id string) (*entity.GameResult, error) {
	response, err := that.client.Get(ctx, resultKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrGameResultNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game result by ID: %w", err)
	}

	var result entity.GameResult
	if err = json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game result: %w", err)
	}

	return &result, nil
}

func (that *dbGameResult) GetPlayerGames(ctx context.Context, playerID string, limit int) ([]*entity.GameResult, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	members, err := that.client.ZRevRange(ctx, playerResultsKey(playerID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player game IDs: %w", err)
	}

	results := make([]*entity.GameResult, 0, len(members))
	for _, member := range members {
		_, id, _ := strings.Cut(member, ":")

		result, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrGameResultNotFound) {
			continue
		}

		if err != nil {
			return nil, err
		}

		results = append(results, result)
	}

	return results, nil
}
