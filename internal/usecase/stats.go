package usecase

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type StatsUseCase interface {
	PlayerStatistics(ctx context.Context, name string) (*entity.Player, entity.Statistics, error)
	PlayerGames(ctx context.Context, name string, limit int) (*entity.Player, []*entity.GameResult, error)
	Players(ctx context.Context) ([]*entity.Player, error)
}

type playerLookup interface {
	GetPlayerByName(ctx context.Context, name string) (*entity.Player, error)
	ListPlayers(ctx context.Context) ([]*entity.Player, error)
}

type resultReader interface {
	GetRecentGames(ctx context.Context, playerID string, count int) ([]*entity.GameResult, error)
	GetPlayerStatistics(ctx context.Context, playerID string) (entity.Statistics, error)
}

type statsUseCase struct {
	players playerLookup
	results resultReader
}

func NewStatsUseCase(players playerLookup, results resultReader) StatsUseCase {
	return &statsUseCase{
		players: players,
		results: results,
	}
}

func (that *statsUseCase) PlayerStatistics(ctx context.Context, name string) (*entity.Player, entity.Statistics, error) {
	player, err := that.players.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, entity.Statistics{}, fmt.Errorf("failed get player: %w", err)
	}

	stats, err := that.results.GetPlayerStatistics(ctx, player.ID)
	if err != nil {
		return nil, entity.Statistics{}, fmt.Errorf("failed get statistics: %w", err)
	}

	return player, stats, nil
}

// PlayerGames - newest first; a limit of zero uses the configured default.
func (that *statsUseCase) PlayerGames(ctx context.Context, name string, limit int) (*entity.Player, []*entity.GameResult, error) {
	player, err := that.players.GetPlayerByName(ctx, name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed get player: %w", err)
	}

	results, err := that.results.GetRecentGames(ctx, player.ID, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed get games: %w", err)
	}

	return player, results, nil
}

// Players - known human players ordered by name.
func (that *statsUseCase) Players(ctx context.Context) ([]*entity.Player, error) {
	players, err := that.players.ListPlayers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed list players: %w", err)
	}

	humans := make([]*entity.Player, 0, len(players))
	for _, player := range players {
		if !player.IsBot() {
			humans = append(humans, player)
		}
	}

	return humans, nil
}
