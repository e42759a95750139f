package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const DefaultRecentGamesLimit = 10

var ErrInvalidWinner = errors.New("winner is neither a player of the game nor a draw")

type ResultService interface {
	SaveGameResult(ctx context.Context, playerXID, playerOID, winner string, duration time.Duration) (*entity.GameResult, error)
	GetPlayerGameHistory(ctx context.Context, playerID string) ([]*entity.GameResult, error)
	GetRecentGames(ctx context.Context, playerID string, count int) ([]*entity.GameResult, error)
	GetPlayerStatistics(ctx context.Context, playerID string) (entity.Statistics, error)
}

type resultRepo interface {
	Add(ctx context.Context, result *entity.GameResult) error
	GetPlayerGames(ctx context.Context, playerID string, limit int) ([]*entity.GameResult, error)
}

type resultService struct {
	logger      *slog.Logger
	resultRepo  resultRepo
	recentLimit int
	now         func() time.Time
}

// NewResultService - recentLimit is used by GetRecentGames when no count is given.
func NewResultService(logger *slog.Logger, resultRepo resultRepo, recentLimit int, now func() time.Time) ResultService {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentGamesLimit
	}

	if now == nil {
		now = time.Now
	}

	return &resultService{
		logger:      logger.With("component", "result_service"),
		resultRepo:  resultRepo,
		recentLimit: recentLimit,
		now:         now,
	}
}

func (that *resultService) SaveGameResult(
	ctx context.Context,
	playerXID, playerOID, winner string,
	duration time.Duration,
) (*entity.GameResult, error) {
	result := &entity.GameResult{
		ID:       uuid.NewString(),
		PlayerX:  playerXID,
		PlayerO:  playerOID,
		Winner:   winner,
		Duration: duration,
		PlayedAt: that.now().UTC(),
	}

	if !result.IsDraw() && !result.HasPlayer(winner) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWinner, winner)
	}

	if err := that.resultRepo.Add(ctx, result); err != nil {
		return nil, fmt.Errorf("save game result: %w", err)
	}

	that.logger.With("method", "SaveGameResult").Info("game result saved", "result", result.String())

	return result, nil
}

func (that *resultService) GetPlayerGameHistory(ctx context.Context, playerID string) ([]*entity.GameResult, error) {
	results, err := that.resultRepo.GetPlayerGames(ctx, playerID, 0)
	if err != nil {
		return nil, fmt.Errorf("get player game history: %w", err)
	}

	return results, nil
}

func (that *resultService) GetRecentGames(ctx context.Context, playerID string, count int) ([]*entity.GameResult, error) {
	if count <= 0 {
		count = that.recentLimit
	}

	results, err := that.resultRepo.GetPlayerGames(ctx, playerID, count)
	if err != nil {
		return nil, fmt.Errorf("get recent games: %w", err)
	}

	return results, nil
}

func (that *resultService) GetPlayerStatistics(ctx context.Context, playerID string) (entity.Statistics, error) {
	results, err := that.GetPlayerGameHistory(ctx, playerID)
	if err != nil {
		return entity.Statistics{}, err
	}

	return entity.NewStatistics(playerID, results), nil
}
