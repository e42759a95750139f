package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockPlayerService struct {
	mock.Mock
}

func (that *mockPlayerService) GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)

	return args.Get(0).(*entity.Player), args.Error(1)
}

func (that *mockPlayerService) GetOrCreateBotPlayer(ctx context.Context, difficulty bot.Difficulty) (*entity.Player, error) {
	args := that.Called(ctx, difficulty)

	return args.Get(0).(*entity.Player), args.Error(1)
}

func (that *mockPlayerService) GetPlayerByName(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)

	return args.Get(0).(*entity.Player), args.Error(1)
}

func (that *mockPlayerService) ListPlayers(ctx context.Context) ([]*entity.Player, error) {
	args := that.Called(ctx)

	return args.Get(0).([]*entity.Player), args.Error(1)
}

type mockResultService struct {
	mock.Mock
}

func (that *mockResultService) SaveGameResult(
	ctx context.Context,
	playerXID, playerOID, winner string,
	duration time.Duration,
) (*entity.GameResult, error) {
	args := that.Called(ctx, playerXID, playerOID, winner, duration)

	return args.Get(0).(*entity.GameResult), args.Error(1)
}

func (that *mockResultService) GetRecentGames(ctx context.Context, playerID string, count int) ([]*entity.GameResult, error) {
	args := that.Called(ctx, playerID, count)

	return args.Get(0).([]*entity.GameResult), args.Error(1)
}

func (that *mockResultService) GetPlayerStatistics(ctx context.Context, playerID string) (entity.Statistics, error) {
	args := that.Called(ctx, playerID)

	return args.Get(0).(entity.Statistics), args.Error(1)
}
