package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (that *mockPlayerRepo) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	args := that.Called(ctx, player)

	return args.Error(0)
}

func (that *mockPlayerRepo) GetByName(ctx context.Context, name string) (*entity.Player, error) {
	args := that.Called(ctx, name)

	return args.Get(0).(*entity.Player), args.Error(1)
}

func (that *mockPlayerRepo) List(ctx context.Context) ([]*entity.Player, error) {
	args := that.Called(ctx)

	return args.Get(0).([]*entity.Player), args.Error(1)
}

type mockResultRepo struct {
	mock.Mock
}

func (that *mockResultRepo) Add(ctx context.Context, result *entity.GameResult) error {
	args := that.Called(ctx, result)

	return args.Error(0)
}

func (that *mockResultRepo) GetPlayerGames(ctx context.Context, playerID string, limit int) ([]*entity.GameResult, error) {
	args := that.Called(ctx, playerID, limit)

	return args.Get(0).([]*entity.GameResult), args.Error(1)
}
