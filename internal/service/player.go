package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
)

const maxPlayerNameLength = 100

var ErrInvalidPlayerName = errors.New("invalid player name")

type PlayerService interface {
	GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, error)
	GetOrCreateBotPlayer(ctx context.Context, difficulty bot.Difficulty) (*entity.Player, error)
	GetPlayerByName(ctx context.Context, name string) (*entity.Player, error)
	ListPlayers(ctx context.Context) ([]*entity.Player, error)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByName(ctx context.Context, name string) (*entity.Player, error)
	List(ctx context.Context) ([]*entity.Player, error)
}

type playerService struct {
	logger     *slog.Logger
	playerRepo playerRepo
}

func NewPlayerService(logger *slog.Logger, playerRepo playerRepo) PlayerService {
	return &playerService{
		logger:     logger.With("component", "player_service"),
		playerRepo: playerRepo,
	}
}

// NormalizePlayerName - trims name and checks it can be used by a human player.
func NormalizePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)

	switch {
	case name == "":
		return "", fmt.Errorf("%w: name is empty", ErrInvalidPlayerName)
	case utf8.RuneCountInString(name) > maxPlayerNameLength:
		return "", fmt.Errorf("%w: name is longer than %d characters", ErrInvalidPlayerName, maxPlayerNameLength)
	case strings.ContainsFunc(name, unicode.IsControl):
		return "", fmt.Errorf("%w: name contains control characters", ErrInvalidPlayerName)
	case (&entity.Player{Name: name}).IsBot():
		return "", fmt.Errorf("%w: name is reserved", ErrInvalidPlayerName)
	}

	return name, nil
}

func (that *playerService) GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, error) {
	name, err := NormalizePlayerName(name)
	if err != nil {
		return nil, err
	}

	return that.getOrCreate(ctx, name)
}

func (that *playerService) GetOrCreateBotPlayer(ctx context.Context, difficulty bot.Difficulty) (*entity.Player, error) {
	return that.getOrCreate(ctx, entity.BotPlayerName(string(difficulty)))
}

func (that *playerService) getOrCreate(ctx context.Context, name string) (*entity.Player, error) {
	log := that.logger.With("method", "getOrCreate", "name", name)

	existingPlayer, err := that.playerRepo.GetByName(ctx, name)
	if err == nil {
		return existingPlayer, nil
	}

	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, fmt.Errorf("get player by name: %w", err)
	}

	player := &entity.Player{
		ID:   uuid.NewString(),
		Name: name,
	}

	err = that.playerRepo.CreateOrUpdate(ctx, player)
	if errors.Is(err, repository.ErrPlayerNameTaken) {
		// created concurrently under the same name
		existingPlayer, err = that.playerRepo.GetByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("get player by name: %w", err)
		}

		return existingPlayer, nil
	}

	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}

	log.Info("player created", "id", player.ID)

	return player, nil
}

func (that *playerService) GetPlayerByName(ctx context.Context, name string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("get player by name: %w", err)
	}

	return existingPlayer, nil
}

func (that *playerService) ListPlayers(ctx context.Context) ([]*entity.Player, error) {
	players, err := that.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}
