package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var (
	ErrBotNotConfigured = errors.New("bot is not configured")
	ErrInvalidBotMark   = errors.New("bot mark must be X, O or empty")
	ErrSamePlayer       = errors.New("a player can't play against themselves")
)

type playerService interface {
	GetOrCreatePlayer(ctx context.Context, name string) (*entity.Player, error)
	GetOrCreateBotPlayer(ctx context.Context, difficulty bot.Difficulty) (*entity.Player, error)
}

type resultService interface {
	SaveGameResult(ctx context.Context, playerXID, playerOID, winner string, duration time.Duration) (*entity.GameResult, error)
}

type botService interface {
	Difficulty() bot.Difficulty
	MakeTurn(controller *tictactoe.GameController) (int, tictactoe.State, error)
}

// SessionParams - who plays. The side named by BotMark is played by the bot
// and its name is ignored; an empty BotMark means two humans.
type SessionParams struct {
	PlayerX string
	PlayerO string
	BotMark tictactoe.Mark
}

type Snapshot struct {
	Cells   [tictactoe.BoardSize]tictactoe.Mark
	Turn    tictactoe.Mark
	State   tictactoe.State
	PlayerX *entity.Player
	PlayerO *entity.Player
	// Result is set once a finished game has been stored.
	Result *entity.GameResult
}

// PlayerToMove - nil when the game is over.
func (that Snapshot) PlayerToMove() *entity.Player {
	if that.State.IsFinished() {
		return nil
	}

	if that.Turn == tictactoe.MarkX {
		return that.PlayerX
	}

	return that.PlayerO
}

// GameSession runs consecutive games between the same two players and stores
// the result of each finished game. It is not safe for concurrent use.
type GameSession struct {
	logger *slog.Logger

	playerService playerService
	resultService resultService
	botService    botService
	now           func() time.Time

	controller *tictactoe.GameController
	started    bool
	playerX    *entity.Player
	playerO    *entity.Player
	botMark    tictactoe.Mark
	startedAt  time.Time
	result     *entity.GameResult
}

// NewGameSession - botService may be nil when only humans play.
func NewGameSession(
	logger *slog.Logger,
	playerService playerService,
	resultService resultService,
	botService botService,
	now func() time.Time,
) *GameSession {
	if now == nil {
		now = time.Now
	}

	return &GameSession{
		logger:        logger.With("component", "game_session"),
		playerService: playerService,
		resultService: resultService,
		botService:    botService,
		now:           now,
		controller:    tictactoe.NewGameController(),
	}
}

func (that *GameSession) Start(ctx context.Context, params SessionParams) (Snapshot, error) {
	switch params.BotMark {
	case tictactoe.Empty:
	case tictactoe.MarkX, tictactoe.MarkO:
		if that.botService == nil {
			return that.Snapshot(), ErrBotNotConfigured
		}
	default:
		return that.Snapshot(), fmt.Errorf("%w: %q", ErrInvalidBotMark, params.BotMark)
	}

	playerX, err := that.resolvePlayer(ctx, params.PlayerX, params.BotMark == tictactoe.MarkX)
	if err != nil {
		return that.Snapshot(), fmt.Errorf("failed to resolve player X: %w", err)
	}

	playerO, err := that.resolvePlayer(ctx, params.PlayerO, params.BotMark == tictactoe.MarkO)
	if err != nil {
		return that.Snapshot(), fmt.Errorf("failed to resolve player O: %w", err)
	}

	if playerX.ID == playerO.ID {
		return that.Snapshot(), fmt.Errorf("%w: %s", ErrSamePlayer, playerX.Name)
	}

	that.playerX = playerX
	that.playerO = playerO
	that.botMark = params.BotMark
	that.started = true
	that.reset()

	that.logger.With("method", "Start").Info("game started",
		"player_x", playerX.Name, "player_o", playerO.Name, "bot_mark", string(params.BotMark))

	return that.Snapshot(), nil
}

func (that *GameSession) resolvePlayer(ctx context.Context, name string, isBot bool) (*entity.Player, error) {
	if isBot {
		return that.playerService.GetOrCreateBotPlayer(ctx, that.botService.Difficulty())
	}

	return that.playerService.GetOrCreatePlayer(ctx, name)
}

// Restart - a rematch between the same players.
func (that *GameSession) Restart(ctx context.Context) (Snapshot, error) {
	if !that.started {
		return that.Snapshot(), apperror.ErrGameIsNotStarted
	}

	that.reset()

	that.logger.With("method", "Restart").InfoContext(ctx, "game restarted")

	return that.Snapshot(), nil
}

func (that *GameSession) reset() {
	that.controller.Reset()
	that.startedAt = that.now()
	that.result = nil
}

// MakeTurn - plays cell for the human whose turn it is. When the move ends the
// game the result is stored and apperror.ErrGameFinished is returned together
// with the final snapshot.
func (that *GameSession) MakeTurn(ctx context.Context, cell int) (Snapshot, error) {
	if err := that.checkPlayable(); err != nil {
		return that.Snapshot(), err
	}

	if that.IsBotTurn() {
		return that.Snapshot(), apperror.ErrNotYourTurn
	}

	state, err := that.controller.Play(cell)
	if err != nil {
		return that.Snapshot(), fmt.Errorf("failed make turn: %w", err)
	}

	return that.afterTurn(ctx, state)
}

// BotTurn - lets the bot move. Returns the chosen cell; the finished-game
// contract is the same as for MakeTurn.
func (that *GameSession) BotTurn(ctx context.Context) (int, Snapshot, error) {
	if err := that.checkPlayable(); err != nil {
		return 0, that.Snapshot(), err
	}

	if !that.IsBotTurn() {
		return 0, that.Snapshot(), apperror.ErrNotYourTurn
	}

	cell, state, err := that.botService.MakeTurn(that.controller)
	if err != nil {
		return cell, that.Snapshot(), fmt.Errorf("failed bot turn: %w", err)
	}

	snapshot, err := that.afterTurn(ctx, state)

	return cell, snapshot, err
}

func (that *GameSession) checkPlayable() error {
	if !that.started {
		return apperror.ErrGameIsNotStarted
	}

	if that.controller.State().IsFinished() {
		return apperror.ErrGameFinished
	}

	return nil
}

func (that *GameSession) afterTurn(ctx context.Context, state tictactoe.State) (Snapshot, error) {
	if !state.IsFinished() {
		return that.Snapshot(), nil
	}

	if err := that.saveResult(ctx, state); err != nil {
		return that.Snapshot(), err
	}

	return that.Snapshot(), apperror.ErrGameFinished
}

func (that *GameSession) saveResult(ctx context.Context, state tictactoe.State) error {
	log := that.logger.With("method", "saveResult")

	if that.result != nil {
		return nil
	}

	winner := entity.DrawResult
	switch state.Winner {
	case tictactoe.MarkX:
		winner = that.playerX.ID
	case tictactoe.MarkO:
		winner = that.playerO.ID
	}

	result, err := that.resultService.SaveGameResult(ctx, that.playerX.ID, that.playerO.ID, winner, that.now().Sub(that.startedAt))
	if err != nil {
		log.Error("failed to save game result", "error", err)

		return fmt.Errorf("failed to save game result: %w", err)
	}

	that.result = result

	return nil
}

// IsBotTurn - true while the game runs and the bot's mark is to move.
func (that *GameSession) IsBotTurn() bool {
	return that.started &&
		that.botMark != tictactoe.Empty &&
		!that.controller.State().IsFinished() &&
		that.controller.Turn() == that.botMark
}

func (that *GameSession) Snapshot() Snapshot {
	return Snapshot{
		Cells:   that.controller.Cells(),
		Turn:    that.controller.Turn(),
		State:   that.controller.State(),
		PlayerX: that.playerX,
		PlayerO: that.playerO,
		Result:  that.result,
	}
}
