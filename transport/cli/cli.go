// Package cli is the interactive terminal front end.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var errQuit = errors.New("quit")

// SessionFactory - builds a session whose bot plays at difficulty. An empty
// difficulty means a game between two humans.
type SessionFactory func(difficulty bot.Difficulty) (*usecase.GameSession, error)

type statsUseCase interface {
	PlayerStatistics(ctx context.Context, name string) (*entity.Player, entity.Statistics, error)
	Players(ctx context.Context) ([]*entity.Player, error)
}

type Options struct {
	DefaultDifficulty bot.Difficulty
	ThinkMin          time.Duration
	ThinkMax          time.Duration
	Rand              *rand.Rand
}

type CLI struct {
	logger *slog.Logger

	in     *bufio.Scanner
	out    io.Writer
	render renderer

	newSession SessionFactory
	stats      statsUseCase
	options    Options
}

func New(logger *slog.Logger, in io.Reader, out io.Writer, newSession SessionFactory, stats statsUseCase, options Options) *CLI {
	if options.DefaultDifficulty == "" {
		options.DefaultDifficulty = bot.HardDifficulty
	}

	if options.Rand == nil {
		options.Rand = bot.NewRand(0)
	}

	return &CLI{
		logger:     logger.With("component", "cli"),
		in:         bufio.NewScanner(in),
		out:        out,
		render:     renderer{output: newOutput(out)},
		newSession: newSession,
		stats:      stats,
		options:    options,
	}
}

// Run - plays until the user quits or input ends.
func (that *CLI) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	that.println(that.render.infoText("Tic-tac-toe"))

	session, params, err := that.setup(ctx)
	if errors.Is(err, errQuit) {
		return nil
	}
	if err != nil {
		return err
	}

	snapshot, err := session.Start(ctx, params)
	for err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}

		if !isUserError(err) {
			log.Error("failed to start game", "error", err)
			return fmt.Errorf("failed to start game: %w", err)
		}

		that.println(that.render.errorText(err.Error()))

		if params, err = that.askPlayers(params.BotMark); err != nil {
			continue
		}

		snapshot, err = session.Start(ctx, params)
	}

	err = that.play(ctx, session, snapshot)
	if errors.Is(err, errQuit) || errors.Is(err, context.Canceled) {
		that.println("Bye!")
		return nil
	}

	return err
}

func (that *CLI) setup(ctx context.Context) (*usecase.GameSession, usecase.SessionParams, error) {
	var (
		difficulty bot.Difficulty
		botMark    tictactoe.Mark
	)

	vsBot, err := that.askChoice("Mode: 1) two players 2) against the bot", "2", "1", "2")
	if err != nil {
		return nil, usecase.SessionParams{}, err
	}

	if vsBot == "2" {
		side, err := that.askChoice("Play as X or O", "X", "X", "O")
		if err != nil {
			return nil, usecase.SessionParams{}, err
		}

		botMark = tictactoe.Mark(side).Opponent()

		difficulty, err = that.askDifficulty()
		if err != nil {
			return nil, usecase.SessionParams{}, err
		}
	}

	session, err := that.newSession(difficulty)
	if err != nil {
		return nil, usecase.SessionParams{}, fmt.Errorf("failed to create session: %w", err)
	}

	that.showPlayers(ctx)

	params, err := that.askPlayers(botMark)
	if err != nil {
		return nil, usecase.SessionParams{}, err
	}

	that.logger.With("method", "setup").DebugContext(ctx, "session ready",
		"difficulty", string(difficulty), "bot_mark", string(botMark))

	return session, params, nil
}

func (that *CLI) askDifficulty() (bot.Difficulty, error) {
	for {
		answer, err := that.ask(fmt.Sprintf("Difficulty easy/medium/hard [%s]: ", that.options.DefaultDifficulty))
		if err != nil {
			return "", err
		}

		if answer == "" {
			return that.options.DefaultDifficulty, nil
		}

		difficulty, err := bot.ParseDifficulty(answer)
		if err == nil {
			return difficulty, nil
		}

		that.println(that.render.errorText(err.Error()))
	}
}

// showPlayers - prints the names already in the store so they can be reused.
func (that *CLI) showPlayers(ctx context.Context) {
	players, err := that.stats.Players(ctx)
	if err != nil {
		that.logger.With("method", "showPlayers").Error("failed to list players", "error", err)
		return
	}

	if len(players) == 0 {
		return
	}

	names := make([]string, 0, len(players))
	for _, player := range players {
		names = append(names, player.Name)
	}

	that.println(that.render.infoText("Known players: " + strings.Join(names, ", ")))
}

func (that *CLI) askPlayers(botMark tictactoe.Mark) (usecase.SessionParams, error) {
	params := usecase.SessionParams{BotMark: botMark}

	for _, side := range []tictactoe.Mark{tictactoe.MarkX, tictactoe.MarkO} {
		if side == botMark {
			continue
		}

		name, err := that.ask(fmt.Sprintf("Name of player %s: ", that.render.mark(side)))
		if err != nil {
			return params, err
		}

		if side == tictactoe.MarkX {
			params.PlayerX = name
		} else {
			params.PlayerO = name
		}
	}

	return params, nil
}

func (that *CLI) play(ctx context.Context, session *usecase.GameSession, snapshot usecase.Snapshot) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		that.println("")
		that.print(that.render.board(snapshot.Cells))

		var err error
		if session.IsBotTurn() {
			snapshot, err = that.botTurn(ctx, session)
		} else {
			snapshot, err = that.humanTurn(ctx, session, snapshot)
		}

		switch {
		case errors.Is(err, apperror.ErrGameFinished):
			if snapshot, err = that.finish(ctx, session, snapshot); err != nil {
				return err
			}
		case err != nil && isUserError(err):
			that.println(that.render.errorText(describe(err)))
		case err != nil && snapshot.State.IsFinished():
			// The board is decided even when the result could not be stored.
			that.println(that.render.errorText(err.Error()))

			if snapshot, err = that.finish(ctx, session, snapshot); err != nil {
				return err
			}
		case err != nil:
			return err
		}
	}
}

func (that *CLI) botTurn(ctx context.Context, session *usecase.GameSession) (usecase.Snapshot, error) {
	if err := sleep(ctx, that.thinkTime()); err != nil {
		return session.Snapshot(), err
	}

	cell, snapshot, err := session.BotTurn(ctx)
	if err == nil || snapshot.State.IsFinished() {
		that.println(fmt.Sprintf("%s plays %d", moverName(snapshot, cell), cell+1))
	}

	return snapshot, err
}

func (that *CLI) humanTurn(ctx context.Context, session *usecase.GameSession, snapshot usecase.Snapshot) (usecase.Snapshot, error) {
	player := snapshot.PlayerToMove()

	answer, err := that.ask(fmt.Sprintf("%s (%s), choose a cell 1-9, r to restart, q to quit: ",
		player.Name, that.render.mark(snapshot.Turn)))
	if err != nil {
		return snapshot, err
	}

	switch strings.ToLower(answer) {
	case "q":
		return snapshot, errQuit
	case "r":
		return session.Restart(ctx)
	}

	cell, err := strconv.Atoi(answer)
	if err != nil {
		return snapshot, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, answer)
	}

	return session.MakeTurn(ctx, cell-1)
}

// finish - prints the outcome and statistics and asks for a rematch.
func (that *CLI) finish(ctx context.Context, session *usecase.GameSession, snapshot usecase.Snapshot) (usecase.Snapshot, error) {
	that.println("")
	that.print(that.render.board(snapshot.Cells))

	switch snapshot.State.Status {
	case tictactoe.StatusWon:
		winner := snapshot.PlayerX
		if snapshot.State.Winner == tictactoe.MarkO {
			winner = snapshot.PlayerO
		}

		that.println(that.render.infoText(winner.Name + " wins!"))
	default:
		that.println(that.render.infoText("It's a draw!"))
	}

	for _, player := range []*entity.Player{snapshot.PlayerX, snapshot.PlayerO} {
		stored, stats, err := that.stats.PlayerStatistics(ctx, player.Name)
		if err != nil {
			that.logger.With("method", "finish").Error("failed to get statistics", "error", err)
			continue
		}

		that.println(that.render.statistics(stored, stats))
	}

	again, err := that.askChoice("Play again? y/n", "y", "y", "n")
	if err != nil {
		return snapshot, err
	}

	if again == "n" {
		return snapshot, errQuit
	}

	return session.Restart(ctx)
}

func (that *CLI) thinkTime() time.Duration {
	spread := that.options.ThinkMax - that.options.ThinkMin
	if spread <= 0 {
		return that.options.ThinkMin
	}

	return that.options.ThinkMin + time.Duration(that.options.Rand.Int64N(int64(spread)+1))
}

// askChoice - asks until the answer is one of choices; empty input picks fallback.
func (that *CLI) askChoice(question, fallback string, choices ...string) (string, error) {
	for {
		answer, err := that.ask(fmt.Sprintf("%s [%s]: ", question, fallback))
		if err != nil {
			return "", err
		}

		if answer == "" {
			return fallback, nil
		}

		for _, choice := range choices {
			if strings.EqualFold(answer, choice) {
				return choice, nil
			}
		}

		that.println(that.render.errorText("please answer " + strings.Join(choices, " or ")))
	}
}

// ask - io.EOF on input is reported as errQuit.
func (that *CLI) ask(prompt string) (string, error) {
	that.print(prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", errQuit
	}

	return strings.TrimSpace(that.in.Text()), nil
}

func (that *CLI) print(text string) {
	if _, err := io.WriteString(that.out, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *CLI) println(text string) {
	that.print(text + "\n")
}

func moverName(snapshot usecase.Snapshot, cell int) string {
	if snapshot.Cells[cell] == tictactoe.MarkX {
		return snapshot.PlayerX.Name
	}

	return snapshot.PlayerO.Name
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isUserError - errors caused by input that the player can correct.
func isUserError(err error) bool {
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

var userErrors = []error{
	apperror.ErrInvalidCell,
	apperror.ErrCellOccupied,
	apperror.ErrNotYourTurn,
	usecase.ErrSamePlayer,
	service.ErrInvalidPlayerName,
}

func describe(err error) string {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell):
		return "choose a cell from 1 to 9"
	case errors.Is(err, apperror.ErrCellOccupied):
		return "that cell is already taken"
	default:
		return err.Error()
	}
}
