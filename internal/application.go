package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/service"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-engine/transport/cli"
	"github.com/rocketscienceinc/tictactoe-engine/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	players repository.PlayerRepository
	results repository.GameResultRepository
	closer  io.Closer
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repos, err := newRepositories(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = repos.closer.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	playerService := service.NewPlayerService(logger, repos.players)
	resultService := service.NewResultService(logger, repos.results, conf.RecentGamesLimit, nil)
	statsUseCase := usecase.NewStatsUseCase(playerService, resultService)

	difficulty, err := bot.ParseDifficulty(conf.Bot.Difficulty)
	if err != nil {
		return fmt.Errorf("invalid bot difficulty: %w", err)
	}

	rng := bot.NewRand(conf.Bot.Seed)

	newSession := func(difficulty bot.Difficulty) (*usecase.GameSession, error) {
		var botService service.BotService

		if difficulty != "" {
			selector, err := bot.New(difficulty, rng)
			if err != nil {
				return nil, fmt.Errorf("failed to create bot: %w", err)
			}

			botService = service.NewBotService(difficulty, selector)
		}

		return usecase.NewGameSession(logger, playerService, resultService, botService, nil), nil
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	if conf.HTTPEnabled {
		go func() {
			log.Info("Starting HTTP server", "port", conf.HTTPPort)
			handlers := rest.NewHandlers(logger, statsUseCase)
			if httpErr := rest.Start(ctx, conf.HTTPPort, handlers); httpErr != nil {
				log.Error("HTTP server error", "error", httpErr)
				httpErrCh <- httpErr
			}
		}()
	}

	// run terminal front end
	cliDoneCh := make(chan error, 1)
	go func() {
		terminal := cli.New(logger, os.Stdin, os.Stdout, newSession, statsUseCase, cli.Options{
			DefaultDifficulty: difficulty,
			ThinkMin:          conf.Bot.ThinkMin,
			ThinkMax:          conf.Bot.ThinkMax,
			Rand:              rng,
		})
		cliDoneCh <- terminal.Run(ctx)
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-cliDoneCh:
		if err != nil {
			return fmt.Errorf("terminal error: %w", err)
		}

		log.Info("Terminal closed, shutting down")
		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newRepositories(ctx context.Context, conf *config.Config) (*repositories, error) {
	switch conf.Storage.Driver {
	case config.RedisDriver:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &repositories{
			players: repository.NewPlayerRepository(redisStorage.Connection),
			results: repository.NewGameResultRepository(redisStorage.Connection),
			closer:  redisStorage,
		}, nil
	case config.SQLiteDriver:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return &repositories{
			players: repository.NewSQLPlayerRepository(sqliteStorage.Connection),
			results: repository.NewSQLGameResultRepository(sqliteStorage.Connection),
			closer:  sqliteStorage,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, conf.Storage.Driver)
	}
}
