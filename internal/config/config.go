package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-engine/internal/bot"
)

const (
	SQLiteDriver = "sqlite"
	RedisDriver  = "redis"
)

const (
	DefaultThinkMin = 500 * time.Millisecond
	DefaultThinkMax = time.Second
)

var (
	ErrUnknownDriver     = errors.New("unknown storage driver")
	ErrInvalidThinkRange = errors.New("bot think-min is greater than think-max")
	ErrInvalidLimit      = errors.New("recent games limit must be positive")
)

type Config struct {
	LogLevel          string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	HTTPEnabled       bool    `yaml:"http-enabled" env:"HTTP_ENABLED" env-default:"false"`
	Storage           Storage `yaml:"storage"`
	SQLiteStoragePath string  `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictactoe.db"`
	Redis             Redis   `yaml:"redis"`
	Bot               Bot     `yaml:"bot"`
	RecentGamesLimit  int     `yaml:"recent-games-limit" env:"RECENT_GAMES_LIMIT" env-default:"10"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Bot - think-min and think-max keep their defaults only when the keys are absent, so 0s turns the pause off.
type Bot struct {
	Difficulty string        `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"hard"`
	Seed       uint64        `yaml:"seed" env:"BOT_SEED" env-default:"0"`
	ThinkMin   time.Duration `yaml:"think-min" env:"BOT_THINK_MIN"`
	ThinkMax   time.Duration `yaml:"think-max" env:"BOT_THINK_MAX"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{
		Bot: Bot{ThinkMin: DefaultThinkMin, ThinkMax: DefaultThinkMax},
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case SQLiteDriver, RedisDriver:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, that.Storage.Driver)
	}

	if _, err := bot.ParseDifficulty(that.Bot.Difficulty); err != nil {
		return fmt.Errorf("bot: %w", err)
	}

	if that.Bot.ThinkMin > that.Bot.ThinkMax {
		return fmt.Errorf("%w: %s > %s", ErrInvalidThinkRange, that.Bot.ThinkMin, that.Bot.ThinkMax)
	}

	if that.RecentGamesLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, that.RecentGamesLimit)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
